package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	"github.com/yungbote/careermap-backend/internal/data/repos/testutil"
	types "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type memStore struct {
	nodes map[string]*types.Node
	edges []*types.Edge
	err   error
}

func newMemStore() *memStore { return &memStore{nodes: map[string]*types.Node{}} }

func (m *memStore) node(id string, t types.NodeType) *memStore {
	m.nodes[id] = &types.Node{ID: id, Type: t, Label: id}
	return m
}

func (m *memStore) edge(a, b string) *memStore {
	m.edges = append(m.edges, &types.Edge{SourceID: a, TargetID: b, Weight: 1})
	return m
}

func (m *memStore) GetNode(_ context.Context, id string) (*types.Node, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.nodes[id], nil
}

func (m *memStore) FindNodeByLabel(_ context.Context, label string) (*types.Node, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, n := range m.nodes {
		if n.Label == label {
			return n, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetNodes(_ context.Context, ids []string) ([]*types.Node, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*types.Node{}
	for _, id := range ids {
		if n, ok := m.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memStore) GetIncidentEdges(_ context.Context, ids []string) ([]*types.Edge, error) {
	if m.err != nil {
		return nil, m.err
	}
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []*types.Edge{}
	for _, e := range m.edges {
		if want[e.SourceID] || want[e.TargetID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func nodeIDs(n Neighborhood) []string {
	out := make([]string, 0, len(n.Nodes))
	for _, v := range n.Nodes {
		out = append(out, v.ID)
	}
	return out
}

func chainStore() *memStore {
	// A - B - C - D, plus A - E
	return newMemStore().
		node("A", types.NodeTypeCareer).node("B", types.NodeTypeSkill).
		node("C", types.NodeTypeCareer).node("D", types.NodeTypeSkill).
		node("E", types.NodeTypeSkill).node("career", types.NodeTypeCareer).
		edge("A", "B").edge("B", "C").edge("C", "D").edge("A", "E")
}

func TestResolveTwoHops(t *testing.T) {
	r := NewResolver(logger.Nop(), chainStore(), 2)
	got := r.Resolve(context.Background(), "A")

	require.Equal(t, "A", got.CenterID)
	require.Equal(t, []string{"A", "B", "E", "C"}, nodeIDs(got))
	require.NotContains(t, nodeIDs(got), "D")
	require.NotNil(t, got.Selected)
	require.Equal(t, "A", got.Selected.ID)
	require.Equal(t, []string{}, got.Selected.Pathway)

	// Each edge touches a first-hop node or the center.
	for _, l := range got.Links {
		require.True(t, l.Source == "A" || l.Target == "A" || l.Source == "B" || l.Target == "B" || l.Source == "E" || l.Target == "E")
	}
}

func TestResolveEdgesNotDeduplicated(t *testing.T) {
	r := NewResolver(logger.Nop(), chainStore(), 2)
	got := r.Resolve(context.Background(), "A")

	count := 0
	for _, l := range got.Links {
		if l.Source == "A" && l.Target == "B" {
			count++
		}
	}
	// A-B is incident to both the center and the first hop.
	require.Equal(t, 2, count)
}

func TestResolveOneHop(t *testing.T) {
	r := NewResolver(logger.Nop(), chainStore(), 1)
	got := r.Resolve(context.Background(), "A")
	require.Equal(t, []string{"A", "B", "E"}, nodeIDs(got))
	require.Len(t, got.Links, 2)
}

func TestResolveDefaultsAndRootFallback(t *testing.T) {
	s := chainStore().edge("career", "A")
	r := NewResolver(logger.Nop(), s, 2)

	got := r.Resolve(context.Background(), "")
	require.Equal(t, "career", got.CenterID)

	got = r.Resolve(context.Background(), "Nope")
	require.Equal(t, "career", got.CenterID)
	require.Equal(t, "career", got.Nodes[0].ID)
}

func TestResolveRootByLabel(t *testing.T) {
	s := newMemStore()
	s.nodes["root-1"] = &types.Node{ID: "root-1", Type: types.NodeTypeCareer, Label: "career"}
	r := NewResolver(logger.Nop(), s, 2)

	got := r.Resolve(context.Background(), "missing")
	require.Equal(t, "root-1", got.CenterID)
	require.Equal(t, []string{"root-1"}, nodeIDs(got))
	require.Empty(t, got.Links)
}

func TestResolveEmptyWhenNoRoot(t *testing.T) {
	r := NewResolver(logger.Nop(), newMemStore().node("A", types.NodeTypeCareer), 2)
	got := r.Resolve(context.Background(), "missing")
	require.Equal(t, Empty(), got)
	require.NotNil(t, got.Nodes)
	require.NotNil(t, got.Links)
}

func TestResolveSyntheticWithoutStore(t *testing.T) {
	r := NewResolver(logger.Nop(), nil, 2)
	got := r.Resolve(context.Background(), "Teacher")

	require.True(t, got.Synthetic)
	require.Equal(t, "career", got.CenterID)
	require.Len(t, got.Nodes, 16)
	require.Len(t, got.Links, 15)
	for _, l := range got.Links {
		require.Equal(t, "career", l.Source)
	}
	require.Equal(t, got, r.Resolve(context.Background(), "other"))
}

func TestResolveStorageErrorDegrades(t *testing.T) {
	s := chainStore()
	s.err = errors.New("connection refused")
	r := NewResolver(logger.Nop(), s, 2)

	got := r.Resolve(context.Background(), "A")
	require.True(t, got.Synthetic)
	require.Len(t, got.Nodes, 16)
}

func TestSkillCareersStaticMap(t *testing.T) {
	r := NewResolver(logger.Nop(), nil, 2)

	got, err := r.SkillCareers(context.Background(), "Python")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Software Engineer", got[0].ID)
	require.Equal(t, "Software Engineer is a career that uses Python.", got[0].Summary)

	got, err = r.SkillCareers(context.Background(), "Underwater Basket Weaving")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSkillCareersFromStore(t *testing.T) {
	s := newMemStore().
		node("Python", types.NodeTypeSkill).
		node("Software Engineer", types.NodeTypeCareer).
		node("Data Scientist", types.NodeTypeCareer).
		node("SQL", types.NodeTypeSkill).
		edge("Software Engineer", "Python").
		edge("Python", "Data Scientist").
		edge("Python", "SQL")
	r := NewResolver(logger.Nop(), s, 2)

	got, err := r.SkillCareers(context.Background(), "Python")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Data Scientist", got[0].ID)
	require.Equal(t, "Software Engineer", got[1].ID)
}

func TestSkillCareersStorageFailure(t *testing.T) {
	s := newMemStore()
	s.err = errors.New("timeout")
	r := NewResolver(logger.Nop(), s, 2)

	got, err := r.SkillCareers(context.Background(), "SQL")
	require.NoError(t, err)
	require.Len(t, got, 3)

	_, err = r.SkillCareers(context.Background(), "Knitting")
	require.Error(t, err)
}

func TestDatasetSeed(t *testing.T) {
	nodes, edges := Builtin().Seed()
	require.Equal(t, "career", nodes[0].ID)

	ids := map[string]types.NodeType{}
	for _, n := range nodes {
		_, dup := ids[n.ID]
		require.False(t, dup, "duplicate node %s", n.ID)
		ids[n.ID] = n.Type
	}
	require.Equal(t, types.NodeTypeSkill, ids["Machine Learning"])
	require.Equal(t, types.NodeTypeCareer, ids["Quant Researcher"])
	edgeIDs := map[string]bool{}
	for _, e := range edges {
		require.Contains(t, ids, e.SourceID)
		require.Contains(t, ids, e.TargetID)
		require.False(t, edgeIDs[e.ID.String()], "duplicate edge id %s", e.ID)
		edgeIDs[e.ID.String()] = true
	}

	_, again := Builtin().Seed()
	require.Equal(t, edges[0].ID, again[0].ID)
}

func TestRepoStoreResolve(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	testutil.SeedNode(t, ctx, tx, "career", types.NodeTypeCareer, "career")
	testutil.SeedNode(t, ctx, tx, "Teacher", types.NodeTypeCareer, "Teacher")
	testutil.SeedNode(t, ctx, tx, "Communication", types.NodeTypeSkill, "Communication")
	testutil.SeedNode(t, ctx, tx, "Sales Engineer", types.NodeTypeCareer, "Sales Engineer")
	testutil.SeedEdge(t, ctx, tx, "career", "Teacher")
	testutil.SeedEdge(t, ctx, tx, "Teacher", "Communication")
	testutil.SeedEdge(t, ctx, tx, "Sales Engineer", "Communication")

	store := NewRepoStore(repos.NewNodeRepo(tx, log), repos.NewEdgeRepo(tx, log))
	r := NewResolver(log, store, 2)

	got := r.Resolve(ctx, "Teacher")
	require.False(t, got.Synthetic)
	require.Equal(t, []string{"Teacher", "Communication", "career", "Sales Engineer"}, nodeIDs(got))

	careers, err := r.SkillCareers(ctx, "Communication")
	require.NoError(t, err)
	require.Len(t, careers, 2)
}
