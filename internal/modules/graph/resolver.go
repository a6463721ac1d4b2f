package graph

import (
	"context"
	"sort"
	"strings"

	types "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

// Store is the read side of the career graph.
type Store interface {
	// GetNode returns (nil, nil) when id is unknown.
	GetNode(ctx context.Context, id string) (*types.Node, error)
	// FindNodeByLabel returns (nil, nil) when nothing matches.
	FindNodeByLabel(ctx context.Context, label string) (*types.Node, error)
	GetNodes(ctx context.Context, ids []string) ([]*types.Node, error)
	// GetIncidentEdges returns edges with either endpoint in ids.
	GetIncidentEdges(ctx context.Context, ids []string) ([]*types.Edge, error)
}

type NodeView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type LinkView struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

type Selected struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Label   string   `json:"label"`
	Summary string   `json:"summary"`
	Pathway []string `json:"pathway"`
}

type Neighborhood struct {
	Nodes    []NodeView `json:"nodes"`
	Links    []LinkView `json:"links"`
	CenterID string     `json:"centerId"`
	Selected *Selected  `json:"selected,omitempty"`

	Synthetic bool `json:"-"`
}

// Empty is the result when neither the requested center nor the root exists.
func Empty() Neighborhood {
	return Neighborhood{Nodes: []NodeView{}, Links: []LinkView{}, CenterID: types.RootNodeID}
}

type CareerView struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

type Resolver struct {
	log      *logger.Logger
	store    Store
	hopDepth int
	dataset  *Dataset
}

// NewResolver builds a resolver over store. A nil store serves the synthetic
// dataset. hopDepth outside {1,2} is clamped.
func NewResolver(log *logger.Logger, store Store, hopDepth int) *Resolver {
	if hopDepth < 1 {
		hopDepth = 1
	}
	if hopDepth > 2 {
		hopDepth = 2
	}
	return &Resolver{
		log:      log.With("module", "NeighborhoodResolver"),
		store:    store,
		hopDepth: hopDepth,
		dataset:  Builtin(),
	}
}

// Resolve never fails. Storage errors degrade to the synthetic dataset.
func (r *Resolver) Resolve(ctx context.Context, centerID string) Neighborhood {
	if r.store == nil {
		return r.dataset.Synthetic()
	}
	centerID = strings.TrimSpace(centerID)
	if centerID == "" {
		centerID = types.RootNodeID
	}
	out, err := r.resolve(ctx, centerID)
	if err != nil {
		r.log.Warn("graph resolution failed, serving synthetic dataset", "center", centerID, "error", err)
		return r.dataset.Synthetic()
	}
	return out
}

func (r *Resolver) resolve(ctx context.Context, centerID string) (Neighborhood, error) {
	center, err := r.store.GetNode(ctx, centerID)
	if err != nil {
		return Neighborhood{}, err
	}
	if center == nil {
		if center, err = r.store.FindNodeByLabel(ctx, types.RootNodeID); err != nil {
			return Neighborhood{}, err
		}
	}
	if center == nil {
		return Empty(), nil
	}

	firstEdges, err := r.store.GetIncidentEdges(ctx, []string{center.ID})
	if err != nil {
		return Neighborhood{}, err
	}
	firstIDs := neighbourIDs(firstEdges, map[string]bool{center.ID: true})
	firstNodes, err := r.store.GetNodes(ctx, firstIDs)
	if err != nil {
		return Neighborhood{}, err
	}

	edges := firstEdges
	var secondNodes []*types.Node
	if r.hopDepth >= 2 && len(firstIDs) > 0 {
		secondEdges, err := r.store.GetIncidentEdges(ctx, firstIDs)
		if err != nil {
			return Neighborhood{}, err
		}
		exclude := map[string]bool{center.ID: true}
		for _, id := range firstIDs {
			exclude[id] = true
		}
		secondIDs := neighbourIDs(secondEdges, exclude)
		if secondNodes, err = r.store.GetNodes(ctx, secondIDs); err != nil {
			return Neighborhood{}, err
		}
		edges = append(edges, secondEdges...)
	}

	out := Neighborhood{
		Nodes:    []NodeView{},
		Links:    make([]LinkView, 0, len(edges)),
		CenterID: center.ID,
		Selected: &Selected{
			ID:      center.ID,
			Type:    string(center.Type),
			Label:   center.Label,
			Summary: center.Summary,
			Pathway: center.Pathway(),
		},
	}
	seen := map[string]bool{}
	for _, group := range [][]*types.Node{{center}, sortedNodes(firstNodes), sortedNodes(secondNodes)} {
		for _, n := range group {
			if n == nil || seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			out.Nodes = append(out.Nodes, NodeView{ID: n.ID, Label: n.Label, Type: string(n.Type)})
		}
	}
	for _, e := range edges {
		w := e.Weight
		if w == 0 {
			w = 1
		}
		out.Links = append(out.Links, LinkView{Source: e.SourceID, Target: e.TargetID, Weight: w})
	}
	return out, nil
}

// SkillCareers lists career nodes adjacent to skill. Without a store, or on
// a storage error for a mapped skill, the static map answers instead.
func (r *Resolver) SkillCareers(ctx context.Context, skill string) ([]CareerView, error) {
	skill = strings.TrimSpace(skill)
	if r.store == nil {
		careers, _ := r.dataset.CareersForSkill(skill)
		return careers, nil
	}

	careers, err := r.skillCareers(ctx, skill)
	if err != nil {
		fallback, known := r.dataset.CareersForSkill(skill)
		if known {
			r.log.Warn("skill careers lookup failed, using static map", "skill", skill, "error", err)
			return fallback, nil
		}
		return nil, err
	}
	return careers, nil
}

func (r *Resolver) skillCareers(ctx context.Context, skill string) ([]CareerView, error) {
	edges, err := r.store.GetIncidentEdges(ctx, []string{skill})
	if err != nil {
		return nil, err
	}
	ids := neighbourIDs(edges, map[string]bool{skill: true})
	nodes, err := r.store.GetNodes(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := []CareerView{}
	for _, n := range sortedNodes(nodes) {
		if n.Type != types.NodeTypeCareer {
			continue
		}
		out = append(out, CareerView{ID: n.ID, Label: n.Label, Type: string(n.Type), Summary: n.Summary})
	}
	return out, nil
}

// neighbourIDs returns the distinct far endpoints of edges, skipping exclude,
// in first-seen order.
func neighbourIDs(edges []*types.Edge, exclude map[string]bool) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, e := range edges {
		for _, id := range []string{e.SourceID, e.TargetID} {
			if exclude[id] || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func sortedNodes(in []*types.Node) []*types.Node {
	out := make([]*types.Node, 0, len(in))
	for _, n := range in {
		if n != nil {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
