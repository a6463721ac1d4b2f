package graph

import (
	"context"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	types "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
)

type repoStore struct {
	nodes repos.NodeRepo
	edges repos.EdgeRepo
}

// NewRepoStore serves the resolver from the relational node/edge tables.
func NewRepoStore(nodes repos.NodeRepo, edges repos.EdgeRepo) Store {
	return &repoStore{nodes: nodes, edges: edges}
}

func (s *repoStore) GetNode(ctx context.Context, id string) (*types.Node, error) {
	return s.nodes.GetByID(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoStore) FindNodeByLabel(ctx context.Context, label string) (*types.Node, error) {
	return s.nodes.FindByLabel(dbctx.Context{Ctx: ctx}, label, "")
}

func (s *repoStore) GetNodes(ctx context.Context, ids []string) ([]*types.Node, error) {
	return s.nodes.GetByIDs(dbctx.Context{Ctx: ctx}, ids)
}

func (s *repoStore) GetIncidentEdges(ctx context.Context, ids []string) ([]*types.Edge, error) {
	return s.edges.GetByNodeIDs(dbctx.Context{Ctx: ctx}, ids)
}
