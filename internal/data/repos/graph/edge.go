package graph

import (
	"gorm.io/gorm"

	types "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type EdgeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Edge) ([]*types.Edge, error)
	// GetByNodeIDs returns every edge with either endpoint in nodeIDs, in
	// insertion order.
	GetByNodeIDs(dbc dbctx.Context, nodeIDs []string) ([]*types.Edge, error)
}

type edgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEdgeRepo(db *gorm.DB, baseLog *logger.Logger) EdgeRepo {
	return &edgeRepo{db: db, log: baseLog.With("repo", "EdgeRepo")}
}

func (r *edgeRepo) Create(dbc dbctx.Context, rows []*types.Edge) ([]*types.Edge, error) {
	if len(rows) == 0 {
		return []*types.Edge{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *edgeRepo) GetByNodeIDs(dbc dbctx.Context, nodeIDs []string) ([]*types.Edge, error) {
	var out []*types.Edge
	if len(nodeIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("source_id IN ? OR target_id IN ?", nodeIDs, nodeIDs).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
