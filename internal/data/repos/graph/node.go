package graph

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type NodeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Node) ([]*types.Node, error)
	CreateIfMissing(dbc dbctx.Context, row *types.Node) (*types.Node, error)

	GetByID(dbc dbctx.Context, id string) (*types.Node, error)
	GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Node, error)
	GetByIDsAndType(dbc dbctx.Context, ids []string, nodeType types.NodeType) ([]*types.Node, error)
	FindByLabel(dbc dbctx.Context, label string, nodeType types.NodeType) (*types.Node, error)
}

type nodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeRepo(db *gorm.DB, baseLog *logger.Logger) NodeRepo {
	return &nodeRepo{db: db, log: baseLog.With("repo", "NodeRepo")}
}

func (r *nodeRepo) Create(dbc dbctx.Context, rows []*types.Node) ([]*types.Node, error) {
	if len(rows) == 0 {
		return []*types.Node{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateIfMissing inserts row unless a node with the same id exists, and
// returns the stored node either way.
func (r *nodeRepo) CreateIfMissing(dbc dbctx.Context, row *types.Node) (*types.Node, error) {
	if row == nil || strings.TrimSpace(row.ID) == "" {
		return nil, errors.New("node id required")
	}
	if err := dbc.DB(r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByID(dbc, row.ID)
}

// GetByID returns (nil, nil) when the node does not exist.
func (r *nodeRepo) GetByID(dbc dbctx.Context, id string) (*types.Node, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var out types.Node
	err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *nodeRepo) GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Node, error) {
	var out []*types.Node
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", ids).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) GetByIDsAndType(dbc dbctx.Context, ids []string, nodeType types.NodeType) ([]*types.Node, error) {
	var out []*types.Node
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ? AND type = ?", ids, nodeType).
		Order("label ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByLabel returns the oldest node with an exact label match. An empty
// nodeType matches any type. (nil, nil) when nothing matches.
func (r *nodeRepo) FindByLabel(dbc dbctx.Context, label string, nodeType types.NodeType) (*types.Node, error) {
	if strings.TrimSpace(label) == "" {
		return nil, nil
	}
	q := dbc.DB(r.db).Where("label = ?", label)
	if nodeType != "" {
		q = q.Where("type = ?", nodeType)
	}
	var out types.Node
	err := q.Order("created_at ASC, id ASC").Limit(1).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
