package cache

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/careermap-backend/internal/domain/cache"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type UserNodeCacheRepo interface {
	Get(dbc dbctx.Context, userID uuid.UUID, nodeID string, kind types.Kind) (*types.UserNodeCache, error)
	// Upsert inserts or replaces the row keyed by (user_id, node_id, cache_type).
	Upsert(dbc dbctx.Context, row *types.UserNodeCache) error
	Delete(dbc dbctx.Context, userID uuid.UUID, nodeID string, kind types.Kind) error
}

type userNodeCacheRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserNodeCacheRepo(db *gorm.DB, baseLog *logger.Logger) UserNodeCacheRepo {
	return &userNodeCacheRepo{db: db, log: baseLog.With("repo", "UserNodeCacheRepo")}
}

// Get returns (nil, nil) on a miss.
func (r *userNodeCacheRepo) Get(dbc dbctx.Context, userID uuid.UUID, nodeID string, kind types.Kind) (*types.UserNodeCache, error) {
	if userID == uuid.Nil || nodeID == "" || !kind.Valid() {
		return nil, nil
	}
	var row types.UserNodeCache
	err := dbc.DB(r.db).
		Where("user_id = ? AND node_id = ? AND cache_type = ?", userID, nodeID, kind).
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *userNodeCacheRepo) Upsert(dbc dbctx.Context, row *types.UserNodeCache) error {
	if row == nil {
		return nil
	}
	if row.UserID == uuid.Nil || row.NodeID == "" || !row.CacheType.Valid() {
		return errors.New("user_node_cache: incomplete key")
	}
	row.UpdatedAt = time.Now().UTC()
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "node_id"}, {Name: "cache_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(row).Error
}

func (r *userNodeCacheRepo) Delete(dbc dbctx.Context, userID uuid.UUID, nodeID string, kind types.Kind) error {
	if userID == uuid.Nil || nodeID == "" {
		return nil
	}
	return dbc.DB(r.db).
		Where("user_id = ? AND node_id = ? AND cache_type = ?", userID, nodeID, kind).
		Delete(&types.UserNodeCache{}).Error
}
