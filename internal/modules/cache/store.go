package cache

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	types "github.com/yungbote/careermap-backend/internal/domain/cache"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

// Store persists raw payloads. Get reports a miss with ok=false and no error.
type Store interface {
	Get(ctx context.Context, key Key) (data []byte, ok bool, err error)
	Put(ctx context.Context, key Key, data []byte) error
}

// evicter is implemented by stores that can drop a single entry.
type evicter interface {
	Delete(ctx context.Context, key Key) error
}

type gormStore struct {
	repo repos.UserNodeCacheRepo
}

// NewGormStore keeps entries in the user_node_cache table.
func NewGormStore(repo repos.UserNodeCacheRepo) Store {
	return &gormStore{repo: repo}
}

func (s *gormStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	row, err := s.repo.Get(dbctx.Context{Ctx: ctx}, key.UserID, key.NodeID, key.Kind)
	if err != nil || row == nil {
		return nil, false, err
	}
	return []byte(row.Data), true, nil
}

func (s *gormStore) Put(ctx context.Context, key Key, data []byte) error {
	return s.repo.Upsert(dbctx.Context{Ctx: ctx}, &types.UserNodeCache{
		UserID:    key.UserID,
		NodeID:    key.NodeID,
		CacheType: key.Kind,
		Data:      datatypes.JSON(data),
	})
}

type redisStore struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewRedisStore keeps entries in Redis with a TTL; ttl <= 0 means no expiry.
func NewRedisStore(rdb goredis.Cmdable, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	raw, err := s.rdb.Get(ctx, key.String()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *redisStore) Put(ctx context.Context, key Key, data []byte) error {
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, key.String(), data, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key Key) error {
	return s.rdb.Del(ctx, key.String()).Err()
}

type tieredStore struct {
	hot  Store
	cold Store
	log  *logger.Logger
}

// NewTieredStore reads hot then cold, backfilling hot on a cold hit, and
// writes cold first. Hot tier failures are logged and ignored; a failed hot
// write evicts the old hot entry so reads fall through to cold.
func NewTieredStore(log *logger.Logger, hot, cold Store) Store {
	if hot == nil {
		return cold
	}
	if cold == nil {
		return hot
	}
	return &tieredStore{hot: hot, cold: cold, log: log.With("component", "TieredCacheStore")}
}

func (s *tieredStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	if data, ok, err := s.hot.Get(ctx, key); err == nil && ok {
		return data, true, nil
	} else if err != nil {
		s.log.Warn("hot cache read failed", "key", key.String(), "error", err)
	}
	data, ok, err := s.cold.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := s.hot.Put(ctx, key, data); err != nil {
		s.log.Warn("hot cache backfill failed", "key", key.String(), "error", err)
	}
	return data, true, nil
}

func (s *tieredStore) Put(ctx context.Context, key Key, data []byte) error {
	if err := s.cold.Put(ctx, key, data); err != nil {
		return err
	}
	if err := s.hot.Put(ctx, key, data); err != nil {
		s.log.Warn("hot cache write failed", "key", key.String(), "error", err)
		if ev, ok := s.hot.(evicter); ok {
			if err := ev.Delete(ctx, key); err != nil {
				s.log.Warn("hot cache evict failed", "key", key.String(), "error", err)
			}
		}
	}
	return nil
}
