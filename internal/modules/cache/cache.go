package cache

import (
	"context"
	"encoding/json"
	"errors"

	types "github.com/yungbote/careermap-backend/internal/domain/cache"
	"github.com/yungbote/careermap-backend/internal/domain/content"
	"github.com/yungbote/careermap-backend/internal/observability"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

var ErrInvalidKey = errors.New("cache: invalid key")

// ContentCache is the typed per-user content cache. Reads never fail: storage
// errors and malformed payloads are reported as misses.
type ContentCache struct {
	store Store
	log   *logger.Logger
}

// New returns a cache over store. A nil store yields a cache that always
// misses and drops writes.
func New(log *logger.Logger, store Store) *ContentCache {
	return &ContentCache{store: store, log: log.With("module", "ContentCache")}
}

func (c *ContentCache) Enabled() bool { return c != nil && c.store != nil }

func (c *ContentCache) GetCareer(ctx context.Context, key Key) (*content.CareerContent, bool) {
	if key.Kind != types.KindCareer {
		return nil, false
	}
	var out content.CareerContent
	if !c.get(ctx, key, &out) {
		return nil, false
	}
	if !out.Valid() {
		c.log.Info("cache invalid", "node_id", key.NodeID, "kind", key.Kind, "user_id", key.UserID)
		observability.Current().IncCacheLookup(string(key.Kind), "invalid")
		return nil, false
	}
	out.Normalize()
	c.log.Debug("cache hit", "node_id", key.NodeID, "kind", key.Kind, "user_id", key.UserID)
	observability.Current().IncCacheLookup(string(key.Kind), "hit")
	return &out, true
}

func (c *ContentCache) PutCareer(ctx context.Context, key Key, v content.CareerContent) error {
	if key.Kind != types.KindCareer {
		return ErrInvalidKey
	}
	v.Normalize()
	return c.put(ctx, key, v)
}

func (c *ContentCache) GetSkill(ctx context.Context, key Key) (*content.SkillContent, bool) {
	if key.Kind != types.KindSkill {
		return nil, false
	}
	var out content.SkillContent
	if !c.get(ctx, key, &out) {
		return nil, false
	}
	if !out.Valid() {
		c.log.Info("cache invalid", "node_id", key.NodeID, "kind", key.Kind, "user_id", key.UserID)
		observability.Current().IncCacheLookup(string(key.Kind), "invalid")
		return nil, false
	}
	c.log.Debug("cache hit", "node_id", key.NodeID, "kind", key.Kind, "user_id", key.UserID)
	observability.Current().IncCacheLookup(string(key.Kind), "hit")
	return &out, true
}

func (c *ContentCache) PutSkill(ctx context.Context, key Key, v content.SkillContent) error {
	if key.Kind != types.KindSkill {
		return ErrInvalidKey
	}
	return c.put(ctx, key, v)
}

func (c *ContentCache) get(ctx context.Context, key Key, dst any) bool {
	if !c.Enabled() || !key.Valid() {
		return false
	}
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache read failed", "node_id", key.NodeID, "kind", key.Kind, "error", err)
		observability.Current().IncCacheLookup(string(key.Kind), "error")
		return false
	}
	if !ok {
		c.log.Debug("cache miss", "node_id", key.NodeID, "kind", key.Kind, "user_id", key.UserID)
		observability.Current().IncCacheLookup(string(key.Kind), "miss")
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Info("cache payload malformed", "node_id", key.NodeID, "kind", key.Kind, "error", err)
		observability.Current().IncCacheLookup(string(key.Kind), "invalid")
		return false
	}
	return true
}

func (c *ContentCache) put(ctx context.Context, key Key, v any) error {
	if !c.Enabled() {
		return nil
	}
	if !key.Valid() {
		return ErrInvalidKey
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, key, raw); err != nil {
		return err
	}
	c.log.Info("cache saved", "node_id", key.NodeID, "kind", key.Kind, "user_id", key.UserID)
	return nil
}
