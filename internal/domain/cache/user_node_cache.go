package cache

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Kind discriminates the payload shape stored in UserNodeCache.Data.
type Kind string

const (
	KindCareer Kind = "career"
	KindSkill  Kind = "skill"
)

func (k Kind) Valid() bool { return k == KindCareer || k == KindSkill }

// UserNodeCache holds generated content per (user, node, kind). NodeID is a
// weak reference; deleting a node does not cascade here.
type UserNodeCache struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_node_cache_key,priority:1" json:"user_id"`
	NodeID    string         `gorm:"column:node_id;type:text;not null;uniqueIndex:idx_user_node_cache_key,priority:2" json:"node_id"`
	CacheType Kind           `gorm:"column:cache_type;type:text;not null;uniqueIndex:idx_user_node_cache_key,priority:3" json:"cache_type"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null" json:"data"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserNodeCache) TableName() string { return "user_node_cache" }

func (c *UserNodeCache) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return nil
}
