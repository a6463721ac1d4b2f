package graph

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Edge is stored directed but read as undirected.
type Edge struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceID string    `gorm:"column:source_id;type:text;not null;index" json:"source_id"`
	TargetID string    `gorm:"column:target_id;type:text;not null;index" json:"target_id"`
	Weight   float64   `gorm:"column:weight;not null;default:1" json:"weight"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Edge) TableName() string { return "edge" }

func (e *Edge) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Weight == 0 {
		e.Weight = 1
	}
	return nil
}

// Other returns the endpoint opposite id.
func (e *Edge) Other(id string) string {
	if e.SourceID == id {
		return e.TargetID
	}
	return e.SourceID
}

// Touches reports whether id is one of the endpoints.
func (e *Edge) Touches(id string) bool {
	return e.SourceID == id || e.TargetID == id
}
