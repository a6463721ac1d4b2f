package graph

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type NodeType string

const (
	NodeTypeCareer NodeType = "career"
	NodeTypeSkill  NodeType = "skill"
)

// RootNodeID is the canonical center of the career map.
const RootNodeID = "career"

// Node is a career or skill in the map. ID doubles as the external label
// for seeded data.
type Node struct {
	ID       string         `gorm:"type:text;primaryKey" json:"id"`
	Type     NodeType       `gorm:"column:type;type:text;not null;index" json:"type"`
	Label    string         `gorm:"column:label;type:text;not null;index" json:"label"`
	Summary  string         `gorm:"column:summary;type:text;not null;default:''" json:"summary,omitempty"`
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Node) TableName() string { return "node" }

// Pathway returns metadata.pathway, or an empty slice when absent or malformed.
func (n *Node) Pathway() []string {
	out := []string{}
	if n == nil || len(n.Metadata) == 0 {
		return out
	}
	var meta struct {
		Pathway []string `json:"pathway"`
	}
	if err := json.Unmarshal(n.Metadata, &meta); err != nil {
		return out
	}
	for _, step := range meta.Pathway {
		if s := strings.TrimSpace(step); s != "" {
			out = append(out, s)
		}
	}
	return out
}
