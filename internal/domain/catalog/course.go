package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is one row of the university course catalog.
type Course struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Subject           string         `gorm:"column:subject;type:text;not null;index" json:"subject"`
	CourseNumber      string         `gorm:"column:course_number;type:text;not null" json:"course_number"`
	CourseDescription string         `gorm:"column:course_description;type:text;not null;default:''" json:"course_description"`
	Embedding         datatypes.JSON `gorm:"column:embedding;type:jsonb" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Course) TableName() string { return "catalog_course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Organization is a student club or organization.
type Organization struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;type:text;not null;index" json:"name"`
	Description string         `gorm:"column:description;type:text;not null;default:''" json:"description"`
	URL         string         `gorm:"column:url;type:text;not null;default:''" json:"url,omitempty"`
	Embedding   datatypes.JSON `gorm:"column:embedding;type:jsonb" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Organization) TableName() string { return "catalog_organization" }

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// DecodeEmbedding reads a JSON float array; nil when absent or malformed.
func DecodeEmbedding(raw datatypes.JSON) []float32 {
	if len(raw) == 0 {
		return nil
	}
	var v []float32
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// EncodeEmbedding is the inverse of DecodeEmbedding.
func EncodeEmbedding(v []float32) datatypes.JSON {
	if len(v) == 0 {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// ScoredCourse is a nearest-neighbour hit.
type ScoredCourse struct {
	Course     *Course
	Similarity float64
}

// ScoredOrganization is a nearest-neighbour hit.
type ScoredOrganization struct {
	Organization *Organization
	Similarity   float64
}
