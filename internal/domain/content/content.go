package content

import (
	"strings"
	"time"
)

// Link is an inline citation extracted from generated text.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Income holds display-ready salary figures. Either field may be empty.
type Income struct {
	Average string `json:"average,omitempty"`
	Range   string `json:"range,omitempty"`
}

// CareerContent is the cached career payload.
type CareerContent struct {
	Description      string    `json:"description"`
	Pathway          []string  `json:"pathway"`
	DescriptionLinks []Link    `json:"descriptionUrls"`
	PathwayLinks     [][]Link  `json:"pathwayUrls"`
	Income           Income    `json:"income"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// Valid reports whether the payload may be served from cache.
func (c *CareerContent) Valid() bool {
	if c == nil {
		return false
	}
	if strings.TrimSpace(c.Description) == "" {
		return false
	}
	return len(c.Pathway) > 0
}

// Normalize fills nil slices and aligns PathwayLinks with Pathway.
func (c *CareerContent) Normalize() {
	if c == nil {
		return
	}
	if c.Pathway == nil {
		c.Pathway = []string{}
	}
	if c.DescriptionLinks == nil {
		c.DescriptionLinks = []Link{}
	}
	aligned := make([][]Link, len(c.Pathway))
	for i := range aligned {
		if i < len(c.PathwayLinks) && c.PathwayLinks[i] != nil {
			aligned[i] = c.PathwayLinks[i]
		} else {
			aligned[i] = []Link{}
		}
	}
	c.PathwayLinks = aligned
}

// Resource is a class or club suggestion.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// SkillContent is the cached skill payload.
type SkillContent struct {
	Classes    []Resource `json:"classes"`
	Clubs      []Resource `json:"clubs"`
	University *string    `json:"university"`
}

// Valid reports whether the payload is well formed enough to serve.
func (s *SkillContent) Valid() bool {
	return s != nil && s.Classes != nil && s.Clubs != nil
}
