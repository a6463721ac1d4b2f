package content

import (
	"fmt"
	"time"

	types "github.com/yungbote/careermap-backend/internal/domain/content"
)

// Reason annotates fallback-quality responses.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonNoAPIKey  Reason = "no_api_key"
	ReasonAPIError  Reason = "api_error"
	ReasonUnhandled Reason = "unhandled_exception"
)

func FallbackDescription(career string, reason Reason) string {
	if reason == ReasonNoAPIKey {
		return fmt.Sprintf("%s is a professional career path. To get detailed information and current career pathways, please configure a content generation API key.", career)
	}
	return fmt.Sprintf("%s is a professional career path. Use web search to find current information about this career.", career)
}

// FallbackPathway is the fixed generic pathway.
func FallbackPathway(career string) []string {
	return []string{
		fmt.Sprintf("Research %s career requirements", career),
		"Join relevant college clubs and organizations",
		"Complete relevant coursework and certifications",
		"Seek internships in the field",
		"Build a portfolio of work",
		"Network with professionals in the industry",
		"Apply for entry-level positions",
	}
}

// FallbackCareer builds fully templated content.
func FallbackCareer(career string, reason Reason, now time.Time) CareerResult {
	c := types.CareerContent{
		Description: FallbackDescription(career, reason),
		Pathway:     FallbackPathway(career),
		GeneratedAt: now,
	}
	c.Normalize()
	return CareerResult{Content: c, Fallback: true, Reason: reason}
}

func FallbackClasses(skill string) []types.Resource {
	return []types.Resource{{Title: fmt.Sprintf("Check your university's course catalog for courses related to %s", skill)}}
}

func FallbackClubs(skill string) []types.Resource {
	return []types.Resource{{Title: fmt.Sprintf("Search for student organizations related to %s on your campus", skill)}}
}
