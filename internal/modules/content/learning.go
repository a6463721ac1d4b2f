package content

import (
	"context"
	"strings"

	"github.com/yungbote/careermap-backend/internal/domain/catalog"
	types "github.com/yungbote/careermap-backend/internal/domain/content"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

const (
	learningResultLimit  = 6
	courseTitleDescChars = 60
)

// CatalogLookup is the university catalog as seen by the learning generator.
// Implementations swallow storage and embedding errors and return empty results.
type CatalogLookup interface {
	Supported(university string) bool
	SearchCourses(ctx context.Context, term string, limit int) []*catalog.Course
	SearchOrganizations(ctx context.Context, term string, limit int) []*catalog.Organization
	NearestForText(ctx context.Context, text string, k int) ([]catalog.ScoredCourse, []catalog.ScoredOrganization)
}

type LearningGenerator struct {
	log     *logger.Logger
	catalog CatalogLookup
}

func NewLearningGenerator(log *logger.Logger, lookup CatalogLookup) *LearningGenerator {
	return &LearningGenerator{log: log.With("module", "LearningGenerator"), catalog: lookup}
}

// Generate lists classes and clubs for skill. Catalog lookups only run for a
// supported university; empty lists get one generic guidance item each.
func (g *LearningGenerator) Generate(ctx context.Context, skill string, university *string) types.SkillContent {
	skill = strings.TrimSpace(skill)
	out := types.SkillContent{Classes: []types.Resource{}, Clubs: []types.Resource{}}
	if university != nil && strings.TrimSpace(*university) != "" {
		u := strings.TrimSpace(*university)
		out.University = &u
	}

	if g.catalog != nil && out.University != nil && g.catalog.Supported(*out.University) {
		courses := g.catalog.SearchCourses(ctx, skill, learningResultLimit)
		orgs := g.catalog.SearchOrganizations(ctx, skill, learningResultLimit)

		if len(courses) < learningResultLimit || len(orgs) < learningResultLimit {
			nc, no := g.catalog.NearestForText(ctx, skill, learningResultLimit)
			courses = topUpCourses(courses, nc, learningResultLimit)
			orgs = topUpOrganizations(orgs, no, learningResultLimit)
		}

		for _, c := range courses {
			out.Classes = append(out.Classes, types.Resource{Title: CourseTitle(c)})
		}
		for _, o := range orgs {
			out.Clubs = append(out.Clubs, types.Resource{Title: o.Name, URL: strings.TrimSpace(o.URL)})
		}
		g.log.Debug("catalog lookup", "skill", skill, "classes", len(out.Classes), "clubs", len(out.Clubs))
	}

	if len(out.Classes) == 0 {
		out.Classes = FallbackClasses(skill)
	}
	if len(out.Clubs) == 0 {
		out.Clubs = FallbackClubs(skill)
	}
	return out
}

// CourseTitle renders "SUBJECT NUMBER: description" with the description
// cut to 60 characters.
func CourseTitle(c *catalog.Course) string {
	title := strings.TrimSpace(c.Subject + " " + c.CourseNumber)
	desc := strings.TrimSpace(c.CourseDescription)
	if desc == "" {
		return title
	}
	r := []rune(desc)
	if len(r) > courseTitleDescChars {
		return title + ": " + string(r[:courseTitleDescChars]) + "..."
	}
	return title + ": " + desc
}

func topUpCourses(have []*catalog.Course, near []catalog.ScoredCourse, limit int) []*catalog.Course {
	seen := make(map[string]bool, len(have))
	for _, c := range have {
		seen[c.ID.String()] = true
	}
	for _, s := range near {
		if len(have) >= limit {
			break
		}
		if s.Course == nil || seen[s.Course.ID.String()] {
			continue
		}
		seen[s.Course.ID.String()] = true
		have = append(have, s.Course)
	}
	return have
}

func topUpOrganizations(have []*catalog.Organization, near []catalog.ScoredOrganization, limit int) []*catalog.Organization {
	seen := make(map[string]bool, len(have))
	for _, o := range have {
		seen[o.ID.String()] = true
	}
	for _, s := range near {
		if len(have) >= limit {
			break
		}
		if s.Organization == nil || seen[s.Organization.ID.String()] {
			continue
		}
		seen[s.Organization.ID.String()] = true
		have = append(have, s.Organization)
	}
	return have
}
