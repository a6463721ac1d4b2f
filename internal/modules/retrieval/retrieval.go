package retrieval

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	"github.com/yungbote/careermap-backend/internal/domain/catalog"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/llm"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

const (
	DefaultSupportedUniversity = "berkeley"
	DefaultEmbedTimeout        = 10 * time.Second
)

// Helper answers catalog lookups for a single supported institution.
// Every failure degrades to an empty result.
type Helper struct {
	log       *logger.Logger
	catalog   repos.CatalogRepo
	embedder  llm.Embedder
	supported string
	timeout   time.Duration
}

// New builds a Helper. embedTimeout bounds each embedding call; zero
// selects DefaultEmbedTimeout.
func New(log *logger.Logger, catalogRepo repos.CatalogRepo, embedder llm.Embedder, supported string, embedTimeout time.Duration) *Helper {
	supported = strings.ToLower(strings.TrimSpace(supported))
	if supported == "" {
		supported = DefaultSupportedUniversity
	}
	if embedTimeout <= 0 {
		embedTimeout = DefaultEmbedTimeout
	}
	if e, ok := embedder.(*llm.OpenAIEmbedder); ok && e == nil {
		embedder = nil
	}
	return &Helper{
		log:       log.With("module", "Retrieval"),
		catalog:   catalogRepo,
		embedder:  embedder,
		supported: supported,
		timeout:   embedTimeout,
	}
}

// Supported is a case-insensitive substring match on the affiliation.
func (h *Helper) Supported(university string) bool {
	if h == nil || h.catalog == nil {
		return false
	}
	return strings.Contains(strings.ToLower(university), h.supported)
}

// CanEmbed reports whether nearest-neighbour lookups are possible.
func (h *Helper) CanEmbed() bool {
	return h != nil && h.embedder != nil && h.catalog != nil
}

func (h *Helper) NearestCourses(ctx context.Context, vec []float32, k int) []catalog.ScoredCourse {
	if h == nil || h.catalog == nil || len(vec) == 0 {
		return []catalog.ScoredCourse{}
	}
	out, err := h.catalog.NearestCourses(dbctx.Context{Ctx: ctx}, vec, k)
	if err != nil {
		h.log.Warn("nearest courses failed", "error", err)
		return []catalog.ScoredCourse{}
	}
	return out
}

func (h *Helper) NearestOrganizations(ctx context.Context, vec []float32, k int) []catalog.ScoredOrganization {
	if h == nil || h.catalog == nil || len(vec) == 0 {
		return []catalog.ScoredOrganization{}
	}
	out, err := h.catalog.NearestOrganizations(dbctx.Context{Ctx: ctx}, vec, k)
	if err != nil {
		h.log.Warn("nearest organizations failed", "error", err)
		return []catalog.ScoredOrganization{}
	}
	return out
}

// NearestForText embeds text once and runs both lookups concurrently.
func (h *Helper) NearestForText(ctx context.Context, text string, k int) ([]catalog.ScoredCourse, []catalog.ScoredOrganization) {
	courses := []catalog.ScoredCourse{}
	orgs := []catalog.ScoredOrganization{}
	if !h.CanEmbed() || strings.TrimSpace(text) == "" || k <= 0 {
		return courses, orgs
	}
	ectx, cancel := context.WithTimeout(ctx, h.timeout)
	vec, err := h.embedder.Embed(ectx, text)
	cancel()
	if err != nil {
		h.log.Warn("embedding failed", "error", err)
		return courses, orgs
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		courses = h.NearestCourses(gctx, vec, k)
		return nil
	})
	g.Go(func() error {
		orgs = h.NearestOrganizations(gctx, vec, k)
		return nil
	})
	_ = g.Wait()
	return courses, orgs
}

func (h *Helper) SearchCourses(ctx context.Context, term string, limit int) []*catalog.Course {
	if h == nil || h.catalog == nil {
		return []*catalog.Course{}
	}
	out, err := h.catalog.SearchCourses(dbctx.Context{Ctx: ctx}, term, limit)
	if err != nil {
		h.log.Warn("course search failed", "error", err)
		return []*catalog.Course{}
	}
	return out
}

func (h *Helper) SearchOrganizations(ctx context.Context, term string, limit int) []*catalog.Organization {
	if h == nil || h.catalog == nil {
		return []*catalog.Organization{}
	}
	out, err := h.catalog.SearchOrganizations(dbctx.Context{Ctx: ctx}, term, limit)
	if err != nil {
		h.log.Warn("organization search failed", "error", err)
		return []*catalog.Organization{}
	}
	return out
}
