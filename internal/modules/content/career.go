package content

import (
	"context"
	"fmt"
	"time"

	types "github.com/yungbote/careermap-backend/internal/domain/content"
	"github.com/yungbote/careermap-backend/internal/platform/llm"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

// CareerResult is generated career content plus its provenance.
type CareerResult struct {
	Content types.CareerContent
	// Fallback marks fully templated content.
	Fallback bool
	// Partial marks generated content where one section is templated.
	Partial  bool
	Reason   Reason
	Provider string
}

// Cacheable reports whether the result is genuine generated content.
func (r CareerResult) Cacheable() bool {
	return !r.Fallback && !r.Partial && r.Content.Valid()
}

type CareerGenerator struct {
	log     *logger.Logger
	cascade *llm.Cascade
	now     func() time.Time
}

func NewCareerGenerator(log *logger.Logger, cascade *llm.Cascade) *CareerGenerator {
	return &CareerGenerator{
		log:     log.With("module", "CareerGenerator"),
		cascade: cascade,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether any provider is configured.
func (g *CareerGenerator) Enabled() bool {
	return g != nil && g.cascade.Len() > 0
}

// Generate never fails: provider or parse failures yield templated content
// with a Reason.
func (g *CareerGenerator) Generate(ctx context.Context, career, chatContext string) CareerResult {
	if !g.Enabled() {
		return FallbackCareer(career, ReasonNoAPIKey, g.now())
	}

	req := llm.Request{System: CareerSystemPrompt, Prompt: CareerPrompt(career, chatContext)}
	res, err := g.cascade.Generate(ctx, req, acceptCareerResponse)
	if err != nil {
		if out, ok := g.salvage(career, res); ok {
			g.log.Info("career response missing description, keeping pathway and income", "career", career, "provider", res.Provider, "error", err)
			return out
		}
		g.log.Warn("career generation failed, using fallback", "career", career, "error", err)
		return FallbackCareer(career, ReasonAPIError, g.now())
	}

	parsed, err := safeParseCareer(res.Text)
	if err != nil || parsed.Description == "" {
		g.log.Warn("career response unparseable, using fallback", "career", career, "provider", res.Provider, "error", err)
		return FallbackCareer(career, ReasonAPIError, g.now())
	}

	out := CareerResult{
		Provider: res.Provider,
		Content: types.CareerContent{
			Description:      parsed.Description,
			DescriptionLinks: parsed.DescriptionLinks,
			Income:           parsed.Income,
			Pathway:          parsed.Pathway,
			PathwayLinks:     parsed.PathwayLinks,
			GeneratedAt:      g.now(),
		},
	}
	if len(out.Content.Pathway) == 0 {
		g.log.Info("career response missing pathway, using generic steps", "career", career, "provider", res.Provider)
		out.Content.Pathway = FallbackPathway(career)
		out.Content.PathwayLinks = nil
		out.Partial = true
	}
	out.Content.Normalize()
	return out
}

// salvage keeps the pathway and income of a rejected response, pairing them
// with the templated description.
func (g *CareerGenerator) salvage(career string, res llm.Result) (CareerResult, bool) {
	if res.Text == "" {
		return CareerResult{}, false
	}
	parsed, err := safeParseCareer(res.Text)
	if err != nil {
		return CareerResult{}, false
	}
	if len(parsed.Pathway) == 0 && parsed.Income == (types.Income{}) {
		return CareerResult{}, false
	}
	out := CareerResult{
		Provider: res.Provider,
		Partial:  true,
		Content: types.CareerContent{
			Description:  FallbackDescription(career, ReasonAPIError),
			Income:       parsed.Income,
			Pathway:      parsed.Pathway,
			PathwayLinks: parsed.PathwayLinks,
			GeneratedAt:  g.now(),
		},
	}
	if len(out.Content.Pathway) == 0 {
		out.Content.Pathway = FallbackPathway(career)
		out.Content.PathwayLinks = nil
	}
	out.Content.Normalize()
	return out, true
}

func acceptCareerResponse(text string) bool {
	parsed, err := safeParseCareer(text)
	return err == nil && parsed.Description != ""
}

func safeParseCareer(text string) (parsed ParsedCareer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse career response: %v", r)
		}
	}()
	return ParseCareerResponse(text), nil
}
