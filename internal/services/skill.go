package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	cachetypes "github.com/yungbote/careermap-backend/internal/domain/cache"
	contenttypes "github.com/yungbote/careermap-backend/internal/domain/content"
	graphtypes "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/modules/cache"
	"github.com/yungbote/careermap-backend/internal/modules/content"
	"github.com/yungbote/careermap-backend/internal/modules/graph"
	"github.com/yungbote/careermap-backend/internal/observability"
	"github.com/yungbote/careermap-backend/internal/platform/apierr"
	"github.com/yungbote/careermap-backend/internal/platform/ctxutil"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

var (
	errMissingSkill   = apierr.New(http.StatusBadRequest, "missing_skill", errors.New("Skill name is required"))
	errMissingSkillID = apierr.New(http.StatusBadRequest, "missing_skill", errors.New("Skill ID is required"))
)

type SkillLearningResponse struct {
	Classes    []contenttypes.Resource `json:"classes"`
	Clubs      []contenttypes.Resource `json:"clubs"`
	University *string                 `json:"university"`
	Cached     bool                    `json:"cached"`
	Reason     string                  `json:"reason,omitempty"`
}

type SkillService interface {
	Learning(ctx context.Context, skill string, regenerate bool) (*SkillLearningResponse, error)
	Careers(ctx context.Context, skill string) ([]graph.CareerView, error)
}

type skillService struct {
	log       *logger.Logger
	nodes     repos.NodeRepo
	cache     *cache.ContentCache
	generator *content.LearningGenerator
	resolver  *graph.Resolver
}

func NewSkillService(log *logger.Logger, nodes repos.NodeRepo, contentCache *cache.ContentCache, generator *content.LearningGenerator, resolver *graph.Resolver) SkillService {
	return &skillService{
		log:       log.With("service", "SkillService"),
		nodes:     nodes,
		cache:     contentCache,
		generator: generator,
		resolver:  resolver,
	}
}

func (ss *skillService) Learning(ctx context.Context, skill string, regenerate bool) (resp *SkillLearningResponse, err error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, errMissingSkill
	}
	var university *string
	if u := strings.TrimSpace(ctxutil.University(ctx)); u != "" {
		university = &u
	}
	defer func() {
		if r := recover(); r != nil {
			ss.log.Error("skill request panicked, serving fallback", "skill", skill, "panic", r)
			observability.Current().IncFallback(string(cachetypes.KindSkill), string(content.ReasonUnhandled))
			resp = &SkillLearningResponse{
				Classes:    content.FallbackClasses(skill),
				Clubs:      content.FallbackClubs(skill),
				University: university,
				Reason:     string(content.ReasonUnhandled),
			}
			err = nil
		}
	}()

	var key cache.Key
	if node := ss.skillNode(ctx, skill); node != nil {
		key = cache.NewKey(ctxutil.UserID(ctx), node.ID, cachetypes.KindSkill)
	}
	if !regenerate && key.Valid() {
		if cached, ok := ss.cache.GetSkill(ctx, key); ok {
			return &SkillLearningResponse{Classes: cached.Classes, Clubs: cached.Clubs, University: cached.University, Cached: true}, nil
		}
	}

	out := ss.generator.Generate(ctx, skill, university)
	if key.Valid() {
		if err := ss.cache.PutSkill(ctx, key, out); err != nil {
			ss.log.Warn("caching skill content failed", "skill", skill, "error", err)
		}
	}
	return &SkillLearningResponse{Classes: out.Classes, Clubs: out.Clubs, University: out.University}, nil
}

func (ss *skillService) Careers(ctx context.Context, skill string) ([]graph.CareerView, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, errMissingSkillID
	}
	return ss.resolver.SkillCareers(ctx, skill)
}

func (ss *skillService) skillNode(ctx context.Context, skill string) *graphtypes.Node {
	if ss.nodes == nil {
		return nil
	}
	node, err := ss.nodes.FindByLabel(dbctx.Context{Ctx: ctx}, skill, graphtypes.NodeTypeSkill)
	if err != nil {
		ss.log.Warn("skill node lookup failed", "skill", skill, "error", err)
		return nil
	}
	return node
}
