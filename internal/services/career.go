package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	cachetypes "github.com/yungbote/careermap-backend/internal/domain/cache"
	contenttypes "github.com/yungbote/careermap-backend/internal/domain/content"
	graphtypes "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/modules/cache"
	"github.com/yungbote/careermap-backend/internal/modules/content"
	"github.com/yungbote/careermap-backend/internal/observability"
	"github.com/yungbote/careermap-backend/internal/platform/apierr"
	"github.com/yungbote/careermap-backend/internal/platform/ctxutil"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

var errMissingCareer = apierr.New(http.StatusBadRequest, "missing_career", errors.New("Career name is required"))

// CareerResponse is the career endpoint body. Reason is set only for
// fallback-quality content.
type CareerResponse struct {
	Description      string                `json:"description"`
	Pathway          []string              `json:"pathway"`
	DescriptionLinks []contenttypes.Link   `json:"descriptionUrls"`
	PathwayLinks     [][]contenttypes.Link `json:"pathwayUrls"`
	Income           contenttypes.Income   `json:"income"`
	Cached           bool                  `json:"cached"`
	Reason           string                `json:"reason,omitempty"`
}

func newCareerResponse(c contenttypes.CareerContent, cached bool, reason content.Reason) *CareerResponse {
	c.Normalize()
	return &CareerResponse{
		Description:      c.Description,
		Pathway:          c.Pathway,
		DescriptionLinks: c.DescriptionLinks,
		PathwayLinks:     c.PathwayLinks,
		Income:           c.Income,
		Cached:           cached,
		Reason:           string(reason),
	}
}

// ChatContextSource supplies recent conversation text for prompts.
type ChatContextSource interface {
	RecentContext(ctx context.Context, userID uuid.UUID) string
}

type CareerService interface {
	// Get never fails for a non-empty career: generation problems surface as
	// fallback content with a Reason.
	Get(ctx context.Context, career string, regenerate bool) (*CareerResponse, error)
}

type careerService struct {
	log       *logger.Logger
	nodes     repos.NodeRepo
	cache     *cache.ContentCache
	generator *content.CareerGenerator
	history   ChatContextSource
	deadline  time.Duration
}

// NewCareerService wires career content. nodes, contentCache and history are
// optional; deadline bounds a whole generation.
func NewCareerService(log *logger.Logger, nodes repos.NodeRepo, contentCache *cache.ContentCache, generator *content.CareerGenerator, history ChatContextSource, deadline time.Duration) CareerService {
	return &careerService{
		log:       log.With("service", "CareerService"),
		nodes:     nodes,
		cache:     contentCache,
		generator: generator,
		history:   history,
		deadline:  deadline,
	}
}

func (cs *careerService) Get(ctx context.Context, career string, regenerate bool) (resp *CareerResponse, err error) {
	career = strings.TrimSpace(career)
	if career == "" {
		return nil, errMissingCareer
	}
	defer func() {
		if r := recover(); r != nil {
			cs.log.Error("career request panicked, serving fallback", "career", career, "panic", r)
			observability.Current().IncFallback(string(cachetypes.KindCareer), string(content.ReasonUnhandled))
			fb := content.FallbackCareer(career, content.ReasonUnhandled, time.Now().UTC())
			resp, err = newCareerResponse(fb.Content, false, fb.Reason), nil
		}
	}()

	userID := ctxutil.UserID(ctx)
	node := cs.ensureNode(ctx, career)

	var key cache.Key
	if node != nil {
		key = cache.NewKey(userID, node.ID, cachetypes.KindCareer)
	}
	if !regenerate && key.Valid() {
		if cached, ok := cs.cache.GetCareer(ctx, key); ok {
			return newCareerResponse(*cached, true, content.ReasonNone), nil
		}
	}

	chatContext := ""
	if cs.history != nil && userID != uuid.Nil {
		chatContext = cs.history.RecentContext(ctx, userID)
	}

	genCtx := ctx
	if cs.deadline > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, cs.deadline)
		defer cancel()
	}
	result := cs.generator.Generate(genCtx, career, chatContext)
	if result.Fallback {
		observability.Current().IncFallback(string(cachetypes.KindCareer), string(result.Reason))
	}

	if result.Cacheable() && key.Valid() {
		if err := cs.cache.PutCareer(ctx, key, result.Content); err != nil {
			cs.log.Warn("caching career content failed", "career", career, "error", err)
		}
	}

	reason := content.ReasonNone
	if result.Fallback {
		reason = result.Reason
	}
	return newCareerResponse(result.Content, false, reason), nil
}

// ensureNode finds the career node by label, creating it when missing.
// Storage failures are logged and yield nil.
func (cs *careerService) ensureNode(ctx context.Context, career string) *graphtypes.Node {
	if cs.nodes == nil {
		return nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	node, err := cs.nodes.FindByLabel(dbc, career, graphtypes.NodeTypeCareer)
	if err != nil {
		cs.log.Warn("career node lookup failed", "career", career, "error", err)
		return nil
	}
	if node != nil {
		return node
	}
	node, err = cs.nodes.CreateIfMissing(dbc, &graphtypes.Node{ID: career, Type: graphtypes.NodeTypeCareer, Label: career})
	if err != nil {
		cs.log.Warn("creating career node failed", "career", career, "error", err)
		return nil
	}
	return node
}
