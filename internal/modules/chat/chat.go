package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	"github.com/yungbote/careermap-backend/internal/domain/catalog"
	types "github.com/yungbote/careermap-backend/internal/domain/chat"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/llm"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

const (
	// RecommendationLimit bounds each recommendation list.
	RecommendationLimit = 3
	// ContextMessages is how many recent messages feed career prompts.
	ContextMessages = 5
)

// Retriever is the part of the retrieval helper chat needs.
type Retriever interface {
	Supported(university string) bool
	CanEmbed() bool
	NearestForText(ctx context.Context, text string, k int) ([]catalog.ScoredCourse, []catalog.ScoredOrganization)
}

type Recommendation struct {
	Title      string  `json:"title"`
	URL        string  `json:"url,omitempty"`
	Similarity float64 `json:"similarity"`
}

type Recommendations struct {
	Courses []Recommendation `json:"courses"`
	Clubs   []Recommendation `json:"clubs"`
}

type Reply struct {
	Text            string           `json:"text"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
	Provider        string           `json:"-"`
}

type Responder struct {
	log       *logger.Logger
	cascade   *llm.Cascade
	retriever Retriever
	messages  repos.ChatMessageRepo
}

// NewResponder wires the chat reply path. retriever and messages are optional.
func NewResponder(log *logger.Logger, cascade *llm.Cascade, retriever Retriever, messages repos.ChatMessageRepo) *Responder {
	return &Responder{
		log:       log.With("module", "ChatResponder"),
		cascade:   cascade,
		retriever: retriever,
		messages:  messages,
	}
}

// Reply answers content. It never fails: with no provider it echoes
// guidance, and a provider failure yields an apology.
func (r *Responder) Reply(ctx context.Context, content, university string) Reply {
	content = strings.TrimSpace(content)
	if r.cascade.Len() == 0 {
		return Reply{Text: echoText(content)}
	}

	var (
		courses []catalog.ScoredCourse
		orgs    []catalog.ScoredOrganization
	)
	if r.retriever != nil && r.retriever.CanEmbed() && r.retriever.Supported(university) {
		courses, orgs = r.retriever.NearestForText(ctx, content, RecommendationLimit)
	}

	req := llm.Request{
		System:      SystemPrompt(university, courses, orgs),
		Prompt:      content,
		MaxTokens:   500,
		Temperature: 0.4,
	}
	res, err := r.cascade.Generate(ctx, req, nil)
	if err != nil {
		r.log.Warn("chat generation failed", "error", err)
		return Reply{Text: unavailableText}
	}

	out := Reply{Text: strings.TrimSpace(res.Text), Provider: res.Provider}
	if out.Text == "" {
		out.Text = "No response"
	}
	if len(courses) > 0 || len(orgs) > 0 {
		out.Recommendations = toRecommendations(courses, orgs)
	}
	return out
}

// Persist appends the user/assistant pair. Errors are logged and dropped.
func (r *Responder) Persist(ctx context.Context, userID uuid.UUID, content, reply string) {
	if r.messages == nil || userID == uuid.Nil {
		return
	}
	now := time.Now().UTC()
	// Distinct timestamps keep the pair ordered on coarse clocks.
	rows := []*types.ChatMessage{
		{UserID: userID, Role: types.RoleUser, Content: content, CreatedAt: now},
		{UserID: userID, Role: types.RoleAssistant, Content: reply, CreatedAt: now.Add(time.Millisecond)},
	}
	if _, err := r.messages.Create(dbctx.Context{Ctx: ctx}, rows); err != nil {
		r.log.Warn("saving chat messages failed", "user_id", userID, "error", err)
	}
}

// RecentContext renders the last ContextMessages messages as "role: content"
// lines, oldest first. Storage errors yield "".
func (r *Responder) RecentContext(ctx context.Context, userID uuid.UUID) string {
	if r == nil || r.messages == nil || userID == uuid.Nil {
		return ""
	}
	msgs, err := r.messages.ListRecent(dbctx.Context{Ctx: ctx}, userID, ContextMessages)
	if err != nil {
		r.log.Warn("loading chat context failed", "user_id", userID, "error", err)
		return ""
	}
	return FormatContext(msgs)
}

func FormatContext(msgs []*types.ChatMessage) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}

func toRecommendations(courses []catalog.ScoredCourse, orgs []catalog.ScoredOrganization) *Recommendations {
	out := &Recommendations{Courses: []Recommendation{}, Clubs: []Recommendation{}}
	for _, c := range courses {
		if c.Course == nil {
			continue
		}
		out.Courses = append(out.Courses, Recommendation{Title: courseLine(c.Course), Similarity: c.Similarity})
	}
	for _, o := range orgs {
		if o.Organization == nil {
			continue
		}
		out.Clubs = append(out.Clubs, Recommendation{Title: o.Organization.Name, URL: o.Organization.URL, Similarity: o.Similarity})
	}
	return out
}
