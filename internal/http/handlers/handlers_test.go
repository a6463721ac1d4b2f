package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/careermap-backend/internal/domain/user"
	"github.com/yungbote/careermap-backend/internal/modules/chat"
	"github.com/yungbote/careermap-backend/internal/modules/graph"
	"github.com/yungbote/careermap-backend/internal/platform/apierr"
	"github.com/yungbote/careermap-backend/internal/platform/ctxutil"
	"github.com/yungbote/careermap-backend/internal/services"
)

type fakeCareerService struct {
	gotCareer     string
	gotRegenerate bool
	resp          *services.CareerResponse
	err           error
}

func (f *fakeCareerService) Get(_ context.Context, career string, regenerate bool) (*services.CareerResponse, error) {
	f.gotCareer, f.gotRegenerate = career, regenerate
	return f.resp, f.err
}

type fakeSkillService struct {
	gotRegenerate bool
	careers       []graph.CareerView
	err           error
}

func (f *fakeSkillService) Learning(_ context.Context, skill string, regenerate bool) (*services.SkillLearningResponse, error) {
	f.gotRegenerate = regenerate
	if f.err != nil {
		return nil, f.err
	}
	return &services.SkillLearningResponse{Cached: false}, nil
}

func (f *fakeSkillService) Careers(_ context.Context, skill string) ([]graph.CareerView, error) {
	return f.careers, f.err
}

type fakeAuthService struct {
	registerErr error
}

func (f *fakeAuthService) Register(_ context.Context, username, _, university string) (*types.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &types.User{ID: uuid.MustParse("6f1c1c0e-4a51-4c39-9a43-0e1d7a3c2b11"), Username: username, University: university}, nil
}

func (f *fakeAuthService) Login(context.Context, string, string) (*services.Session, error) {
	return nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("Invalid username or password"))
}

func (f *fakeAuthService) Authenticate(context.Context, string) (*ctxutil.SessionData, error) {
	return nil, apierr.ErrUnauthorized
}

type fakeChatService struct{}

func (fakeChatService) Send(_ context.Context, content string) (*chat.Reply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", errors.New("Content is required"))
	}
	return &chat.Reply{Text: "echo: " + content}, nil
}

type fakeGraphService struct{ gotCenter string }

func (f *fakeGraphService) Neighborhood(_ context.Context, center string) graph.Neighborhood {
	f.gotCenter = center
	return graph.Empty()
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCareerHandlerParsesRegenerate(t *testing.T) {
	svc := &fakeCareerService{resp: &services.CareerResponse{Description: "d", Pathway: []string{"p"}}}
	r := newEngine()
	r.GET("/api/career", NewCareerHandler(svc).GetCareer)

	rec := serve(r, http.MethodGet, "/api/career?career=Nurse&regenerate=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Nurse", svc.gotCareer)
	require.True(t, svc.gotRegenerate)

	for _, v := range []string{"1", "TRUE", "yes", ""} {
		rec = serve(r, http.MethodGet, "/api/career?career=Nurse&regenerate="+v, "")
		require.Equal(t, http.StatusOK, rec.Code)
		if svc.gotRegenerate {
			t.Fatalf("regenerate=%q should not force regeneration", v)
		}
	}
}

func TestCareerHandlerErrorEnvelope(t *testing.T) {
	svc := &fakeCareerService{err: apierr.New(http.StatusBadRequest, "invalid_request", errors.New("Career name is required"))}
	r := newEngine()
	r.GET("/api/career", NewCareerHandler(svc).GetCareer)

	rec := serve(r, http.MethodGet, "/api/career", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Career name is required", body.Error.Message)
	require.Equal(t, "invalid_request", body.Error.Code)
}

func TestServiceErrorsHideInternals(t *testing.T) {
	svc := &fakeSkillService{err: errors.New("pq: connection refused")}
	r := newEngine()
	r.GET("/api/skill/careers", NewSkillHandler(svc).GetCareers)

	rec := serve(r, http.MethodGet, "/api/skill/careers?skill=Python", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
	require.Contains(t, rec.Body.String(), "Server error")
}

func TestSkillCareersNeverNull(t *testing.T) {
	r := newEngine()
	r.GET("/api/skill/careers", NewSkillHandler(&fakeSkillService{}).GetCareers)

	rec := serve(r, http.MethodGet, "/api/skill/careers?skill=Juggling", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"careers":[]}`, rec.Body.String())
}

func TestSkillLearningPassesRegenerate(t *testing.T) {
	svc := &fakeSkillService{}
	r := newEngine()
	r.GET("/api/skill/learning", NewSkillHandler(svc).GetLearning)

	rec := serve(r, http.MethodGet, "/api/skill/learning?skill=Python&regenerate=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.gotRegenerate)
}

func TestRegisterHandler(t *testing.T) {
	r := newEngine()
	r.POST("/api/auth/register", NewAuthHandler(&fakeAuthService{}).Register)

	rec := serve(r, http.MethodPost, "/api/auth/register", `{"username":"ada","password":"pw","university":"UC Berkeley"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"6f1c1c0e-4a51-4c39-9a43-0e1d7a3c2b11","username":"ada"}`, rec.Body.String())

	rec = serve(r, http.MethodPost, "/api/auth/register", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandlerConflict(t *testing.T) {
	svc := &fakeAuthService{registerErr: apierr.New(http.StatusConflict, "username_taken", errors.New("Username taken"))}
	r := newEngine()
	r.POST("/api/auth/register", NewAuthHandler(svc).Register)

	rec := serve(r, http.MethodPost, "/api/auth/register", `{"username":"ada","password":"pw","university":"x"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Username taken")
}

func TestLoginHandlerUnauthorized(t *testing.T) {
	r := newEngine()
	r.POST("/api/auth/login", NewAuthHandler(&fakeAuthService{}).Login)

	rec := serve(r, http.MethodPost, "/api/auth/login", `{"username":"ada","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatHandler(t *testing.T) {
	r := newEngine()
	r.POST("/api/chat", NewChatHandler(fakeChatService{}).SendMessage)

	rec := serve(r, http.MethodPost, "/api/chat", `{"content":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"text":"echo: hi"}`, rec.Body.String())

	rec = serve(r, http.MethodPost, "/api/chat", `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, http.MethodPost, "/api/chat", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraphHandler(t *testing.T) {
	svc := &fakeGraphService{}
	r := newEngine()
	r.GET("/api/graph", NewGraphHandler(svc).GetGraph)

	rec := serve(r, http.MethodGet, "/api/graph?center=Nurse", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Nurse", svc.gotCenter)
	require.JSONEq(t, `{"nodes":[],"links":[],"centerId":"career"}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	r := newEngine()
	r.GET("/healthcheck", NewHealthHandler().HealthCheck)

	rec := serve(r, http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
