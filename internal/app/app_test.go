package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careermap-backend/internal/data/repos/testutil"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "ANTHROPIC_API_KEY", "PERPLEXITY_API_KEY", "OPENAI_API_KEY",
		"REDIS_ADDR", "NEO4J_URI", "GRAPH_BACKEND", "GRAPH_HOP_DEPTH", "CORS_ALLOWED_ORIGINS",
		"GENERATION_TIMEOUT_SECONDS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig(logger.Nop())

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, GraphBackendPostgres, cfg.GraphBackend)
	require.Equal(t, 2, cfg.HopDepth)
	require.Equal(t, 10*time.Second, cfg.GenerationTimeout)
	require.Equal(t, 30*time.Second, cfg.GenerationDeadline)
	require.Equal(t, "claude-sonnet-4-20250514", cfg.AnthropicModel)
	require.Equal(t, "sonar-pro", cfg.PerplexityModel)
	require.Equal(t, "sonar", cfg.PerplexityChatModel)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRAPH_BACKEND", "cassandra")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg := LoadConfig(logger.Nop())

	require.Equal(t, GraphBackendPostgres, cfg.GraphBackend)
	require.Equal(t, 4*time.Second, cfg.GenerationTimeout)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func newOfflineRouter(t *testing.T) *gin.Engine {
	t.Helper()
	clearEnv(t)
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	cfg := LoadConfig(log)
	cfg.ServiceName = ""

	clients, err := wireClients(log, cfg)
	require.NoError(t, err)
	require.Nil(t, clients.DB)
	require.Equal(t, 0, clients.Generation.Len())

	reposet := wireRepos(clients.DB, log, false)
	svc := wireServices(log, cfg, clients, reposet)
	return wireRouter(log, cfg, svc, wireHandlers(log, svc), nil)
}

func TestOfflineAppDegrades(t *testing.T) {
	r := newOfflineRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graph", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var g struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	require.Len(t, g.Nodes, 16)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/career?career=Nurse", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var c struct {
		Cached bool   `json:"cached"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.False(t, c.Cached)
	require.Equal(t, "no_api_key", c.Reason)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/skill/careers?skill=Python", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Software Engineer")

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username":"a","password":"b","university":"c"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"content":"what next?"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"text"`)
}

func TestSeedGraphIsIdempotent(t *testing.T) {
	log := logger.Nop()
	db := testutil.DB(t)
	reposet := wireRepos(db, log, false)
	ctx := context.Background()

	require.NoError(t, seedGraph(ctx, log, db, Clients{}, reposet))
	require.NoError(t, seedGraph(ctx, log, db, Clients{}, reposet))

	var edges int64
	require.NoError(t, db.Table("edge").Count(&edges).Error)
	var nodes int64
	require.NoError(t, db.Table("node").Count(&nodes).Error)
	require.Positive(t, nodes)
	require.Positive(t, edges)

	root, err := reposet.Node.GetByID(dbctx.Of(ctx), "career")
	require.NoError(t, err)
	require.NotNil(t, root)
}
