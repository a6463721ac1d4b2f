package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpH "github.com/yungbote/careermap-backend/internal/http/handlers"
	"github.com/yungbote/careermap-backend/internal/modules/graph"
	"github.com/yungbote/careermap-backend/internal/observability"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
	"github.com/yungbote/careermap-backend/internal/services"
)

func newTestRouter(m *observability.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	resolver := graph.NewResolver(log, nil, 2)
	return NewRouter(RouterConfig{
		Log:           log,
		Metrics:       m,
		GraphHandler:  httpH.NewGraphHandler(services.NewGraphService(log, resolver)),
		HealthHandler: httpH.NewHealthHandler(),
	})
}

func TestRouterServesSyntheticGraphWithoutStorage(t *testing.T) {
	r := newTestRouter(nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graph", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Nodes    []graph.NodeView `json:"nodes"`
		CenterID string           `json:"centerId"`
		Selected *graph.Selected  `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "career", body.CenterID)
	require.Len(t, body.Nodes, 16)
	require.NotNil(t, body.Selected)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterHealthAndUnknownRoutes(t *testing.T) {
	r := newTestRouter(nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/career", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterExposesMetrics(t *testing.T) {
	r := newTestRouter(observability.NewMetrics())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graph?center=Nurse", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `route="/api/graph"`)
}
