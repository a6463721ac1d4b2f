package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yungbote/careermap-backend/internal/platform/ctxutil"
)

func idsRouter(pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(pre...)
	r.Use(RequestIDs())
	r.GET("/x", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil {
			c.String(http.StatusInternalServerError, "missing")
			return
		}
		c.String(http.StatusOK, td.RequestID+"|"+td.TraceID)
	})
	return r
}

func TestRequestIDs_EchoesClientIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-123")
	req.Header.Set("X-Trace-Id", "trace.abc")
	rec := httptest.NewRecorder()
	idsRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "req-123|trace.abc", rec.Body.String())
	require.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	require.Equal(t, "trace.abc", rec.Header().Get("X-Trace-Id"))
}

func TestRequestIDs_ReplacesUnsafeClientIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "bad id\twith spaces")
	req.Header.Set("X-Trace-Id", strings.Repeat("a", maxClientIDLen+1))
	rec := httptest.NewRecorder()
	idsRouter().ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Header().Get("X-Request-Id"))
	require.NoError(t, err)
	_, err = uuid.Parse(rec.Header().Get("X-Trace-Id"))
	require.NoError(t, err)
}

func TestRequestIDs_UsesActiveSpanAndTagsIt(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	startSpan := func(c *gin.Context) {
		ctx, span := tp.Tracer("test").Start(c.Request.Context(), "GET /x")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		span.End()
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-9")
	req.Header.Set("X-Trace-Id", "ignored-when-span-active")
	w := httptest.NewRecorder()
	idsRouter(startSpan).ServeHTTP(w, req)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	traceID := spans[0].SpanContext().TraceID().String()
	require.Equal(t, traceID, w.Header().Get("X-Trace-Id"))
	require.Equal(t, "req-9|"+traceID, w.Body.String())
	require.Contains(t, spans[0].Attributes(), attribute.String("request.id", "req-9"))
	require.Contains(t, spans[0].Attributes(), attribute.String("trace.id", traceID))
}
