package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/graph", 200, time.Millisecond)
	m.ObserveLLMRequest("anthropic", "ok", time.Second)
	m.IncCacheLookup("career", "hit")
	m.IncFallback("career", "no_api_key")
	m.ApiInflightInc()
	m.ApiInflightDec()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("expected 404 from nil metrics, got %d", rec.Code)
	}
}

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/career", 200, 20*time.Millisecond)
	m.ObserveLLMRequest("perplexity", "timeout", 10*time.Second)
	m.IncCacheLookup("skill", "miss")
	m.IncFallback("career", "api_error")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`cm_api_requests_total{method="GET",route="/api/career",status="200"} 1`,
		`cm_llm_requests_total{provider="perplexity",status="timeout"} 1`,
		`cm_content_cache_lookups_total{kind="skill",result="miss"} 1`,
		`cm_content_fallbacks_total{kind="career",reason="api_error"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in exposition:\n%s", want, out)
		}
	}
}

func TestOtelSampleRatio(t *testing.T) {
	cases := map[string]float64{"": 0.1, "0.5": 0.5, "-1": 0, "3": 1, "abc": 0.1}
	for in, want := range cases {
		t.Setenv("OTEL_SAMPLER_RATIO", in)
		if got := otelSampleRatio(); got != want {
			t.Fatalf("ratio(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOtelHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "a=1, b = 2 ,bad,=x")
	got := otelHeaders()
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("unexpected headers: %v", got)
	}
}
