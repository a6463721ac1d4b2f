package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careermap-backend/internal/observability"
)

// unobservedRoutes are scraped or polled by infrastructure, not users.
var unobservedRoutes = map[string]bool{
	"/metrics":     true,
	"/healthcheck": true,
}

// Metrics records request counts, latency and in-flight requests for user
// facing routes. Requests that match no route share the "unmatched" label so
// arbitrary paths cannot grow the series count.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if unobservedRoutes[c.FullPath()] {
			c.Next()
			return
		}
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		if method == http.MethodOptions {
			route = "preflight"
		}
		m.ObserveAPI(method, route, c.Writer.Status(), time.Since(start))
	}
}
