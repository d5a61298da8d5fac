package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitebuild/backend/internal/infrastructure/metrics"
)

// HTTPMetrics records request count, latency and response size per matched
// route. A nil m yields a pass-through middleware.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()

		c.Next()

		m.ObserveHTTPRequest(c.Request.Method, routePattern(c), c.Writer.Status(), time.Since(start), c.Writer.Size())
	}
}

// routePattern returns "/api/v1/workers/:id" rather than the raw path to keep
// label cardinality bounded.
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
