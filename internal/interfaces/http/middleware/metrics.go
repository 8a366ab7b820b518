package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"iwms-citizen.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route. The route
// template (not the raw path) keeps label cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
