package middleware

import (
	"time"

	"hostelfinder/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per matched route template, so
// /hostels/1 and /hostels/2 share one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
