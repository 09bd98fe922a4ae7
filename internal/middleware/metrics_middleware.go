package middleware

import (
	"time"

	"messagely/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records response status and latency for every request.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		collector.RecordHTTPStatus(c.Writer.Status())
		collector.RecordRequestLatency(time.Since(start))
	}
}
