package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"warung-server/internal/infrastructure/metrics"
)

// MetricsMiddleware records per-route request counts and latencies. The
// route template is used as the endpoint label to keep cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
