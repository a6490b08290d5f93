package middleware

import (
	"strconv"

	"github.com/commtrans/ct-backend-go/internal/core/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts on the Prometheus collector.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		if collector != nil {
			collector.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
		}
	}
}
