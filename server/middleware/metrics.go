package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/traduckxion/transcribe/observability"
)

// Metrics records request count, duration and in-flight gauge per route.
// Unmatched routes are labelled "unmatched" to bound cardinality.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.RecordRequestStart(ctx)
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequestEnd(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
