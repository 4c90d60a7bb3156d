package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Liveness answers /alive while the HTTP loop is serving. Provider and
// diarization health never affect it; those belong to /ready, so an
// unreachable upstream does not get the transcription pod restarted.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "alive",
			"service":        serviceName,
			"uptime_seconds": int64(time.Since(startTime).Seconds()),
		})
	}
}
