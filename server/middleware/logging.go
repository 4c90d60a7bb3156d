package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/traduckxion/transcribe/logger"
)

var quietPaths = []string{"/health", "/alive", "/ready", "/metrics"}

// slowRequest marks a request as slow in the access log.
const slowRequest = 2 * time.Minute

// RequestLogger logs every request with method, path, status and duration.
// Probe and scrape paths are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(quietPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				logger.FieldStatus, rec.Status(),
				"bytes", rec.bytes,
				logger.FieldDuration, duration.Milliseconds(),
			)
			if r.ContentLength > 0 {
				fields["request_bytes"] = r.ContentLength
			}
			if duration > slowRequest {
				fields["slow"] = true
			}
			logByStatus(log.WithContext(r.Context()), fields, rec.Status())
		})
	}
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Info("Request completed", fields)
	}
}
