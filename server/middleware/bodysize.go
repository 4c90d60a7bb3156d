package middleware

import (
	"net/http"

	"github.com/traduckxion/transcribe/util"
)

const defaultMaxBodySize = 110 * 1024 * 1024

// BodySizeLimit restricts request bodies to the given size string
// (e.g. "10MB", "512KB", "1GB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
