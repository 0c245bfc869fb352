package http

import (
	"net/http"
)

// InputValidation returns middleware that enforces basic request shape
// limits before any handler runs:
// - URI path length (2KB)
// - Request body size (1MB, far above the 5000 character claim limit)
//
// This prevents DoS attacks and ensures reasonable request sizes.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > 2048 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

			next.ServeHTTP(w, r)
		})
	}
}
