// Package middleware provides cross-cutting HTTP middleware that does
// not belong to a specific endpoint.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	pkgconfig "medverify/pkg/config"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins. A single "*"
	// entry allows any origin.
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	AllowedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	MaxAge int
}

// LoadCORSConfig builds a CORSConfig from environment variables.
// CORS_ALLOWED_ORIGINS is a comma-separated origin list, defaulting to
// the local development frontend.
func LoadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// allowed reports whether origin is in the whitelist.
func (c CORSConfig) allowed(origin string) bool {
	for _, candidate := range c.AllowedOrigins {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

// CORS returns middleware that handles cross-origin requests against
// the configured origin whitelist.
//
// Behavior:
//   - Empty Origin header: same-origin request, skip CORS processing.
//   - Disallowed origin: log a warning and continue without CORS
//     headers; the browser blocks the response.
//   - Allowed origin, OPTIONS: answer the preflight with 204 and the
//     allow headers, without calling the next handler.
//   - Allowed origin, other methods: set the allow-origin header and
//     pass through.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.allowed(origin) {
				slog.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("remote_addr", r.RemoteAddr))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
