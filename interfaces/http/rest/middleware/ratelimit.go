package middleware

import (
	"net"
	"net/http"

	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/ratelimit"
)

// RateLimitWrites throttles POST, PUT and DELETE per client address. Reads
// are never limited.
func RateLimitWrites(limiter ratelimit.Limiter, perMinute int, errorHandler *errors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				errorHandler.Handle(w, r, err)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "60")
				errorHandler.Handle(w, r, errors.NewRateLimitError(perMinute, "minute"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller; RealIP has already rewritten RemoteAddr
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
