package middleware

import (
	"net/http"
	"time"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/go-chi/chi/v5/middleware"
)

// Metrics records the route, status and duration of every request
func Metrics(metrics ports.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.RecordHTTPRequest(r.Method, routePattern(r), status, time.Since(start))
		})
	}
}
