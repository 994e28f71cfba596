package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/http/metric"
)

// Metrics labels requests by route pattern, so record ids never become label
// values.
func Metrics(m *metric.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !observed(r) {
				next.ServeHTTP(w, r)
				return
			}

			done := m.Track()
			defer done()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			m.Observe(r.Method, routePattern(r), statusOf(ww), time.Since(start))
		})
	}
}
