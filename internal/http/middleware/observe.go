package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	MetricsPath  = "/metrics"
	unknownRoute = "<unknown>"
)

// Requests to these paths are neither traced nor measured.
var unobservedPaths = map[string]bool{
	"/health":           true,
	MetricsPath:         true,
	"/docs":             true,
	"/docs/openapi.yml": true,
}

func observed(r *http.Request) bool {
	return !unobservedPaths[r.URL.Path]
}

// routePattern is only complete after the router has handled r.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unknownRoute
}

// statusOf reports 200 for handlers that wrote a body without a header.
func statusOf(ww middleware.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
