package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/http/apierr"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/http/middleware"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/http/swagger"
)

var tracer = otel.Tracer("internal/http")

var (
	routeNotFound    = apierr.ErrorResponse{Error: "route not found", Status: http.StatusNotFound}
	methodNotAllowed = apierr.ErrorResponse{Error: "method not allowed", Status: http.StatusMethodNotAllowed}
)

// Handler returns the fully wired router.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.CorrelationID(),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)

	r.NotFound(s.replyWith(routeNotFound))
	r.MethodNotAllowed(s.replyWith(methodNotAllowed))

	r.Get("/health", s.handle(healthCheck))
	r.Route("/greens", newGreenCoffeeHandler(s.greenCoffeeSvc, s.validator).register(s))
	r.Route("/roasts", newRoastHandler(s.roastSvc, s.validator).register(s))
	r.Route("/products", newProductHandler(s.productSvc, s.validator).register(s))

	r.Handle(middleware.MetricsPath, s.metrics.Handler())
	if s.cfg.Swagger {
		swagger.Register(r)
	}

	return r
}

// handlerFunc is an http.HandlerFunc whose failures are rendered by the
// service.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Service) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		res := apierr.New(err)
		s.logger.Log(r.Context(), levelFor(res.Status), "http response error",
			slog.Int("status", res.Status),
			slog.Any("error", err),
		)
		s.writeError(w, r, res)
	}
}

func (s *Service) replyWith(res apierr.ErrorResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, res)
	}
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, res apierr.ErrorResponse) {
	if err := writeJSON(w, res.Status, res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response", slog.Any("error", err))
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
