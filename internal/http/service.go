// Package http serves the roastery record API.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/http/metric"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/service"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/validator"
)

const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 5 * time.Second
	maxHeaderBytes    = 64 << 10
)

// Service serves the green coffee, roast and product resources.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator

	greenCoffeeSvc service.GreenCoffeeService
	roastSvc       service.RoastService
	productSvc     service.ProductService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	greenCoffeeSvc service.GreenCoffeeService,
	roastSvc service.RoastService,
	productSvc service.ProductService,
) (*Service, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	logger := log.With(slog.String("service", "http"))
	return &Service{
		cfg:            cfg,
		logger:         logger,
		metrics:        metric.New(logger),
		validator:      v,
		greenCoffeeSvc: greenCoffeeSvc,
		roastSvc:       roastSvc,
		productSvc:     productSvc,
	}, nil
}

// Run listens on the configured port and serves in the background. The
// returned cleanup shuts the server down gracefully.
func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	addr := net.JoinHostPort("", strconv.FormatUint(uint64(s.cfg.Port), 10))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	return s.serve(ctx, ln), nil
}

func (s *Service) serve(ctx context.Context, ln net.Listener) CleanupFunc {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()
	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
