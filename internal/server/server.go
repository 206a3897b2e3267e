// Package server exposes review classification over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/classify"
	"github.com/ppiankov/reviewlens/internal/limit"
	"github.com/ppiankov/reviewlens/internal/metrics"
	"github.com/ppiankov/reviewlens/internal/model"
	"github.com/ppiankov/reviewlens/internal/page"
)

// Server is the prediction HTTP service
type Server struct {
	cfg        model.ServerConfig
	engine     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a server from cfg. It fails if the embedded form page is broken.
func New(cfg *model.Config, classifier classify.Classifier, logger *zap.Logger) (*Server, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := page.Verify(); err != nil {
		return nil, fmt.Errorf("verify form page: %w", err)
	}

	var limiter *limit.Limiter
	if cfg.RateLimiting.Enabled {
		limiter = limit.NewLimiter(
			cfg.RateLimiting.RequestsPerSecond,
			cfg.RateLimiting.BurstSize,
			cfg.RateLimiting.IdleTTL,
		)
	}

	m := metrics.New()
	h := NewHandler(classifier, m, logger)
	engine := NewRouter(h, limiter, m, cfg.Server.AllowOrigins, logger)

	return &Server{
		cfg:    cfg.Server,
		engine: engine,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: logger,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("address", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("Server exited")
	return nil
}
