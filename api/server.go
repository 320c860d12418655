package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/handlers"
	"github.com/kutbudev/alarmclock/internal/auth"
	"github.com/kutbudev/alarmclock/pkg/config"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"gorm.io/gorm"
)

// Server is the HTTP front of the application.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	log             *slog.Logger
}

// NewServer builds the handler stack over db.
func NewServer(cfg *config.Config, db *gorm.DB, log *slog.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)

	repos := repository.NewRepositories(db)
	authSvc := auth.NewService(repos.Users, repos.Sessions, cfg.Auth.SessionTTL)
	router := NewRouter(handlers.New(repos, authSvc, cfg.Auth, log), log)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		log:             log,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server until ctx ends, then drains in-flight
// requests for at most the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serveErr := make(chan error, 1)
	s.log.Info("http server listening", "addr", s.httpServer.Addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.log.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
