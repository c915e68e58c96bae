// Package httpapi is the host-integration surface of the adapter: a small
// HTTP API exposing the directory provider's capabilities. Every request is
// one unit of work and gets its own provider instance (and identity cache).
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userfed/internal/logging"
	"github.com/dmitrijs2005/userfed/internal/server/config"
	"github.com/dmitrijs2005/userfed/internal/server/directory"
	"github.com/dmitrijs2005/userfed/internal/server/users"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg    *config.Config
	logger logging.Logger
	repo   users.Repository
	engine *gin.Engine
}

func New(cfg *config.Config, logger logging.Logger, repo users.Repository) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.POST("/login", s.login)
	api.GET("/users", s.listUsers)
	api.GET("/users/count", s.countUsers)
	api.GET("/users/:username", s.getUser)
	api.PUT("/users/:username/password", s.setPassword)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// newProvider starts a unit of work: a fresh provider with an empty cache
// and a logger tagged with the request id.
func (s *Server) newProvider() *directory.Provider {
	logger := s.logger.With("request_id", uuid.NewString())
	return directory.NewProvider(s.cfg.ProviderID, s.repo, logger)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.EndpointAddr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
