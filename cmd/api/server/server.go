package server

import (
	"net/http"
	"time"

	ginhandler "recruit-auth-service/internal/adapter/gin/handler"
	ginrouter "recruit-auth-service/internal/adapter/gin/router"
	"recruit-auth-service/internal/config"

	"go.uber.org/zap"
)

// Server holds the HTTP server serving the auth API.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the router fully wired.
func New(cfg *config.Config, l *zap.Logger, authHandler *ginhandler.AuthHandler) *Server {
	router := ginrouter.SetupRouter(authHandler, l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
