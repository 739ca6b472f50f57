package main

import (
	"fmt"
	"log/slog"

	"github.com/felinefinder/felinefinder/internal/config"
	"github.com/felinefinder/felinefinder/internal/infrastructure"
)

// Server owns the infrastructure and HTTP front end.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	infra  *infrastructure.Infrastructure
	http   *httpServer
}

// NewServer assembles infrastructure, routing, and the HTTP listener.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	infra, err := infrastructure.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build infrastructure: %w", err)
	}

	router := buildRouter(cfg, infra)

	return &Server{
		cfg:    cfg,
		logger: logger,
		infra:  infra,
		http:   newHTTPServer(&cfg.Server, router, logger),
	}, nil
}

// Start brings the subsystems online, then begins serving HTTP.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}

	s.http.Start(s.infra.Lifecycle)

	s.logger.Info("feline finder online",
		"version", s.cfg.Version,
		"addr", s.cfg.Server.Addr(),
	)
	return nil
}

// Shutdown stops the HTTP listener and subsystems within the configured timeout.
func (s *Server) Shutdown() error {
	return s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
}
