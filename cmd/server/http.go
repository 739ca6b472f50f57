package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/felinefinder/felinefinder/internal/config"
	"github.com/felinefinder/felinefinder/pkg/lifecycle"
)

type httpServer struct {
	server *http.Server
	logger *slog.Logger
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
			IdleTimeout:  cfg.IdleTimeoutDuration(),
		},
		logger: logger.With("system", "http"),
	}
}

// Start begins listening in the background and registers a shutdown hook
// that drains in-flight requests when the lifecycle context cancels.
func (h *httpServer) Start(lc *lifecycle.Coordinator) {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		h.logger.Info("draining http server")

		if err := h.server.Shutdown(context.Background()); err != nil {
			h.logger.Error("http drain failed", "error", err)
		}
	})

	go func() {
		h.logger.Info("listening", "addr", h.server.Addr)

		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("http server failed", "error", err)
		}
	}()
}
