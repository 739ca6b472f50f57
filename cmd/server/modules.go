package main

import (
	"net/http"

	"github.com/felinefinder/felinefinder/internal/api"
	"github.com/felinefinder/felinefinder/internal/config"
	"github.com/felinefinder/felinefinder/internal/infrastructure"
	"github.com/felinefinder/felinefinder/pkg/handlers"
	"github.com/felinefinder/felinefinder/pkg/module"
)

func buildRouter(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.Mount(api.NewModule(&cfg.API, infra))

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": cfg.Version,
		})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return router
}
