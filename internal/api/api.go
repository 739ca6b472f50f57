// Package api composes the domain systems into the HTTP API module.
package api

import (
	"net/http"

	"github.com/felinefinder/felinefinder/internal/config"
	"github.com/felinefinder/felinefinder/internal/infrastructure"
	"github.com/felinefinder/felinefinder/pkg/middleware"
	"github.com/felinefinder/felinefinder/pkg/module"
)

// NewModule builds the API module mounted at the configured base path, with
// CORS and request logging applied to every route.
func NewModule(cfg *config.APIConfig, infra *infrastructure.Infrastructure) *module.Module {
	rt := NewRuntime(cfg, infra)
	domain := NewDomain(rt)

	mux := http.NewServeMux()
	registerRoutes(mux, rt, domain)

	m := module.New(cfg.BasePath, mux)
	m.Use(middleware.CORS(&cfg.CORS))
	m.Use(middleware.Logger(rt.Logger))

	return m
}
