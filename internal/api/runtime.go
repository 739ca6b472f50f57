package api

import (
	"github.com/felinefinder/felinefinder/internal/config"
	"github.com/felinefinder/felinefinder/internal/infrastructure"
	"github.com/felinefinder/felinefinder/pkg/pagination"
)

// Runtime extends the shared infrastructure with API-scoped settings.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination    pagination.Config
	MaxUploadSize int64
}

// NewRuntime binds infrastructure to the API configuration.
func NewRuntime(cfg *config.APIConfig, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: infra,
		Pagination:     cfg.Pagination,
		MaxUploadSize:  cfg.MaxUploadSizeBytes(),
	}
}
