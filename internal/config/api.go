package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/felinefinder/felinefinder/pkg/formatting"
	"github.com/felinefinder/felinefinder/pkg/middleware"
	"github.com/felinefinder/felinefinder/pkg/pagination"
)

// APIConfig holds API module settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// APIEnv maps API config fields to environment variable names.
type APIEnv struct {
	BasePath      string
	MaxUploadSize string
	CORS          *middleware.CORSEnv
	Pagination    *pagination.ConfigEnv
}

// MaxUploadSizeBytes returns MaxUploadSize parsed into bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxUploadSize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize(env *APIEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}

	var corsEnv *middleware.CORSEnv
	var pageEnv *pagination.ConfigEnv
	if env != nil {
		corsEnv = env.CORS
		pageEnv = env.Pagination
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(pageEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}

	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv(env *APIEnv) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.MaxUploadSize != "" {
		if v := os.Getenv(env.MaxUploadSize); v != "" {
			c.MaxUploadSize = v
		}
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %q", c.BasePath)
	}
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	return nil
}
