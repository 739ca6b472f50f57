// Package config loads application configuration from a layered TOML
// hierarchy: config.toml, then config.<env>.toml selected by FELINE_ENV,
// then FELINE_* environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/felinefinder/felinefinder/internal/classifier"
	"github.com/felinefinder/felinefinder/pkg/database"
	"github.com/felinefinder/felinefinder/pkg/middleware"
	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/storage"
)

// EnvVar selects the environment overlay, e.g. FELINE_ENV=production loads
// config.production.toml on top of config.toml.
const EnvVar = "FELINE_ENV"

// Config is the application root configuration.
type Config struct {
	Version         string            `toml:"version"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	Classifier      classifier.Config `toml:"classifier"`
	API             APIConfig         `toml:"api"`
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml relative to the working directory, applies the
// environment overlay selected by FELINE_ENV, then finalizes every section
// with FELINE_* environment overrides.
func Load() (*Config, error) {
	cfg, err := read("config.toml")
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}

	if env := os.Getenv(EnvVar); env != "" {
		overlay, err := read(fmt.Sprintf("config.%s.toml", env))
		if err != nil {
			return nil, err
		}
		if overlay != nil {
			cfg.merge(overlay)
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// read parses a TOML config file, returning nil without error when the file
// does not exist.
func read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}

	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Classifier.Merge(&overlay.Classifier)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	if err := c.Server.Finalize(&ServerEnv{
		Host:         "FELINE_SERVER_HOST",
		Port:         "FELINE_SERVER_PORT",
		ReadTimeout:  "FELINE_SERVER_READ_TIMEOUT",
		WriteTimeout: "FELINE_SERVER_WRITE_TIMEOUT",
		IdleTimeout:  "FELINE_SERVER_IDLE_TIMEOUT",
	}); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := c.Database.Finalize(&database.Env{
		Host:            "FELINE_DB_HOST",
		Port:            "FELINE_DB_PORT",
		Name:            "FELINE_DB_NAME",
		User:            "FELINE_DB_USER",
		Password:        "FELINE_DB_PASSWORD",
		SSLMode:         "FELINE_DB_SSL_MODE",
		MaxOpenConns:    "FELINE_DB_MAX_OPEN_CONNS",
		MaxIdleConns:    "FELINE_DB_MAX_IDLE_CONNS",
		ConnMaxLifetime: "FELINE_DB_CONN_MAX_LIFETIME",
		ConnTimeout:     "FELINE_DB_CONN_TIMEOUT",
	}); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Storage.Finalize(&storage.Env{
		ContainerName:    "FELINE_STORAGE_CONTAINER",
		ConnectionString: "FELINE_STORAGE_CONNECTION_STRING",
	}); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Classifier.Finalize(&classifier.Env{
		APIKey:      "FELINE_CLASSIFIER_API_KEY",
		Model:       "FELINE_CLASSIFIER_MODEL",
		CallTimeout: "FELINE_CLASSIFIER_CALL_TIMEOUT",
	}); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}

	if err := c.API.Finalize(&APIEnv{
		BasePath:      "FELINE_API_BASE_PATH",
		MaxUploadSize: "FELINE_API_MAX_UPLOAD_SIZE",
		CORS: &middleware.CORSEnv{
			Enabled:          "FELINE_CORS_ENABLED",
			Origins:          "FELINE_CORS_ORIGINS",
			AllowedMethods:   "FELINE_CORS_ALLOWED_METHODS",
			AllowedHeaders:   "FELINE_CORS_ALLOWED_HEADERS",
			AllowCredentials: "FELINE_CORS_ALLOW_CREDENTIALS",
			MaxAge:           "FELINE_CORS_MAX_AGE",
		},
		Pagination: &pagination.ConfigEnv{
			DefaultPageSize: "FELINE_PAGE_SIZE_DEFAULT",
			MaxPageSize:     "FELINE_PAGE_SIZE_MAX",
		},
	}); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}
