// Package infrastructure assembles the shared subsystems behind the API:
// lifecycle coordination, database, blob storage, and the duplicate
// classifier.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/felinefinder/felinefinder/internal/classifier"
	"github.com/felinefinder/felinefinder/internal/config"
	"github.com/felinefinder/felinefinder/pkg/database"
	"github.com/felinefinder/felinefinder/pkg/lifecycle"
	"github.com/felinefinder/felinefinder/pkg/storage"
)

// Infrastructure bundles the application subsystems.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Storage    storage.System
	Classifier classifier.System
}

// New constructs all subsystems from configuration. Nothing connects until
// Start runs.
func New(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	cls, err := classifier.New(&cfg.Classifier, logger)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	return &Infrastructure{
		Lifecycle:  lifecycle.New(),
		Logger:     logger,
		Database:   db,
		Storage:    store,
		Classifier: cls,
	}, nil
}

// Start registers subsystem lifecycle hooks and blocks until every startup
// hook completes.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start database: %w", err)
	}

	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start storage: %w", err)
	}

	i.Lifecycle.WaitForStartup()
	i.Logger.Info("infrastructure ready")
	return nil
}
