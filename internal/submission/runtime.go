package submission

import (
	"log/slog"

	"github.com/felinefinder/felinefinder/internal/classifier"
)

// Runtime bundles the collaborators the workflow requires. It is constructed
// by higher-level composition code from infrastructure and domain systems.
type Runtime struct {
	Classifier classifier.System
	Listings   ListingStore
	Logger     *slog.Logger
}
