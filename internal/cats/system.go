package cats

import (
	"context"

	"github.com/google/uuid"

	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/storage"
)

// System defines the cat listing operations.
type System interface {
	// Handler builds the HTTP handler for the listing routes.
	Handler(maxUploadSize int64) *Handler

	// List returns a page of listings matching the given filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Cat], error)

	// Find returns a single listing by id.
	Find(ctx context.Context, id uuid.UUID) (*Cat, error)

	// Submit runs a listing through the submission workflow: an optional
	// duplicate check followed by persistence. The returned result reports
	// the workflow outcome; the error return is reserved for validation and
	// infrastructure failures that prevented the workflow from running.
	Submit(ctx context.Context, cmd SubmitCommand) (*SubmissionResult, error)

	// SubmitBatch submits multiple listings concurrently, returning one
	// result per command in input order.
	SubmitBatch(ctx context.Context, cmds []SubmitCommand) ([]BatchResult, error)

	// Photo streams the stored photo for a listing.
	Photo(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error)

	// Delete removes a listing and its stored photo.
	Delete(ctx context.Context, id uuid.UUID) error
}
