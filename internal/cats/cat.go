// Package cats implements the cat listing domain for Feline Finder.
// It provides types, data access, and business logic for submitting,
// browsing, and removing found-cat listings, including the duplicate-check
// submission workflow and photo blob storage.
package cats

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felinefinder/felinefinder/internal/submission"
)

const (
	// MinDescriptionLen and MaxDescriptionLen bound the cat description,
	// matching the submission form validation.
	MinDescriptionLen = 20
	MaxDescriptionLen = 500
)

// Cat represents a persisted found-cat listing.
type Cat struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PhotoKey    string    `json:"photo_key"`
	ContentType string    `json:"content_type"`
	ListerID    string    `json:"lister_id"`
	ListedAt    time.Time `json:"listed_at"`
}

// SubmitCommand carries the data needed to submit a new listing.
// Photo holds the raw image bytes; Filename is informational and only used
// for batch result reporting. Force bypasses the duplicate check after the
// caller has seen a duplicate warning.
type SubmitCommand struct {
	Name        *string
	Description string
	Location    string
	ListerID    string
	Photo       []byte
	Filename    string
	ContentType string
	Force       bool
}

// Validate checks submission fields against the listing contract. The lister
// precondition is deliberately not checked here; the workflow owns it.
func (c *SubmitCommand) Validate() error {
	if n := len(c.Description); n < MinDescriptionLen || n > MaxDescriptionLen {
		return fmt.Errorf(
			"%w: description must be between %d and %d characters",
			ErrInvalidDescription, MinDescriptionLen, MaxDescriptionLen,
		)
	}
	if c.Location == "" {
		return ErrMissingLocation
	}
	if len(c.Photo) == 0 {
		return fmt.Errorf("%w: photo required", ErrInvalidPhoto)
	}
	if !strings.HasPrefix(c.ContentType, "image/") {
		return fmt.Errorf("%w: photo must be an image, got %q", ErrInvalidPhoto, c.ContentType)
	}
	return nil
}

// request converts the command into a workflow request.
func (c *SubmitCommand) request() submission.Request {
	return submission.Request{
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		ListerID:    c.ListerID,
		Photo:       c.Photo,
		ContentType: c.ContentType,
	}
}

// SubmissionResult is the submit response contract consumed by the
// submission form: success, duplicate-blocked with explanation, or a
// surfaced error, plus the created listing on success.
type SubmissionResult struct {
	Outcome     submission.Outcome `json:"outcome"`
	Success     bool               `json:"success"`
	IsDuplicate bool               `json:"is_duplicate"`
	Explanation string             `json:"explanation,omitempty"`
	Error       string             `json:"error,omitempty"`
	Cat         *Cat               `json:"cat,omitempty"`
}

// BatchResult reports the outcome of a single entry within a batch submit.
// On acceptance, Result is populated and Error is empty; Error carries
// validation failures that prevented the entry from entering the workflow.
type BatchResult struct {
	Result   *SubmissionResult `json:"result,omitempty"`
	Filename string            `json:"filename"`
	Error    string            `json:"error,omitempty"`
}
