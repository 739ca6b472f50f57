// Package submission implements the two-phase cat submission workflow:
// an optional duplicate check followed by listing persistence. The check can
// be bypassed with force after the caller has seen a duplicate warning.
package submission

import (
	"context"

	"github.com/google/uuid"
)

// Outcome identifies the terminal state of one submission attempt.
type Outcome string

// Terminal outcomes. Exactly one applies per attempt.
const (
	// OutcomeCreated means a listing was persisted.
	OutcomeCreated Outcome = "created"
	// OutcomeBlocked means the classifier flagged a likely duplicate and the
	// caller did not force. Nothing was persisted.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeUnauthorized means the request carried no lister identity.
	// Nothing was persisted and the classifier was never called.
	OutcomeUnauthorized Outcome = "unauthorized"
	// OutcomeFailed means persistence failed. The attempt is safe to retry.
	OutcomeFailed Outcome = "failed"
)

// Request carries one cat submission.
type Request struct {
	Name        *string
	Description string
	Location    string
	ListerID    string
	Photo       []byte
	ContentType string
}

// Result is the terminal state of one submission attempt. ListingID is set
// only for OutcomeCreated; Explanation only for OutcomeBlocked; Err only for
// OutcomeUnauthorized and OutcomeFailed.
type Result struct {
	Outcome     Outcome
	ListingID   uuid.UUID
	Explanation string
	Err         error
}

// Success reports whether a listing was persisted.
func (r Result) Success() bool {
	return r.Outcome == OutcomeCreated
}

// Duplicate reports whether the attempt was blocked by a duplicate finding.
func (r Result) Duplicate() bool {
	return r.Outcome == OutcomeBlocked
}

// ListingStore is the persistence collaborator. Create must be atomic per
// call: either the listing exists fully formed afterwards or not at all.
type ListingStore interface {
	Create(ctx context.Context, req Request) (uuid.UUID, error)
}
