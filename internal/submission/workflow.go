package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/felinefinder/felinefinder/internal/classifier"
)

// Execute runs one submission attempt through the workflow state machine:
//
//	start → classifying (unless force) → blocked | persisting
//	start → persisting (force)
//	persisting → created | failed
//
// The lister precondition is checked before any side effect. A classifier
// failure is logged and treated as "no duplicate found" — availability of
// listing must not depend on the auxiliary check. Exactly one store write
// happens on the created path and zero writes on every other path. The
// workflow is deliberately not idempotent: repeating a forced submission
// creates a second listing.
func Execute(ctx context.Context, rt *Runtime, req Request, force bool) Result {
	if strings.TrimSpace(req.ListerID) == "" {
		return Result{Outcome: OutcomeUnauthorized, Err: ErrUnauthorized}
	}

	if !force {
		if verdict := classify(ctx, rt, req); verdict != nil && verdict.IsDuplicate {
			rt.Logger.Info("submission blocked as likely duplicate", "lister_id", req.ListerID)
			return Result{Outcome: OutcomeBlocked, Explanation: verdict.Explanation}
		}
	}

	id, err := rt.Listings.Create(ctx, req)
	if err != nil {
		return Result{
			Outcome: OutcomeFailed,
			Err:     fmt.Errorf("save submission: %w", err),
		}
	}

	rt.Logger.Info("listing created", "id", id, "lister_id", req.ListerID, "forced", force)
	return Result{Outcome: OutcomeCreated, ListingID: id}
}

// classify runs the duplicate check, failing open on any classifier error.
func classify(ctx context.Context, rt *Runtime, req Request) *classifier.Verdict {
	verdict, err := rt.Classifier.Check(ctx, classifier.Input{
		Photo:               req.Photo,
		ContentType:         req.ContentType,
		CatDescription:      req.Description,
		LocationDescription: req.Location,
	})
	if err != nil {
		rt.Logger.Warn("duplicate check unavailable, allowing submission to proceed", "error", err)
		return nil
	}
	return verdict
}
