package cats

import (
	"errors"
	"net/http"

	"github.com/felinefinder/felinefinder/internal/submission"
)

var (
	ErrNotFound           = errors.New("cat not found")
	ErrDuplicate          = errors.New("cat already exists")
	ErrInvalidDescription = errors.New("invalid description")
	ErrMissingLocation    = errors.New("location is required")
	ErrInvalidPhoto       = errors.New("invalid photo")
)

// MapHTTPStatus translates domain errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDescription),
		errors.Is(err, ErrMissingLocation),
		errors.Is(err, ErrInvalidPhoto):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MapOutcomeStatus translates a workflow outcome into the HTTP status code
// used for the submit response.
func MapOutcomeStatus(outcome submission.Outcome) int {
	switch outcome {
	case submission.OutcomeCreated:
		return http.StatusCreated
	case submission.OutcomeBlocked:
		return http.StatusConflict
	case submission.OutcomeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
