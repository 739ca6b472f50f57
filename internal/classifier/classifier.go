// Package classifier implements the duplicate-listing check for Feline Finder.
// It wraps a structured-output vision model call that judges whether a new
// cat submission likely duplicates an existing listing.
package classifier

import (
	"context"
	"fmt"
	"strings"
)

// Input carries one submission's classification payload. All fields are
// required; Photo must be an encoded image with an image/* content type.
type Input struct {
	Photo               []byte
	ContentType         string
	CatDescription      string
	LocationDescription string
}

// Verdict is the classifier's structured judgment. Explanation is always
// non-empty, whether or not a duplicate was found.
type Verdict struct {
	IsDuplicate bool   `json:"is_duplicate"`
	Explanation string `json:"explanation"`
}

// System defines the classifier contract. Check performs no retries and has
// no side effects; verdicts are not guaranteed stable across repeated calls
// with identical input.
type System interface {
	Check(ctx context.Context, in Input) (*Verdict, error)
}

// Validate reports whether the input satisfies the adapter contract.
func (in *Input) Validate() error {
	if len(in.Photo) == 0 {
		return fmt.Errorf("%w: photo required", ErrInvalidInput)
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return fmt.Errorf("%w: content type %q is not an image", ErrInvalidInput, in.ContentType)
	}
	if in.CatDescription == "" {
		return fmt.Errorf("%w: cat description required", ErrInvalidInput)
	}
	if in.LocationDescription == "" {
		return fmt.Errorf("%w: location description required", ErrInvalidInput)
	}
	return nil
}
