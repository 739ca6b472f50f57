package storage

import (
	"errors"
	"net/http"
)

// Sentinel errors for blob operations. Keys are validated before any call
// reaches the Azure API, so a bad key never round-trips to storage.
var (
	// ErrNotFound indicates no blob is stored under the requested key.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey indicates a blank blob key.
	ErrEmptyKey = errors.New("blob key must not be empty")
	// ErrInvalidKey indicates a blob key with a path traversal segment.
	ErrInvalidKey = errors.New("blob key contains invalid path segment")
)

// MapHTTPStatus maps blob storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyKey) || errors.Is(err, ErrInvalidKey) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
