package classifier

import "errors"

var (
	// ErrUnavailable indicates the external classification call failed:
	// transport error, timeout, or a malformed response. Callers decide
	// whether to fail open.
	ErrUnavailable = errors.New("classifier unavailable")
	// ErrInvalidInput indicates the input violates the adapter contract.
	ErrInvalidInput = errors.New("invalid classifier input")
)
