package users

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicate      = errors.New("user already exists")
	ErrInvalidUser    = errors.New("invalid user")
	ErrSelfFriend     = errors.New("cannot befriend yourself")
	ErrAlreadyFriends = errors.New("already friends")
	ErrNotFriends     = errors.New("not friends")
)

// MapHTTPStatus translates domain errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotFriends):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrAlreadyFriends):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidUser), errors.Is(err, ErrSelfFriend):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
