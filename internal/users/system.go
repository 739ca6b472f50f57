package users

import (
	"context"

	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/storage"
)

// System defines the user profile and friendship operations.
type System interface {
	// Handler builds the HTTP handler for the user routes.
	Handler() *Handler

	// List returns a page of profiles matching the given filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)

	// Find returns a single profile by id.
	Find(ctx context.Context, id string) (*User, error)

	// Create registers a new profile.
	Create(ctx context.Context, cmd CreateCommand) (*User, error)

	// Update edits a profile, replacing the avatar when an image is included.
	Update(ctx context.Context, id string, cmd UpdateCommand) (*User, error)

	// Delete removes a profile, its friendships, and its stored avatar.
	Delete(ctx context.Context, id string) error

	// Avatar streams the stored avatar for a profile.
	Avatar(ctx context.Context, id string) (*storage.DownloadResult, error)

	// AddFriend records a friendship between two users. Friendship is
	// symmetric: both directions are written in one transaction.
	AddFriend(ctx context.Context, userID, friendID string) error

	// RemoveFriend dissolves a friendship in both directions.
	RemoveFriend(ctx context.Context, userID, friendID string) error

	// Friends returns the profiles befriended by the given user.
	Friends(ctx context.Context, userID string) ([]User, error)
}
