// Package users implements community member profiles and the symmetric
// friendship graph. User ids are external auth provider identifiers, not
// locally generated.
package users

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// User represents a community member profile.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ImageKey       *string   `json:"image_key"`
	Instagram      *string   `json:"instagram"`
	CustomPlatform *string   `json:"custom_platform"`
	CustomURL      *string   `json:"custom_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommand registers a new profile. ID comes from the auth provider.
type CreateCommand struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks registration fields.
func (c *CreateCommand) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidUser)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidUser, c.Email)
	}
	return nil
}

// UpdateCommand edits a profile. Image is an optional base64 data URI for a
// new avatar; social fields replace the stored values, nil clearing them.
type UpdateCommand struct {
	Name           string  `json:"name"`
	Instagram      *string `json:"instagram"`
	CustomPlatform *string `json:"custom_platform"`
	CustomURL      *string `json:"custom_url"`
	Image          *string `json:"image"`
}

// Validate checks profile edit fields.
func (c *UpdateCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if (c.CustomPlatform == nil) != (c.CustomURL == nil) {
		return fmt.Errorf("%w: custom social link requires both platform and url", ErrInvalidUser)
	}
	return nil
}
