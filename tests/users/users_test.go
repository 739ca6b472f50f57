package users_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/felinefinder/felinefinder/internal/users"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", users.ErrNotFound, http.StatusNotFound},
		{"not friends", users.ErrNotFriends, http.StatusNotFound},
		{"duplicate", users.ErrDuplicate, http.StatusConflict},
		{"already friends", users.ErrAlreadyFriends, http.StatusConflict},
		{"invalid user", users.ErrInvalidUser, http.StatusBadRequest},
		{"self friend", users.ErrSelfFriend, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped self friend", fmt.Errorf("add friend: %w", users.ErrSelfFriend), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := users.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCreateCommandValidate(t *testing.T) {
	valid := users.CreateCommand{ID: "user-123", Name: "Robin", Email: "robin@example.com"}

	t.Run("valid command passes", func(t *testing.T) {
		cmd := valid
		if err := cmd.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*users.CreateCommand)
	}{
		{"missing id", func(c *users.CreateCommand) { c.ID = "  " }},
		{"missing name", func(c *users.CreateCommand) { c.Name = "" }},
		{"invalid email", func(c *users.CreateCommand) { c.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)

			if err := cmd.Validate(); !errors.Is(err, users.ErrInvalidUser) {
				t.Errorf("Validate() = %v, want ErrInvalidUser", err)
			}
		})
	}
}

func TestUpdateCommandValidate(t *testing.T) {
	t.Run("valid command passes", func(t *testing.T) {
		cmd := users.UpdateCommand{Name: "Robin", Instagram: ptr("robin.cats")}
		if err := cmd.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		cmd := users.UpdateCommand{}
		if err := cmd.Validate(); !errors.Is(err, users.ErrInvalidUser) {
			t.Errorf("Validate() = %v, want ErrInvalidUser", err)
		}
	})

	t.Run("custom link requires both fields", func(t *testing.T) {
		cmd := users.UpdateCommand{Name: "Robin", CustomPlatform: ptr("bluesky")}
		if err := cmd.Validate(); !errors.Is(err, users.ErrInvalidUser) {
			t.Errorf("Validate() = %v, want ErrInvalidUser for platform without url", err)
		}

		cmd = users.UpdateCommand{Name: "Robin", CustomURL: ptr("https://example.com")}
		if err := cmd.Validate(); !errors.Is(err, users.ErrInvalidUser) {
			t.Errorf("Validate() = %v, want ErrInvalidUser for url without platform", err)
		}

		cmd = users.UpdateCommand{Name: "Robin", CustomPlatform: ptr("bluesky"), CustomURL: ptr("https://example.com")}
		if err := cmd.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil when both set", err)
		}
	})
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("params present", func(t *testing.T) {
		values := url.Values{
			"name":  {"Robin"},
			"email": {"robin@example.com"},
		}

		f := users.FiltersFromQuery(values)

		if f.Name == nil || *f.Name != "Robin" {
			t.Errorf("Name = %v, want Robin", f.Name)
		}
		if f.Email == nil || *f.Email != "robin@example.com" {
			t.Errorf("Email = %v, want robin@example.com", f.Email)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := users.FiltersFromQuery(url.Values{})

		if f.Name != nil {
			t.Errorf("Name = %v, want nil", f.Name)
		}
		if f.Email != nil {
			t.Errorf("Email = %v, want nil", f.Email)
		}
	})
}
