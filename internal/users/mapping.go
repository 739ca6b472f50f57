package users

import (
	"net/url"

	"github.com/felinefinder/felinefinder/pkg/query"
	"github.com/felinefinder/felinefinder/pkg/repository"
)

var projection = query.NewProjectionMap("public", "users", "u").
	Project(
		"id",
		"name",
		"email",
		"image_key",
		"instagram",
		"custom_platform",
		"custom_url",
		"created_at",
		"updated_at",
	)

var defaultSort = []query.SortField{
	{Field: "name"},
}

// Filters narrows profile queries. All fields are optional.
type Filters struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// FiltersFromQuery extracts profile filters from URL query values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("name"); v != "" {
		f.Name = &v
	}
	if v := values.Get("email"); v != "" {
		f.Email = &v
	}
	return f
}

func (f Filters) apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("name", f.Name).
		WhereEquals("email", f.Email)
}

var scanKey repository.ScanFunc[string] = func(s repository.Scanner) (string, error) {
	var key string
	err := s.Scan(&key)
	return key, err
}

var scanUser repository.ScanFunc[User] = func(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.ImageKey,
		&u.Instagram,
		&u.CustomPlatform,
		&u.CustomURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
