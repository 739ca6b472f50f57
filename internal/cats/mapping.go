package cats

import (
	"net/url"

	"github.com/felinefinder/felinefinder/pkg/query"
	"github.com/felinefinder/felinefinder/pkg/repository"
)

var projection = query.NewProjectionMap("public", "cats", "c").
	Project(
		"id",
		"name",
		"description",
		"location",
		"photo_key",
		"content_type",
		"lister_id",
		"listed_at",
	)

var defaultSort = []query.SortField{
	{Field: "listed_at", Descending: true},
}

// Filters narrows listing queries. All fields are optional.
type Filters struct {
	ListerID *string `json:"lister_id,omitempty"`
	Location *string `json:"location,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// FiltersFromQuery extracts listing filters from URL query values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("lister_id"); v != "" {
		f.ListerID = &v
	}
	if v := values.Get("location"); v != "" {
		f.Location = &v
	}
	if v := values.Get("name"); v != "" {
		f.Name = &v
	}
	return f
}

func (f Filters) apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("lister_id", f.ListerID).
		WhereContains("location", f.Location).
		WhereContains("name", f.Name)
}

var scanCat repository.ScanFunc[Cat] = func(s repository.Scanner) (Cat, error) {
	var c Cat
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Location,
		&c.PhotoKey,
		&c.ContentType,
		&c.ListerID,
		&c.ListedAt,
	)
	return c, err
}
