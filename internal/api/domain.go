package api

import (
	"github.com/felinefinder/felinefinder/internal/cats"
	"github.com/felinefinder/felinefinder/internal/users"
)

// Domain holds the API's domain systems.
type Domain struct {
	Cats  cats.System
	Users users.System
}

// NewDomain constructs the domain systems over the runtime.
func NewDomain(rt *Runtime) *Domain {
	return &Domain{
		Cats: cats.New(
			rt.Database,
			rt.Storage,
			rt.Classifier,
			rt.Pagination,
			rt.Logger,
		),
		Users: users.New(
			rt.Database,
			rt.Storage,
			rt.Pagination,
			rt.Logger,
		),
	}
}
