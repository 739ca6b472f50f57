package api

import (
	"net/http"

	"github.com/felinefinder/felinefinder/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, rt *Runtime, domain *Domain) {
	routes.Register(mux,
		domain.Cats.Handler(rt.MaxUploadSize).Routes(),
		domain.Users.Handler().Routes(),
	)
}
