package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/felinefinder/felinefinder/pkg/routes"
)

func mark(name string, hits *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*hits = append(*hits, name)
	}
}

func TestRegister(t *testing.T) {
	var hits []string

	group := routes.Group{
		Prefix: "/cats",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: mark("list", &hits)},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: mark("find", &hits)},
		},
	}

	mux := http.NewServeMux()
	routes.Register(mux, group)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/cats", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/cats/abc", nil))

	if len(hits) != 2 || hits[0] != "list" || hits[1] != "find" {
		t.Errorf("hits = %v, want [list find]", hits)
	}
}

func TestRegisterChildren(t *testing.T) {
	var hits []string

	group := routes.Group{
		Prefix: "/users",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: mark("users", &hits)},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}",
				Routes: []routes.Route{
					{Method: http.MethodGet, Pattern: "/friends", Handler: mark("friends", &hits)},
				},
			},
		},
	}

	mux := http.NewServeMux()
	routes.Register(mux, group)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users/u1/friends", nil))

	if len(hits) != 1 || hits[0] != "friends" {
		t.Errorf("hits = %v, want [friends]", hits)
	}
}

func TestRegisterMethodScoping(t *testing.T) {
	var hits []string

	group := routes.Group{
		Prefix: "/cats",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: mark("submit", &hits)},
		},
	}

	mux := http.NewServeMux()
	routes.Register(mux, group)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/cats", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want none", hits)
	}
}
