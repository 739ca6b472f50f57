package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/felinefinder/felinefinder/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestNewValidatesPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		panics bool
	}{
		{"valid", "/api", false},
		{"empty", "", true},
		{"no leading slash", "api", true},
		{"multi-level", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				recovered := recover() != nil
				if recovered != tt.panics {
					t.Errorf("panic = %v, want %v", recovered, tt.panics)
				}
			}()

			module.New(tt.prefix, echoPath())
		})
	}
}

func TestModuleServeStripsPrefix(t *testing.T) {
	m := module.New("/api", echoPath())

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/cats", nil))

	if rec.Body.String() != "/cats" {
		t.Errorf("inner path = %q, want /cats", rec.Body.String())
	}
}

func TestModuleServeBarePrefix(t *testing.T) {
	m := module.New("/api", echoPath())

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api", nil))

	if rec.Body.String() != "/" {
		t.Errorf("inner path = %q, want /", rec.Body.String())
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", echoPath())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/cats", nil))

	if rec.Header().Get("X-Module") != "api" {
		t.Error("module middleware not applied")
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	t.Run("routes to module", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/cats", nil))

		if rec.Body.String() != "/cats" {
			t.Errorf("body = %q, want /cats", rec.Body.String())
		}
	})

	t.Run("falls back to native mux", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

		if rec.Body.String() != "ok" {
			t.Errorf("body = %q, want ok", rec.Body.String())
		}
	})

	t.Run("trailing slash normalizes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/cats/", nil))

		if rec.Body.String() != "/cats" {
			t.Errorf("body = %q, want /cats", rec.Body.String())
		}
	})

	t.Run("unknown path 404s", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
