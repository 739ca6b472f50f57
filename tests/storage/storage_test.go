package storage_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/felinefinder/felinefinder/pkg/storage"
)

func TestConfigFinalize(t *testing.T) {
	t.Run("applies default container", func(t *testing.T) {
		cfg := storage.Config{ConnectionString: "UseDevelopmentStorage=true"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() = %v", err)
		}

		if cfg.ContainerName != "cat-photos" {
			t.Errorf("ContainerName = %q, want cat-photos", cfg.ContainerName)
		}
	})

	t.Run("requires connection string", func(t *testing.T) {
		var cfg storage.Config
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() = nil, want error for missing connection_string")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_CONTAINER", "cat-photos-staging")

		cfg := storage.Config{ConnectionString: "UseDevelopmentStorage=true"}
		err := cfg.Finalize(&storage.Env{ContainerName: "TEST_STORAGE_CONTAINER"})
		if err != nil {
			t.Fatalf("Finalize() = %v", err)
		}

		if cfg.ContainerName != "cat-photos-staging" {
			t.Errorf("ContainerName = %q, want env override", cfg.ContainerName)
		}
	})
}

func TestConfigMerge(t *testing.T) {
	cfg := storage.Config{ContainerName: "cat-photos", ConnectionString: "base"}
	cfg.Merge(&storage.Config{ConnectionString: "overlay"})

	if cfg.ConnectionString != "overlay" {
		t.Errorf("ConnectionString = %q, want overlay value", cfg.ConnectionString)
	}
	if cfg.ContainerName != "cat-photos" {
		t.Errorf("ContainerName = %q, want base value preserved", cfg.ContainerName)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"empty key", storage.ErrEmptyKey, http.StatusBadRequest},
		{"invalid key", storage.ErrInvalidKey, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
