package classifier_test

import (
	"errors"
	"testing"
	"time"

	"github.com/felinefinder/felinefinder/internal/classifier"
)

func validInput() classifier.Input {
	return classifier.Input{
		Photo:               []byte("image bytes"),
		ContentType:         "image/jpeg",
		CatDescription:      "Orange tabby with a torn left ear.",
		LocationDescription: "Behind the bakery on Elm Street",
	}
}

func TestInputValidate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		in := validInput()
		if err := in.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*classifier.Input)
	}{
		{"empty photo", func(in *classifier.Input) { in.Photo = nil }},
		{"non-image content type", func(in *classifier.Input) { in.ContentType = "application/pdf" }},
		{"empty content type", func(in *classifier.Input) { in.ContentType = "" }},
		{"empty cat description", func(in *classifier.Input) { in.CatDescription = "" }},
		{"empty location description", func(in *classifier.Input) { in.LocationDescription = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			if err := in.Validate(); !errors.Is(err, classifier.ErrInvalidInput) {
				t.Errorf("Validate() = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg := classifier.Config{APIKey: "key"}

		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() = %v", err)
		}

		if cfg.Model != "gemini-2.0-flash" {
			t.Errorf("Model = %q, want gemini-2.0-flash", cfg.Model)
		}
		if cfg.CallTimeout != "30s" {
			t.Errorf("CallTimeout = %q, want 30s", cfg.CallTimeout)
		}
		if cfg.CallTimeoutDuration() != 30*time.Second {
			t.Errorf("CallTimeoutDuration() = %v, want 30s", cfg.CallTimeoutDuration())
		}
	})

	t.Run("requires api key", func(t *testing.T) {
		var cfg classifier.Config
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() = nil, want error for missing api_key")
		}
	})

	t.Run("rejects invalid timeout", func(t *testing.T) {
		cfg := classifier.Config{APIKey: "key", CallTimeout: "soon"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() = nil, want error for invalid call_timeout")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_CLASSIFIER_MODEL", "gemini-2.5-pro")

		cfg := classifier.Config{APIKey: "key"}
		err := cfg.Finalize(&classifier.Env{Model: "TEST_CLASSIFIER_MODEL"})
		if err != nil {
			t.Fatalf("Finalize() = %v", err)
		}

		if cfg.Model != "gemini-2.5-pro" {
			t.Errorf("Model = %q, want env override", cfg.Model)
		}
	})
}

func TestConfigMerge(t *testing.T) {
	cfg := classifier.Config{APIKey: "base", Model: "gemini-2.0-flash", CallTimeout: "30s"}
	cfg.Merge(&classifier.Config{Model: "gemini-2.5-pro"})

	if cfg.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want overlay value", cfg.Model)
	}
	if cfg.APIKey != "base" {
		t.Errorf("APIKey = %q, want base value preserved", cfg.APIKey)
	}
	if cfg.CallTimeout != "30s" {
		t.Errorf("CallTimeout = %q, want base value preserved", cfg.CallTimeout)
	}
}
