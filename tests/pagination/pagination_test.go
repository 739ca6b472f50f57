package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/felinefinder/felinefinder/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg pagination.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() = %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("config = %+v, want defaults 20/100", cfg)
		}
	})

	t.Run("rejects default exceeding max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() = nil, want error")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_DEFAULT", "10")

		var cfg pagination.Config
		if err := cfg.Finalize(&pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_DEFAULT"}); err != nil {
			t.Fatalf("Finalize() = %v", err)
		}
		if cfg.DefaultPageSize != 10 {
			t.Errorf("DefaultPageSize = %d, want 10", cfg.DefaultPageSize)
		}
	})
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		req      pagination.PageRequest
		wantPage int
		wantSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid unchanged", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(testConfig())

			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	t.Run("parses all parameters", func(t *testing.T) {
		values := url.Values{
			"page":      {"2"},
			"page_size": {"30"},
			"search":    {"tabby"},
			"sort":      {"-listed_at"},
		}

		req := pagination.PageRequestFromQuery(values, testConfig())

		if req.Page != 2 || req.PageSize != 30 {
			t.Errorf("page/size = %d/%d, want 2/30", req.Page, req.PageSize)
		}
		if req.Search == nil || *req.Search != "tabby" {
			t.Errorf("Search = %v, want tabby", req.Search)
		}
		if len(req.Sort) != 1 || req.Sort[0].Field != "listed_at" || !req.Sort[0].Descending {
			t.Errorf("Sort = %+v, want listed_at descending", req.Sort)
		}
	})

	t.Run("empty query normalizes", func(t *testing.T) {
		req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

		if req.Page != 1 || req.PageSize != 20 {
			t.Errorf("page/size = %d/%d, want 1/20", req.Page, req.PageSize)
		}
		if req.Search != nil {
			t.Errorf("Search = %v, want nil", req.Search)
		}
	})
}

func TestSortFieldsUnmarshal(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var req pagination.PageRequest
		if err := json.Unmarshal([]byte(`{"sort": "name,-listed_at"}`), &req); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if len(req.Sort) != 2 {
			t.Fatalf("sort len = %d, want 2", len(req.Sort))
		}
		if req.Sort[1].Field != "listed_at" || !req.Sort[1].Descending {
			t.Errorf("sort[1] = %+v, want listed_at descending", req.Sort[1])
		}
	})

	t.Run("array form", func(t *testing.T) {
		var req pagination.PageRequest
		payload := `{"sort": [{"Field": "name", "Descending": false}]}`
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if len(req.Sort) != 1 || req.Sort[0].Field != "name" {
			t.Errorf("sort = %+v, want [name]", req.Sort)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	t.Run("computes total pages", func(t *testing.T) {
		result := pagination.NewPageResult([]string{"a", "b"}, 45, 1, 20)

		if result.TotalPages != 3 {
			t.Errorf("TotalPages = %d, want 3", result.TotalPages)
		}
	})

	t.Run("empty data never nil", func(t *testing.T) {
		result := pagination.NewPageResult[string](nil, 0, 1, 20)

		if result.Data == nil {
			t.Error("Data is nil, want empty slice")
		}
		if result.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", result.TotalPages)
		}
	})
}
