package pagination_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/query"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("cfg = %+v, want 20/100", cfg)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "50")
		t.Setenv("TEST_MAX_PAGE", "200")

		cfg := pagination.Config{}
		env := &pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE", MaxPageSize: "TEST_MAX_PAGE"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 50 || cfg.MaxPageSize != 200 {
			t.Errorf("cfg = %+v, want 50/200", cfg)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		err := cfg.Finalize(nil)
		if err == nil || !strings.Contains(err.Error(), "cannot exceed") {
			t.Errorf("error = %v, want default/max violation", err)
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := defaultConfig()
	base.Merge(&pagination.Config{DefaultPageSize: 50})

	if base.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", base.DefaultPageSize)
	}
	if base.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100 (unchanged)", base.MaxPageSize)
	}
}

func TestPageRequestNormalize(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", pagination.PageRequest{}, 1, 20},
		{"negative page corrected", pagination.PageRequest{Page: -1, PageSize: 10}, 1, 10},
		{"page size clamped to max", pagination.PageRequest{Page: 1, PageSize: 500}, 1, 100},
		{"valid values preserved", pagination.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(cfg)
			if tt.req.Page != tt.wantPage || tt.req.PageSize != tt.wantPageSize {
				t.Errorf("got page %d size %d, want %d/%d", tt.req.Page, tt.req.PageSize, tt.wantPage, tt.wantPageSize)
			}
			if want := (tt.wantPage - 1) * tt.wantPageSize; tt.req.Offset() != want {
				t.Errorf("Offset() = %d, want %d", tt.req.Offset(), want)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name         string
		values       url.Values
		wantPage     int
		wantPageSize int
	}{
		{"empty params get defaults", url.Values{}, 1, 20},
		{"page and page_size", url.Values{"page": {"2"}, "page_size": {"15"}}, 2, 15},
		{"limit alias", url.Values{"limit": {"10"}}, 1, 10},
		{"skip rounds to page", url.Values{"limit": {"10"}, "skip": {"25"}}, 3, 10},
		{"skip with default size", url.Values{"skip": {"40"}}, 3, 20},
		{"page wins over skip", url.Values{"page": {"1"}, "limit": {"10"}, "skip": {"30"}}, 1, 10},
		{"page_size wins over limit", url.Values{"page_size": {"5"}, "limit": {"50"}}, 1, 5},
		{"skip after clamp", url.Values{"limit": {"1000"}, "skip": {"250"}}, 3, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequestFromQuery(tt.values, cfg)
			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("got page %d size %d, want %d/%d", req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}

	t.Run("search and sort", func(t *testing.T) {
		values := url.Values{"search": {"noir"}, "sort": {"title,-updated_at"}}
		req := pagination.PageRequestFromQuery(values, cfg)

		if req.Search == nil || *req.Search != "noir" {
			t.Errorf("Search = %v, want noir", req.Search)
		}
		if len(req.Sort) != 2 || req.Sort[0].Field != "title" || !req.Sort[1].Descending {
			t.Errorf("Sort = %v", req.Sort)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		wantTotalPages int
	}{
		{"exact division", 100, 5},
		{"remainder", 101, 6},
		{"single page", 5, 1},
		{"empty result", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{"a"}, tt.total, 1, 20)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}

	if result := pagination.NewPageResult[string](nil, 0, 1, 20); result.Data == nil {
		t.Error("Data should be empty slice, not nil")
	}
}

func TestPageResultHasNext(t *testing.T) {
	tests := []struct {
		page  int
		total int
		want  bool
	}{
		{1, 45, true},
		{2, 45, true},
		{3, 45, false},
		{1, 0, false},
	}

	for _, tt := range tests {
		result := pagination.NewPageResult([]int{}, tt.total, tt.page, 20)
		if got := result.HasNext(); got != tt.want {
			t.Errorf("page %d of total %d: HasNext() = %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestSortFieldsUnmarshalInvalid(t *testing.T) {
	var sf pagination.SortFields
	if err := json.Unmarshal([]byte(`42`), &sf); err == nil {
		t.Error("expected error for numeric sort")
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	want := []query.SortField{
		{Field: "Name", Descending: false},
		{Field: "CreatedAt", Descending: true},
	}

	inputs := map[string]string{
		"string": `"Name,-CreatedAt"`,
		"array":  `[{"Field":"Name","Descending":false},{"Field":"CreatedAt","Descending":true}]`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var sf pagination.SortFields
			if err := json.Unmarshal([]byte(input), &sf); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if len(sf) != len(want) {
				t.Fatalf("length = %d, want %d", len(sf), len(want))
			}
			for i := range want {
				if sf[i] != want[i] {
					t.Errorf("sf[%d] = %v, want %v", i, sf[i], want[i])
				}
			}
		})
	}
}
