package styles_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", styles.ErrNotFound, http.StatusNotFound},
		{"duplicate", styles.ErrDuplicate, http.StatusConflict},
		{"name required", styles.ErrNameRequired, http.StatusBadRequest},
		{"invalid document", styles.ErrInvalidDocument, http.StatusUnprocessableEntity},
		{"wrapped invalid document", fmt.Errorf("%w: /style: bad", styles.ErrInvalidDocument), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styles.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{
		"name":        {"noir"},
		"tags":        {"a,b", "c"},
		"is_template": {"nope"},
	}

	f := styles.FiltersFromQuery(values)
	if f.Name == nil || *f.Name != "noir" {
		t.Errorf("name = %v, want noir", f.Name)
	}
	if strings.Join(f.Tags, ",") != "a,b,c" {
		t.Errorf("tags = %v", f.Tags)
	}
	if f.IsTemplate != nil {
		t.Errorf("is_template = %v, want nil for unparsable value", *f.IsTemplate)
	}

	empty := styles.FiltersFromQuery(url.Values{})
	if empty.Name != nil || empty.Tags != nil || empty.IsTemplate != nil {
		t.Errorf("empty filters = %+v", empty)
	}
}

func TestValidator(t *testing.T) {
	v, err := styles.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error: %v", err)
	}

	tests := []struct {
		name    string
		payload styles.Payload
		wantErr bool
	}{
		{
			name: "empty style",
			payload: styles.Payload{
				SchemaVersion: styles.SchemaVersion,
				Name:          "Blank",
				Style:         document.Mapping{},
			},
		},
		{
			name: "seeded shape",
			payload: styles.Payload{
				SchemaVersion: styles.SchemaVersion,
				Name:          "Neo-Noir",
				Tags:          []string{"noir"},
				Intent:        document.Mapping{"priority": document.String("high")},
				Style: document.Mapping{
					"aesthetic": document.Mapping{
						"movements": document.WeightedList{{Value: "film noir", Weight: 1.5}},
					},
					"palette": document.Mapping{
						"mode": document.String("limited_palette"),
						"colors": document.List{
							document.Mapping{"hex": document.String("#0b1020"), "role": document.String("background")},
						},
					},
					"postprocess": document.Mapping{"vignette": document.Number(0.5)},
				},
				Negative: document.Mapping{"terms": document.Strings("blurry")},
			},
		},
		{
			name: "unknown palette mode",
			payload: styles.Payload{
				Name:  "Bad",
				Style: document.Mapping{"palette": document.Mapping{"mode": document.String("sepia")}},
			},
			wantErr: true,
		},
		{
			name: "weight out of range",
			payload: styles.Payload{
				Name: "Bad",
				Style: document.Mapping{"aesthetic": document.Mapping{
					"mood": document.WeightedList{{Value: "calm", Weight: 7}},
				}},
			},
			wantErr: true,
		},
		{
			name: "grain above one",
			payload: styles.Payload{
				Name:  "Bad",
				Style: document.Mapping{"postprocess": document.Mapping{"grain": document.Number(2)}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, styles.ErrInvalidDocument) {
				t.Errorf("error = %v, want %v", err, styles.ErrInvalidDocument)
			}
		})
	}
}

func TestValidateRequiresStyle(t *testing.T) {
	v, err := styles.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error: %v", err)
	}

	result := v.Validate(map[string]any{"name": "x"})
	if result.Valid {
		t.Fatal("document without style reported valid")
	}
	if len(result.Errors) == 0 {
		t.Error("no errors reported")
	}
}

func TestStyleProfileDocument(t *testing.T) {
	desc := "dark"
	s := styles.StyleProfile{
		ID:            "style.x.v1",
		SchemaVersion: "1.0.0",
		Name:          "X",
		Description:   &desc,
		Tags:          []string{"a"},
		Style:         document.Mapping{"palette": document.Mapping{"mode": document.String("grayscale")}},
		UsageCount:    3,
	}

	doc := s.Document()
	for _, key := range []string{"id", "name", "description", "tags", "intent", "style", "negative", "usage_count", "schema_version", "is_template"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("key %q missing", key)
		}
	}

	if _, err := document.Canonical(doc); err != nil {
		t.Errorf("Canonical() error: %v", err)
	}
}
