package styles

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/formatting"
	"github.com/JaimeStill/promptiverse/pkg/query"
	"github.com/JaimeStill/promptiverse/pkg/repository"
)

const columns = "id, schema_version, name, description, tags, intent, style, negative, usage_count, is_template, created_at, updated_at"

var projection = query.
	NewProjectionMap("public", "style_profiles", "s").
	Project("id", "ID").
	Project("schema_version", "SchemaVersion").
	Project("name", "Name").
	Project("description", "Description").
	Project("tags", "Tags").
	Project("intent", "Intent").
	Project("style", "Style").
	Project("negative", "Negative").
	Project("usage_count", "UsageCount").
	Project("is_template", "IsTemplate").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for style profile queries.
// Name uses case-insensitive contains matching. Tags matches profiles
// carrying any of the given tags.
type Filters struct {
	Name       *string  `json:"name,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsTemplate *bool    `json:"is_template,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereOverlaps("Tags", f.Tags).
		WhereEquals("IsTemplate", f.IsTemplate)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Tags may repeat or be comma-separated.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	for _, t := range values["tags"] {
		f.Tags = append(f.Tags, formatting.ParseTags(t)...)
	}

	if t := values.Get("is_template"); t != "" {
		if v, err := strconv.ParseBool(t); err == nil {
			f.IsTemplate = &v
		}
	}

	return f
}

func scanStyle(s repository.Scanner) (StyleProfile, error) {
	var p StyleProfile
	var intent, style, negative []byte

	err := s.Scan(
		&p.ID,
		&p.SchemaVersion,
		&p.Name,
		&p.Description,
		repository.StringArray(&p.Tags),
		&intent,
		&style,
		&negative,
		&p.UsageCount,
		&p.IsTemplate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	if p.Intent, err = document.Decode(intent); err != nil {
		return p, fmt.Errorf("intent: %w", err)
	}
	if p.Style, err = document.Decode(style); err != nil {
		return p, fmt.Errorf("style: %w", err)
	}
	if p.Negative, err = document.Decode(negative); err != nil {
		return p, fmt.Errorf("negative: %w", err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}
