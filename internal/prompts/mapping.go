package prompts

import (
	"fmt"
	"net/url"

	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/formatting"
	"github.com/JaimeStill/promptiverse/pkg/query"
	"github.com/JaimeStill/promptiverse/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("modal_type", "ModalType").
	Project("content", "Content").
	Project("style_profile_id", "StyleProfileID").
	Project("tags", "Tags").
	Project("metadata", "Metadata").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "style_profiles", "s", "LEFT JOIN", "s.id = p.style_profile_id").
	Project("name", "StyleName")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for prompt queries.
// Nil fields are ignored. Tags matches prompts carrying any of the given tags.
type Filters struct {
	ModalType      *ModalType `json:"modal_type,omitempty"`
	StyleProfileID *string    `json:"style_profile_id,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ModalType", f.ModalType).
		WhereEquals("StyleProfileID", f.StyleProfileID).
		WhereOverlaps("Tags", f.Tags)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unknown modal_type is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if m := values.Get("modal_type"); m != "" {
		if mt, err := ParseModalType(m); err == nil {
			f.ModalType = &mt
		}
	}

	if s := values.Get("style_profile_id"); s != "" {
		f.StyleProfileID = &s
	}

	for _, t := range values["tags"] {
		f.Tags = append(f.Tags, formatting.ParseTags(t)...)
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	var content, metadata []byte

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.ModalType,
		&content,
		&p.StyleProfileID,
		repository.StringArray(&p.Tags),
		&metadata,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.StyleName,
	)
	if err != nil {
		return p, err
	}

	if p.Content, err = document.Decode(content); err != nil {
		return p, fmt.Errorf("content: %w", err)
	}
	if p.Metadata, err = document.Decode(metadata); err != nil {
		return p, fmt.Errorf("metadata: %w", err)
	}
	if p.Content == nil {
		p.Content = document.Mapping{}
	}
	if p.Metadata == nil {
		p.Metadata = document.Mapping{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func writeArgs(p Payload) ([]any, error) {
	content, err := repository.JSONB(p.Content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	metadata, err := repository.JSONB(p.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	return []any{
		p.Title,
		p.Description,
		string(p.ModalType),
		content,
		p.StyleProfileID,
		p.Tags,
		metadata,
	}, nil
}
