// Package styles implements the style profile domain. A style profile is a
// named, tagged document of nested style descriptors (intent, style,
// negative) that prompts can reference.
package styles

import (
	"strings"
	"time"

	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/formatting"
)

// SchemaVersion is the document schema version written by this service.
const SchemaVersion = "1.0.0"

// Sections lists the document sections of a style profile in display order.
var Sections = []string{"intent", "style", "negative"}

// StyleProfile is a persisted style document with its metadata.
type StyleProfile struct {
	ID            string           `json:"id"`
	SchemaVersion string           `json:"schema_version"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	Tags          []string         `json:"tags"`
	Intent        document.Mapping `json:"intent,omitempty"`
	Style         document.Mapping `json:"style,omitempty"`
	Negative      document.Mapping `json:"negative,omitempty"`
	UsageCount    int              `json:"usage_count"`
	IsTemplate    bool             `json:"is_template"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Section returns the document held in the named section.
func (s *StyleProfile) Section(name string) document.Mapping {
	switch name {
	case "intent":
		return s.Intent
	case "style":
		return s.Style
	case "negative":
		return s.Negative
	}
	return nil
}

// Document returns the full record as a single mapping, the shape written
// by exports and canonical previews.
func (s *StyleProfile) Document() document.Mapping {
	p := Payload{
		SchemaVersion: s.SchemaVersion,
		Name:          s.Name,
		Description:   s.Description,
		Tags:          s.Tags,
		Intent:        s.Intent,
		Style:         s.Style,
		Negative:      s.Negative,
		IsTemplate:    s.IsTemplate,
	}
	doc := p.Document()
	doc["id"] = document.String(s.ID)
	doc["usage_count"] = document.Number(float64(s.UsageCount))
	return doc
}

// Payload is the writable body of a style profile.
type Payload struct {
	SchemaVersion string           `json:"schema_version"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	Tags          []string         `json:"tags"`
	Intent        document.Mapping `json:"intent"`
	Style         document.Mapping `json:"style"`
	Negative      document.Mapping `json:"negative"`
	IsTemplate    bool             `json:"is_template"`
}

// Document returns the payload as a mapping with every section present.
func (p Payload) Document() document.Mapping {
	tags := document.Strings(p.Tags...)
	doc := document.Mapping{
		"schema_version": document.String(p.SchemaVersion),
		"name":           document.String(p.Name),
		"tags":           tags,
		"is_template":    document.Bool(p.IsTemplate),
		"intent":         orEmpty(p.Intent),
		"style":          orEmpty(p.Style),
		"negative":       orEmpty(p.Negative),
	}
	if p.Description != nil {
		doc["description"] = document.String(*p.Description)
	}
	return doc
}

func (p *Payload) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.SchemaVersion == "" {
		p.SchemaVersion = SchemaVersion
	}
	p.Tags = formatting.NormalizeTags(p.Tags)
}

// CreateCommand carries a new style profile. ID is optional; the server
// assigns a UUID when it is empty.
type CreateCommand struct {
	ID string `json:"id,omitempty"`
	Payload
}

// UpdateCommand replaces every writable field of an existing style profile.
type UpdateCommand struct {
	Payload
}

// ValidationResult reports the outcome of checking a document against the
// style profile schema.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Export describes a stored snapshot of a style profile.
type Export struct {
	StyleID     string    `json:"style_id"`
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ExportedAt  time.Time `json:"exported_at"`
}

func orEmpty(m document.Mapping) document.Mapping {
	if m == nil {
		return document.Mapping{}
	}
	return m
}
