// Package prompts implements the prompt domain. A prompt is a titled,
// tagged content document for one generation modality that may reference
// a style profile.
package prompts

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/formatting"
)

// ModalType is the generation modality a prompt targets.
type ModalType string

const (
	ModalText  ModalType = "text"
	ModalImage ModalType = "image"
	ModalVideo ModalType = "video"
	ModalCode  ModalType = "code"
	ModalAudio ModalType = "audio"
	ModalOther ModalType = "other"
)

// ModalTypes returns every modality in display order.
func ModalTypes() []ModalType {
	return []ModalType{ModalText, ModalImage, ModalVideo, ModalCode, ModalAudio, ModalOther}
}

// ParseModalType validates s as a modality.
func ParseModalType(s string) (ModalType, error) {
	m := ModalType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ModalTypes() {
		if m == known {
			return m, nil
		}
	}
	return "", ErrInvalidModalType
}

// UnmarshalJSON rejects unknown modalities at decode time.
func (m *ModalType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseModalType(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Prompt is a persisted prompt with its resolved style profile name.
type Prompt struct {
	ID             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Description    *string          `json:"description,omitempty"`
	ModalType      ModalType        `json:"modal_type"`
	Content        document.Mapping `json:"content"`
	StyleProfileID *string          `json:"style_profile_id,omitempty"`
	StyleName      *string          `json:"style_name,omitempty"`
	Tags           []string         `json:"tags"`
	Metadata       document.Mapping `json:"metadata"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Payload is the writable body of a prompt.
type Payload struct {
	Title          string           `json:"title"`
	Description    *string          `json:"description,omitempty"`
	ModalType      ModalType        `json:"modal_type"`
	Content        document.Mapping `json:"content"`
	StyleProfileID *string          `json:"style_profile_id,omitempty"`
	Tags           []string         `json:"tags"`
	Metadata       document.Mapping `json:"metadata"`
}

func (p *Payload) normalize() error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrTitleRequired
	}
	if p.ModalType == "" {
		p.ModalType = ModalText
	}
	if _, err := ParseModalType(string(p.ModalType)); err != nil {
		return err
	}
	if p.StyleProfileID != nil && strings.TrimSpace(*p.StyleProfileID) == "" {
		p.StyleProfileID = nil
	}
	if p.Content == nil {
		p.Content = document.Mapping{}
	}
	if p.Metadata == nil {
		p.Metadata = document.Mapping{}
	}
	p.Tags = formatting.NormalizeTags(p.Tags)
	return nil
}

// CreateCommand carries a new prompt.
type CreateCommand struct {
	Payload
}

// UpdateCommand replaces every writable field of an existing prompt.
type UpdateCommand struct {
	Payload
}

// Stats summarizes the prompt catalog.
type Stats struct {
	Total       int               `json:"total"`
	ByModalType map[ModalType]int `json:"by_modal_type"`
	Recent      []Prompt          `json:"recent"`
}

// ParseContent converts free-form input into a content document. JSON
// objects, bare or inside a markdown code fence, are used as-is; anything
// else is stored under the "text" key.
func ParseContent(input string) document.Mapping {
	if obj, err := formatting.Parse[map[string]any](input); err == nil && obj != nil {
		if v, err := document.FromAny(obj); err == nil {
			if m, ok := v.(document.Mapping); ok {
				return m
			}
		}
	}
	return document.Mapping{"text": document.String(strings.TrimSpace(input))}
}
