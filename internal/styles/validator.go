package styles

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaResource = "image-style-profile.schema.json"

// Validator checks style profile documents against the embedded JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded style profile schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load style schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile style schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks doc, which must be in decoded JSON form.
func (v *Validator) Validate(doc any) ValidationResult {
	err := v.schema.Validate(doc)
	if err == nil {
		return ValidationResult{Valid: true, Errors: []string{}}
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return ValidationResult{Errors: []string{err.Error()}}
	}
	return ValidationResult{Errors: leafMessages(verr)}
}

// Check validates a write payload, returning ErrInvalidDocument with the
// schema violations on failure.
func (v *Validator) Check(p Payload) error {
	result := v.Validate(p.Document().Any())
	if result.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(result.Errors, "; "))
}

func leafMessages(e *jsonschema.ValidationError) []string {
	if len(e.Causes) == 0 {
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, e.Message)}
	}

	var out []string
	for _, c := range e.Causes {
		out = append(out, leafMessages(c)...)
	}
	return out
}
