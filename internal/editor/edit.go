package editor

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/JaimeStill/promptiverse/pkg/document"
)

// Edit is a typed change to a style profile document. Each edit names a
// schema path and is checked against the field found there before it is
// applied.
type Edit interface {
	Target() document.Path
	apply(tree document.Mapping, f Field) (document.Mapping, error)
}

// SetScalar stores a single value at an enum, text, or number field.
type SetScalar struct {
	Path  document.Path
	Value document.Scalar
}

func (e SetScalar) Target() document.Path { return e.Path }

func (e SetScalar) apply(tree document.Mapping, f Field) (document.Mapping, error) {
	switch f.Kind {
	case FieldEnum:
		s, ok := e.Value.AsString()
		if !ok {
			return tree, fmt.Errorf("%w: %s expects a string", ErrFieldKind, f.Path)
		}
		if !slices.Contains(f.Options, s) {
			return tree, fmt.Errorf("%w: %q not in %s", ErrInvalidOption, s, f.Describe())
		}
	case FieldText:
		s, ok := e.Value.AsString()
		if !ok {
			return tree, fmt.Errorf("%w: %s expects a string", ErrFieldKind, f.Path)
		}
		e.Value = document.String(strings.TrimSpace(s))
	case FieldNumber:
		n, ok := e.Value.AsNumber()
		if !ok {
			return tree, fmt.Errorf("%w: %s expects a number", ErrFieldKind, f.Path)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return tree, fmt.Errorf("%w: %s must be a finite number", ErrOutOfRange, f.Path)
		}
		if n < f.Min || n > f.Max {
			return tree, fmt.Errorf("%w: %s must be within %s", ErrOutOfRange, f.Path, f.Describe())
		}
	default:
		return tree, fmt.Errorf("%w: %s is a %s field", ErrFieldKind, f.Path, f.Kind)
	}
	return document.SetScalar(tree, e.Path, e.Value)
}

// SetList replaces the string list at a list field. Values are trimmed and
// empty values dropped.
type SetList struct {
	Path   document.Path
	Values []string
}

func (e SetList) Target() document.Path { return e.Path }

func (e SetList) apply(tree document.Mapping, f Field) (document.Mapping, error) {
	if f.Kind != FieldList {
		return tree, fmt.Errorf("%w: %s is a %s field", ErrFieldKind, f.Path, f.Kind)
	}
	values := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return document.SetList(tree, e.Path, document.Strings(values...))
}

// AppendWeighted adds an entry to the end of a weighted field.
type AppendWeighted struct {
	Path  document.Path
	Entry document.WeightedEntry
}

func (e AppendWeighted) Target() document.Path { return e.Path }

func (e AppendWeighted) apply(tree document.Mapping, f Field) (document.Mapping, error) {
	if f.Kind != FieldWeighted {
		return tree, fmt.Errorf("%w: %s is a %s field", ErrFieldKind, f.Path, f.Kind)
	}
	return document.AppendWeighted(tree, e.Path, e.Entry)
}

// RemoveWeighted drops the entry at Index from a weighted field. An index
// with no entry leaves the document as it is.
type RemoveWeighted struct {
	Path  document.Path
	Index int
}

func (e RemoveWeighted) Target() document.Path { return e.Path }

func (e RemoveWeighted) apply(tree document.Mapping, f Field) (document.Mapping, error) {
	if f.Kind != FieldWeighted {
		return tree, fmt.Errorf("%w: %s is a %s field", ErrFieldKind, f.Path, f.Kind)
	}
	return document.RemoveWeighted(tree, e.Path, e.Index), nil
}
