// Package document models semi-structured documents as trees of typed values
// and provides path-addressed edits that return new trees.
//
// Values are treated as immutable. Every edit copies the mappings along the
// edited path and shares the untouched siblings with the previous tree, so a
// tree handed to a renderer never changes underneath it.
package document

import (
	"math"
	"reflect"
	"slices"
)

// Kind identifies the shape of a Value.
type Kind int

// Value kinds.
const (
	KindScalar Kind = iota
	KindMapping
	KindList
	KindWeightedList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindList:
		return "list"
	case KindWeightedList:
		return "weighted list"
	default:
		return "unknown"
	}
}

// Value is a node in a document tree: a Scalar, Mapping, List, or WeightedList.
type Value interface {
	Kind() Kind
	// Any returns the value in the shape produced by decoding JSON into an any.
	Any() any
	sealed()
}

// Scalar holds a string, float64, bool, or nil (JSON null).
type Scalar struct {
	v any
}

// String returns a string Scalar.
func String(s string) Scalar { return Scalar{v: s} }

// Number returns a numeric Scalar.
func Number(f float64) Scalar { return Scalar{v: f} }

// Bool returns a boolean Scalar.
func Bool(b bool) Scalar { return Scalar{v: b} }

// Null returns the null Scalar.
func Null() Scalar { return Scalar{} }

func (Scalar) Kind() Kind { return KindScalar }
func (s Scalar) Any() any { return s.v }
func (Scalar) sealed() {}

// IsNull reports whether s is the null Scalar.
func (s Scalar) IsNull() bool { return s.v == nil }

// AsString reports the string held by s, if any.
func (s Scalar) AsString() (string, bool) {
	v, ok := s.v.(string)
	return v, ok
}

// AsNumber reports the number held by s, if any.
func (s Scalar) AsNumber() (float64, bool) {
	v, ok := s.v.(float64)
	return v, ok
}

// AsBool reports the boolean held by s, if any.
func (s Scalar) AsBool() (bool, bool) {
	v, ok := s.v.(bool)
	return v, ok
}

// Mapping is a set of uniquely keyed values. Callers must not modify a Mapping
// obtained from a tree; use the mutation functions instead.
type Mapping map[string]Value

func (Mapping) Kind() Kind { return KindMapping }
func (Mapping) sealed() {}

func (m Mapping) Any() any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Any()
	}
	return out
}

// Keys returns the mapping keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (m Mapping) clone() Mapping {
	out := make(Mapping, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// List is an ordered sequence of values.
type List []Value

func (List) Kind() Kind { return KindList }
func (List) sealed() {}

func (l List) Any() any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = v.Any()
	}
	return out
}

// Strings builds a List of string scalars.
func Strings(values ...string) List {
	out := make(List, len(values))
	for i, v := range values {
		out[i] = String(v)
	}
	return out
}

// WeightedEntry is a labeled concept with a signed influence strength.
// Positive weights reinforce the concept, negative weights suppress it.
type WeightedEntry struct {
	Value  string  `json:"value" yaml:"value"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Weight bounds for weighted entries.
const (
	MinWeight = -5.0
	MaxWeight = 5.0
)

// RoundWeight snaps w to one decimal place, the granularity of weight input.
func RoundWeight(w float64) float64 {
	return math.Round(w*10) / 10
}

// WeightedList is an ordered sequence of weighted entries in insertion order.
type WeightedList []WeightedEntry

func (WeightedList) Kind() Kind { return KindWeightedList }
func (WeightedList) sealed() {}

func (w WeightedList) Any() any {
	out := make([]any, len(w))
	for i, e := range w {
		out[i] = map[string]any{
			"value":  e.Value,
			"weight": e.Weight,
		}
	}
	return out
}

// Equal reports whether a and b hold the same document content. An empty
// List and an empty WeightedList compare equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a.Any(), b.Any())
}
