package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Canonical renders v as indented JSON with sorted mapping keys. Equal values
// always produce identical bytes.
func Canonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	var raw any
	if v != nil {
		raw = v.Any()
	}
	if err := enc.Encode(raw); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FromAny converts decoded JSON or YAML data into a Value. Arrays whose
// elements are all {value: string, weight: number} objects become a
// WeightedList; every other array becomes a List.
func FromAny(data any) (Value, error) {
	switch v := data.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("decode number %q: %w", v, err)
		}
		return Number(f), nil
	case map[string]any:
		return mappingFromAny(v)
	case []any:
		if entries, ok := weightedFromAny(v); ok {
			return entries, nil
		}
		list := make(List, len(v))
		for i, item := range v {
			val, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			list[i] = val
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported document value of type %T", data)
	}
}

// Decode parses a JSON object into a Mapping. Empty input and JSON null
// decode to a nil Mapping.
func Decode(data []byte) (Mapping, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode document: expected object, got %T", raw)
	}
	return mappingFromAny(obj)
}

func (m Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Any())
}

func (m *Mapping) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

func mappingFromAny(obj map[string]any) (Mapping, error) {
	m := make(Mapping, len(obj))
	for k, item := range obj {
		val, err := FromAny(item)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		m[k] = val
	}
	return m, nil
}

func weightedFromAny(items []any) (WeightedList, bool) {
	if len(items) == 0 {
		return nil, false
	}

	out := make(WeightedList, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok || len(obj) != 2 {
			return nil, false
		}
		value, ok := obj["value"].(string)
		if !ok {
			return nil, false
		}
		weight, ok := number(obj["weight"])
		if !ok {
			return nil, false
		}
		out[i] = WeightedEntry{Value: value, Weight: weight}
	}
	return out, true
}

func number(data any) (float64, bool) {
	switch data.(type) {
	case float64, float32, int, int32, int64, uint64, json.Number:
	default:
		return 0, false
	}
	v, err := FromAny(data)
	if err != nil {
		return 0, false
	}
	return v.(Scalar).AsNumber()
}
