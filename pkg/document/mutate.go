package document

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Mutation errors.
var (
	ErrEmptyPath   = errors.New("path must contain at least one key")
	ErrEmptyValue  = errors.New("value must not be empty")
	ErrWeightRange = fmt.Errorf("weight must be between %.1f and %.1f", MinWeight, MaxWeight)
	ErrNotWeighted = errors.New("value at path is not a weighted list")
	ErrNonFinite   = errors.New("number must be finite")
)

// SetScalar returns a copy of tree with value stored at path. Missing
// intermediate mappings are created, and intermediate values that are not
// mappings are replaced by new ones. Whatever was at the terminal key is
// overwritten regardless of its kind.
func SetScalar(tree Mapping, path Path, value Scalar) (Mapping, error) {
	if n, ok := value.AsNumber(); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
		return tree, ErrNonFinite
	}
	return update(tree, path, func(Value, bool) (Value, error) {
		return value, nil
	})
}

// SetList returns a copy of tree with the sequence at path replaced by values.
func SetList(tree Mapping, path Path, values List) (Mapping, error) {
	list := make(List, len(values))
	copy(list, values)
	return update(tree, path, func(Value, bool) (Value, error) {
		return list, nil
	})
}

// NormalizeEntry trims the entry value and snaps its weight to one decimal.
// It returns ErrEmptyValue or ErrWeightRange for entries that cannot be stored.
func NormalizeEntry(entry WeightedEntry) (WeightedEntry, error) {
	entry.Value = strings.TrimSpace(entry.Value)
	if entry.Value == "" {
		return entry, ErrEmptyValue
	}
	if math.IsNaN(entry.Weight) || entry.Weight < MinWeight || entry.Weight > MaxWeight {
		return entry, ErrWeightRange
	}
	entry.Weight = RoundWeight(entry.Weight)
	return entry, nil
}

// AppendWeighted returns a copy of tree with entry appended to the weighted
// list at path, creating the list when absent. A rejected entry leaves tree
// untouched and the returned tree is tree itself.
func AppendWeighted(tree Mapping, path Path, entry WeightedEntry) (Mapping, error) {
	entry, err := NormalizeEntry(entry)
	if err != nil {
		return tree, err
	}

	return update(tree, path, func(current Value, ok bool) (Value, error) {
		if !ok {
			return WeightedList{entry}, nil
		}
		switch v := current.(type) {
		case WeightedList:
			next := make(WeightedList, len(v), len(v)+1)
			copy(next, v)
			return append(next, entry), nil
		case List:
			if len(v) == 0 {
				return WeightedList{entry}, nil
			}
		}
		return nil, fmt.Errorf("%w: %s holds a %s", ErrNotWeighted, path, current.Kind())
	})
}

// RemoveWeighted returns a copy of tree without the entry at index in the
// weighted list at path. A missing list or an out-of-range index means there
// is nothing to remove, and tree is returned as is.
func RemoveWeighted(tree Mapping, path Path, index int) Mapping {
	current, ok := Get(tree, path)
	if !ok {
		return tree
	}
	list, ok := current.(WeightedList)
	if !ok || index < 0 || index >= len(list) {
		return tree
	}

	next := make(WeightedList, 0, len(list)-1)
	next = append(next, list[:index]...)
	next = append(next, list[index+1:]...)

	out, err := update(tree, path, func(Value, bool) (Value, error) {
		return next, nil
	})
	if err != nil {
		return tree
	}
	return out
}

func update(tree Mapping, path Path, fn func(current Value, ok bool) (Value, error)) (Mapping, error) {
	if len(path) == 0 {
		return tree, ErrEmptyPath
	}

	key := path[0]
	next := tree.clone()

	if len(path) == 1 {
		current, ok := tree[key]
		v, err := fn(current, ok)
		if err != nil {
			return tree, err
		}
		next[key] = v
		return next, nil
	}

	child, _ := tree[key].(Mapping)
	updated, err := update(child, path[1:], fn)
	if err != nil {
		return tree, err
	}
	next[key] = updated
	return next, nil
}
