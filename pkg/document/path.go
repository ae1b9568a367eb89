package document

import "strings"

// Path addresses a value by the sequence of mapping keys leading to it.
type Path []string

// ParsePath splits a dot-separated path such as "style.palette.mode".
// Empty segments are dropped.
func ParsePath(s string) Path {
	parts := strings.Split(s, ".")
	path := make(Path, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			path = append(path, p)
		}
	}
	return path
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// HasPrefix reports whether prefix is a leading subsequence of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Get returns the value at path within tree. It reports false when any
// segment is missing or passes through a value that is not a Mapping.
func Get(tree Mapping, path Path) (Value, bool) {
	if len(path) == 0 {
		return nil, false
	}

	current := tree
	for i, key := range path {
		v, ok := current[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(Mapping)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}
