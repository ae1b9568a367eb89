package document_test

import (
	"errors"
	"math"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/document"
)

func sample() document.Mapping {
	return document.Mapping{
		"palette": document.Mapping{
			"mode":        document.String("full_color"),
			"temperature": document.String("warm"),
		},
		"aesthetic": document.Mapping{
			"movements": document.WeightedList{
				{Value: "art deco", Weight: 1.5},
				{Value: "bauhaus", Weight: -0.5},
			},
		},
		"tags": document.Strings("a", "b"),
	}
}

func mustCanonical(t *testing.T, v document.Value) string {
	t.Helper()
	b, err := document.Canonical(v)
	if err != nil {
		t.Fatalf("Canonical() error: %v", err)
	}
	return string(b)
}

func TestSetScalarGetRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		tree  document.Mapping
		path  document.Path
		value document.Scalar
	}{
		{"empty tree deep path", document.Mapping{}, document.Path{"a", "b", "c"}, document.String("x")},
		{"nil tree", nil, document.Path{"mode"}, document.Number(2)},
		{"overwrite existing", sample(), document.Path{"palette", "mode"}, document.String("grayscale")},
		{"overwrite list with scalar", sample(), document.Path{"tags"}, document.Bool(true)},
		{"replace scalar intermediate", sample(), document.Path{"palette", "mode", "inner"}, document.String("v")},
		{"null scalar", sample(), document.Path{"palette", "contrast"}, document.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := document.SetScalar(tt.tree, tt.path, tt.value)
			if err != nil {
				t.Fatalf("SetScalar() error: %v", err)
			}

			got, ok := document.Get(out, tt.path)
			if !ok {
				t.Fatalf("Get(%s) not found", tt.path)
			}
			if !document.Equal(got, tt.value) {
				t.Errorf("Get(%s) = %v, want %v", tt.path, got.Any(), tt.value.Any())
			}
		})
	}
}

func TestMutationsPreserveInputAndSiblings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(document.Mapping) (document.Mapping, error)
		others []document.Path
	}{
		{
			name: "set scalar",
			mutate: func(m document.Mapping) (document.Mapping, error) {
				return document.SetScalar(m, document.Path{"palette", "mode"}, document.String("grayscale"))
			},
			others: []document.Path{{"palette", "temperature"}, {"aesthetic", "movements"}, {"tags"}},
		},
		{
			name: "set list",
			mutate: func(m document.Mapping) (document.Mapping, error) {
				return document.SetList(m, document.Path{"tags"}, document.Strings("c"))
			},
			others: []document.Path{{"palette", "mode"}, {"aesthetic", "movements"}},
		},
		{
			name: "append weighted",
			mutate: func(m document.Mapping) (document.Mapping, error) {
				return document.AppendWeighted(m, document.Path{"aesthetic", "movements"}, document.WeightedEntry{Value: "noir", Weight: 2})
			},
			others: []document.Path{{"palette", "mode"}, {"palette", "temperature"}, {"tags"}},
		},
		{
			name: "remove weighted",
			mutate: func(m document.Mapping) (document.Mapping, error) {
				return document.RemoveWeighted(m, document.Path{"aesthetic", "movements"}, 0), nil
			},
			others: []document.Path{{"palette", "mode"}, {"tags"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := sample()
			snapshot := mustCanonical(t, before)

			after, err := tt.mutate(before)
			if err != nil {
				t.Fatalf("mutate error: %v", err)
			}

			if got := mustCanonical(t, before); got != snapshot {
				t.Errorf("input tree changed:\n%s\nwant:\n%s", got, snapshot)
			}

			for _, p := range tt.others {
				want, _ := document.Get(before, p)
				got, ok := document.Get(after, p)
				if !ok {
					t.Errorf("Get(%s) missing after mutation", p)
					continue
				}
				if !document.Equal(got, want) {
					t.Errorf("Get(%s) = %v, want %v", p, got.Any(), want.Any())
				}
			}
		})
	}
}

func TestAppendThenRemoveRestores(t *testing.T) {
	path := document.Path{"aesthetic", "movements"}
	tree := sample()
	prior, _ := document.Get(tree, path)

	appended, err := document.AppendWeighted(tree, path, document.WeightedEntry{Value: "film noir", Weight: 2})
	if err != nil {
		t.Fatalf("AppendWeighted() error: %v", err)
	}

	list, _ := document.Get(appended, path)
	n := len(list.(document.WeightedList))
	if n != 3 {
		t.Fatalf("list length = %d, want 3", n)
	}

	restored := document.RemoveWeighted(appended, path, n-1)
	got, _ := document.Get(restored, path)
	if !document.Equal(got, prior) {
		t.Errorf("restored list = %v, want %v", got.Any(), prior.Any())
	}
}

func TestAppendThenRemoveOnAbsentPath(t *testing.T) {
	path := document.Path{"a", "b"}
	tree := document.Mapping{}

	appended, err := document.AppendWeighted(tree, path, document.WeightedEntry{Value: "x", Weight: 1})
	if err != nil {
		t.Fatalf("AppendWeighted() error: %v", err)
	}
	restored := document.RemoveWeighted(appended, path, 0)

	if len(tree) != 0 {
		t.Errorf("input tree mutated: %v", tree.Any())
	}

	got, ok := document.Get(restored, path)
	if !ok {
		t.Fatalf("Get(%s) not found after remove", path)
	}
	list, ok := got.(document.WeightedList)
	if !ok || len(list) != 0 {
		t.Errorf("list = %v, want empty weighted list", got.Any())
	}

	want := document.Mapping{"a": document.Mapping{"b": document.WeightedList{}}}
	if !document.Equal(restored, want) {
		t.Errorf("restored = %v, want %v", restored.Any(), want.Any())
	}
}

func TestSetScalarRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sample()
			snapshot := mustCanonical(t, tree)

			out, err := document.SetScalar(tree, document.Path{"palette", "contrast"}, document.Number(tt.value))
			if !errors.Is(err, document.ErrNonFinite) {
				t.Fatalf("SetScalar() error = %v, want %v", err, document.ErrNonFinite)
			}
			if got := mustCanonical(t, out); got != snapshot {
				t.Errorf("tree changed:\n%s", got)
			}
		})
	}
}

func TestAppendWeightedRejects(t *testing.T) {
	path := document.Path{"aesthetic", "movements"}

	tests := []struct {
		name  string
		entry document.WeightedEntry
		want  error
	}{
		{"empty value", document.WeightedEntry{Value: "", Weight: 1}, document.ErrEmptyValue},
		{"whitespace value", document.WeightedEntry{Value: "   \t", Weight: 1}, document.ErrEmptyValue},
		{"weight above range", document.WeightedEntry{Value: "noir", Weight: 5.1}, document.ErrWeightRange},
		{"weight below range", document.WeightedEntry{Value: "noir", Weight: -7}, document.ErrWeightRange},
		{"weight NaN", document.WeightedEntry{Value: "noir", Weight: math.NaN()}, document.ErrWeightRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sample()
			snapshot := mustCanonical(t, tree)

			out, err := document.AppendWeighted(tree, path, tt.entry)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if got := mustCanonical(t, out); got != snapshot {
				t.Errorf("tree changed on rejected append:\n%s", got)
			}
		})
	}
}

func TestAppendWeightedNormalizes(t *testing.T) {
	path := document.Path{"mood"}

	out, err := document.AppendWeighted(nil, path, document.WeightedEntry{Value: "  melancholy ", Weight: 1.26})
	if err != nil {
		t.Fatalf("AppendWeighted() error: %v", err)
	}

	v, ok := document.Get(out, path)
	if !ok {
		t.Fatal("list not created")
	}
	list, ok := v.(document.WeightedList)
	if !ok {
		t.Fatalf("kind = %s, want weighted list", v.Kind())
	}
	if list[0].Value != "melancholy" {
		t.Errorf("value = %q, want %q", list[0].Value, "melancholy")
	}
	if list[0].Weight != 1.3 {
		t.Errorf("weight = %v, want 1.3", list[0].Weight)
	}
}

func TestAppendWeightedKindMismatch(t *testing.T) {
	_, err := document.AppendWeighted(sample(), document.Path{"palette", "mode"}, document.WeightedEntry{Value: "x", Weight: 1})
	if !errors.Is(err, document.ErrNotWeighted) {
		t.Errorf("error = %v, want %v", err, document.ErrNotWeighted)
	}

	out, err := document.AppendWeighted(document.Mapping{"terms": document.List{}}, document.Path{"terms"}, document.WeightedEntry{Value: "x", Weight: 1})
	if err != nil {
		t.Fatalf("append onto empty list: %v", err)
	}
	if v, _ := document.Get(out, document.Path{"terms"}); v.Kind() != document.KindWeightedList {
		t.Errorf("kind = %s, want weighted list", v.Kind())
	}
}

func TestRemoveWeightedNoOp(t *testing.T) {
	tests := []struct {
		name  string
		path  document.Path
		index int
	}{
		{"index past end", document.Path{"aesthetic", "movements"}, 2},
		{"negative index", document.Path{"aesthetic", "movements"}, -1},
		{"missing list", document.Path{"aesthetic", "mood"}, 0},
		{"missing parent", document.Path{"lighting", "setup"}, 0},
		{"not a weighted list", document.Path{"tags"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sample()
			snapshot := mustCanonical(t, tree)

			out := document.RemoveWeighted(tree, tt.path, tt.index)
			if got := mustCanonical(t, out); got != snapshot {
				t.Errorf("tree changed:\n%s", got)
			}
		})
	}
}

func TestRemoveWeightedPreservesOrder(t *testing.T) {
	path := document.Path{"w"}
	tree := document.Mapping{"w": document.WeightedList{
		{Value: "a", Weight: 1},
		{Value: "b", Weight: 2},
		{Value: "c", Weight: 3},
	}}

	out := document.RemoveWeighted(tree, path, 1)
	v, _ := document.Get(out, path)
	want := document.WeightedList{{Value: "a", Weight: 1}, {Value: "c", Weight: 3}}
	if !document.Equal(v, want) {
		t.Errorf("list = %v, want %v", v.Any(), want.Any())
	}
}

func TestEmptyPath(t *testing.T) {
	if _, err := document.SetScalar(sample(), nil, document.String("x")); !errors.Is(err, document.ErrEmptyPath) {
		t.Errorf("SetScalar error = %v, want %v", err, document.ErrEmptyPath)
	}
	if _, err := document.SetList(sample(), document.Path{}, nil); !errors.Is(err, document.ErrEmptyPath) {
		t.Errorf("SetList error = %v, want %v", err, document.ErrEmptyPath)
	}
	if _, ok := document.Get(sample(), nil); ok {
		t.Error("Get(empty path) found a value")
	}
}

func TestGetThroughScalar(t *testing.T) {
	if _, ok := document.Get(sample(), document.Path{"palette", "mode", "deeper"}); ok {
		t.Error("Get through scalar reported found")
	}
}

func TestDocumentScenario(t *testing.T) {
	tree := document.Mapping{}

	tree, err := document.SetScalar(tree, document.Path{"palette", "mode"}, document.String("grayscale"))
	if err != nil {
		t.Fatalf("SetScalar() error: %v", err)
	}
	tree, err = document.AppendWeighted(tree, document.Path{"aesthetic", "movements"}, document.WeightedEntry{Value: "film noir", Weight: 2.0})
	if err != nil {
		t.Fatalf("AppendWeighted() error: %v", err)
	}

	want := `{
  "aesthetic": {
    "movements": [
      {
        "value": "film noir",
        "weight": 2
      }
    ]
  },
  "palette": {
    "mode": "grayscale"
  }
}`
	if got := mustCanonical(t, tree); got != want {
		t.Errorf("Canonical() =\n%s\nwant:\n%s", got, want)
	}
}
