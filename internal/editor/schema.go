package editor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
)

// FieldKind identifies the kind of input a schema field accepts.
type FieldKind int

const (
	// FieldEnum is a string scalar restricted to Options.
	FieldEnum FieldKind = iota
	// FieldText is a free-form string scalar.
	FieldText
	// FieldNumber is a numeric scalar bounded by Min and Max.
	FieldNumber
	// FieldList is a list of strings.
	FieldList
	// FieldWeighted is a weighted list of concepts.
	FieldWeighted
)

func (k FieldKind) String() string {
	switch k {
	case FieldEnum:
		return "enum"
	case FieldText:
		return "text"
	case FieldNumber:
		return "number"
	case FieldList:
		return "list"
	case FieldWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// Field is one editable location in a style profile document.
type Field struct {
	Path    document.Path
	Kind    FieldKind
	Label   string
	Options []string
	Min     float64
	Max     float64
}

// Section returns the top-level section containing the field.
func (f Field) Section() string {
	return f.Path[0]
}

// Describe renders the field's accepted input for help output.
func (f Field) Describe() string {
	switch f.Kind {
	case FieldEnum:
		return strings.Join(f.Options, "|")
	case FieldNumber:
		return fmt.Sprintf("%g..%g", f.Min, f.Max)
	case FieldWeighted:
		return fmt.Sprintf("value weight(%g..%g)", document.MinWeight, document.MaxWeight)
	default:
		return f.Kind.String()
	}
}

func field(path string, kind FieldKind, label string, options ...string) Field {
	return Field{
		Path:    document.ParsePath(path),
		Kind:    kind,
		Label:   label,
		Options: options,
	}
}

func number(path, label string, lo, hi float64) Field {
	f := field(path, FieldNumber, label)
	f.Min, f.Max = lo, hi
	return f
}

// Schema is the fixed set of fields the guided editor can modify.
var Schema = []Field{
	field("intent.use_case", FieldEnum, "Use Case", "style_only", "style_plus_prompt_template", "postprocess_only"),
	field("intent.priority", FieldEnum, "Priority", "low", "medium", "high"),

	field("style.aesthetic.movements", FieldWeighted, "Movements"),
	field("style.aesthetic.mood", FieldWeighted, "Mood"),
	field("style.aesthetic.medium", FieldText, "Medium"),

	field("style.palette.mode", FieldEnum, "Palette Mode", "full_color", "limited_palette", "monochrome", "grayscale"),
	field("style.palette.temperature", FieldEnum, "Temperature", "cool", "neutral", "warm"),
	field("style.palette.contrast", FieldEnum, "Contrast", "low", "medium", "high"),

	field("style.lighting.setup", FieldText, "Lighting Setup"),
	field("style.lighting.quality", FieldEnum, "Lighting Quality", "soft", "hard", "dramatic"),

	field("style.rendering.style", FieldText, "Rendering Style"),
	field("style.rendering.engine", FieldText, "Render Engine"),

	field("style.camera.lens", FieldText, "Lens"),
	field("style.camera.aperture", FieldText, "Aperture"),

	number("style.postprocess.vignette", "Vignette", 0, 1),
	number("style.postprocess.grain", "Grain", 0, 1),

	field("negative.terms", FieldList, "Negative Terms"),
	field("negative.concepts", FieldWeighted, "Negative Concepts"),
}

// Lookup returns the schema field at path.
func Lookup(path document.Path) (Field, bool) {
	for _, f := range Schema {
		if slices.Equal(f.Path, path) {
			return f, true
		}
	}
	return Field{}, false
}

// Fields returns the schema fields within section, or every field when
// section is empty.
func Fields(section string) []Field {
	if section == "" {
		return Schema
	}
	out := make([]Field, 0)
	for _, f := range Schema {
		if f.Section() == section {
			out = append(out, f)
		}
	}
	return out
}

// IsSection reports whether name is a top-level document section.
func IsSection(name string) bool {
	return slices.Contains(styles.Sections, name)
}
