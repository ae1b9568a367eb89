package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JaimeStill/promptiverse/internal/editor"
	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
)

const editorHelp = `Commands:
  fields [section]           list editable fields and their values
  section <name>             switch section (intent, style, negative)
  set <path> <value>         set an enum, text, or number field
  list <path> <a, b, ...>    replace a list field
  add <path> <value> [w]     append a weighted entry (weight defaults to 1.0)
  rm <path> <n>              remove weighted entry n as numbered by fields
  name <text>                set the style name
  description <text>         set the description
  tags <a, b, ...>           replace the tags
  id <id>                    request an ID for a new style
  show                       print the JSON that save would send
  save                       save and exit
  quit                       exit without saving

Paths may be given relative to the current section, e.g. palette.mode.`

// repl drives an editor session from line-oriented input.
type repl struct {
	session *editor.Session
	in      *bufio.Scanner
	out     io.Writer
}

func newRepl(session *editor.Session, in io.Reader, out io.Writer) *repl {
	return &repl{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// run reads commands until the style is saved, the user quits, or input
// ends. It returns the saved record, or nil when nothing was saved.
func (r *repl) run(ctx context.Context) (*styles.StyleProfile, error) {
	fmt.Fprintf(r.out, "editing %s style profile. Type help for commands.\n", r.session.Mode())

	for {
		fmt.Fprintf(r.out, "%s> ", r.session.Section())
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return nil, r.in.Err()
		}

		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch name {
		case "quit", "exit":
			return nil, nil
		case "save":
			saved, err := r.session.Save(ctx)
			if err != nil {
				r.fail(err)
				continue
			}
			fmt.Fprintf(r.out, "saved %s (%s)\n", saved.ID, saved.Name)
			return saved, nil
		default:
			if err := r.exec(name, rest); err != nil {
				r.fail(err)
			}
		}
	}
}

func (r *repl) exec(name, rest string) error {
	switch name {
	case "help", "?":
		fmt.Fprintln(r.out, editorHelp)
		return nil
	case "fields":
		return r.fields(rest)
	case "section":
		return r.session.SetSection(rest)
	case "set":
		return r.set(rest)
	case "list":
		return r.list(rest)
	case "add":
		return r.add(rest)
	case "rm":
		return r.remove(rest)
	case "name":
		return r.session.SetName(rest)
	case "description":
		return r.session.SetDescription(rest)
	case "tags":
		return r.session.SetTags(rest)
	case "id":
		return r.session.SetID(rest)
	case "show":
		fmt.Fprintf(r.out, "%s\n", r.session.Preview())
		return nil
	default:
		return fmt.Errorf("unknown command %q, type help for commands", name)
	}
}

func (r *repl) fail(err error) {
	fmt.Fprintf(r.out, "error: %v\n", err)
}

func (r *repl) fields(section string) error {
	if section == "" {
		section = r.session.Section()
	}
	if !editor.IsSection(section) {
		return fmt.Errorf("%w: %s", editor.ErrUnknownSection, section)
	}

	for _, f := range editor.Fields(section) {
		fmt.Fprintf(r.out, "  %-28s %-9s %s\n", f.Path, f.Kind, f.Describe())
		value, ok := r.session.Get(f.Path)
		if !ok {
			continue
		}
		for _, line := range describeValue(value) {
			fmt.Fprintf(r.out, "      %s\n", line)
		}
	}
	return nil
}

// resolve finds the schema field for path, trying it first as given and
// then relative to the current section.
func (r *repl) resolve(path string) (editor.Field, error) {
	if path == "" {
		return editor.Field{}, errors.New("path required")
	}
	if f, ok := editor.Lookup(document.ParsePath(path)); ok {
		return f, nil
	}
	if f, ok := editor.Lookup(document.ParsePath(r.session.Section() + "." + path)); ok {
		return f, nil
	}
	return editor.Field{}, fmt.Errorf("%w: %s", editor.ErrUnknownPath, path)
}

func (r *repl) set(args string) error {
	path, value, _ := strings.Cut(args, " ")
	f, err := r.resolve(path)
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	scalar := document.String(value)
	if f.Kind == editor.FieldNumber {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s expects a number", editor.ErrFieldKind, f.Path)
		}
		scalar = document.Number(n)
	}
	return r.session.Dispatch(editor.SetScalar{Path: f.Path, Value: scalar})
}

func (r *repl) list(args string) error {
	path, values, _ := strings.Cut(args, " ")
	f, err := r.resolve(path)
	if err != nil {
		return err
	}
	return r.session.Dispatch(editor.SetList{Path: f.Path, Values: strings.Split(values, ",")})
}

func (r *repl) add(args string) error {
	path, rest, _ := strings.Cut(args, " ")
	f, err := r.resolve(path)
	if err != nil {
		return err
	}

	entry := document.WeightedEntry{Value: strings.TrimSpace(rest), Weight: 1.0}
	if i := strings.LastIndex(entry.Value, " "); i > 0 {
		if w, err := strconv.ParseFloat(entry.Value[i+1:], 64); err == nil {
			entry.Value, entry.Weight = strings.TrimSpace(entry.Value[:i]), w
		}
	}
	return r.session.Dispatch(editor.AppendWeighted{Path: f.Path, Entry: entry})
}

func (r *repl) remove(args string) error {
	path, index, _ := strings.Cut(args, " ")
	f, err := r.resolve(path)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil || n < 1 {
		return fmt.Errorf("entry number must be a positive integer, got %q", index)
	}
	return r.session.Dispatch(editor.RemoveWeighted{Path: f.Path, Index: n - 1})
}

// describeValue renders a field value as display lines. Weighted entries
// are numbered from 1 to match rm.
func describeValue(v document.Value) []string {
	switch v := v.(type) {
	case document.Scalar:
		if v.IsNull() {
			return nil
		}
		return []string{fmt.Sprint(v.Any())}
	case document.List:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item.Any()))
		}
		return []string{strings.Join(parts, ", ")}
	case document.WeightedList:
		lines := make([]string, 0, len(v))
		for i, e := range v {
			lines = append(lines, fmt.Sprintf("%d. %s (%+.1f)", i+1, e.Value, e.Weight))
		}
		return lines
	}
	return nil
}
