package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

type outputFormat string

const (
	formatYAML  outputFormat = "yaml"
	formatJSON  outputFormat = "json"
	formatTable outputFormat = "table"
)

// table is the tabular rendering of a list result.
type table struct {
	header []string
	rows   [][]string
	footer string
}

// pageFooter summarizes the position of a page within its listing.
func pageFooter[T any](page *pagination.PageResult[T]) string {
	footer := fmt.Sprintf("page %d of %d, %d total", page.Page, page.TotalPages, page.Total)
	if page.HasNext() {
		footer += fmt.Sprintf(" (next: --page %d)", page.Page+1)
	}
	return footer
}

// render writes data in the selected output format. Results without a
// table view fall back to YAML when table output is selected.
func (c *cli) render(w io.Writer, data any, tbl func() table) error {
	switch outputFormat(c.output) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatTable:
		if tbl != nil {
			return writeTable(w, tbl())
		}
	}
	return writeYAML(w, data)
}

// writeYAML encodes data through its JSON form so that json field names
// and custom marshalers apply, then emits block-style YAML in field order.
func writeYAML(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(&node)
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

func writeTable(w io.Writer, t table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.footer != "" {
		_, err := fmt.Fprintf(w, "\n%s\n", t.footer)
		return err
	}
	return nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
