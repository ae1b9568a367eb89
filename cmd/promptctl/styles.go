package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/promptiverse/internal/client"
	"github.com/JaimeStill/promptiverse/internal/editor"
	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/formatting"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

var errInvalidStyle = errors.New("style profile document is invalid")

func newStylesCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Style profile management commands",
	}
	cmd.AddCommand(
		newStyleListCmd(app),
		newStyleGetCmd(app),
		newStyleDeleteCmd(app),
		newStyleValidateCmd(app),
		newStyleExportCmd(app),
		newStyleEditCmd(app),
		newStyleNewCmd(app),
	)
	return cmd
}

func newStyleListCmd(app *cli) *cobra.Command {
	var (
		opts      client.ListOptions
		tags      string
		templates bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List style profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Tags = formatting.ParseTags(tags)
			if cmd.Flags().Changed("templates") {
				opts.Filters = map[string]string{"is_template": strconv.FormatBool(templates)}
			}

			page, err := app.client.Styles().List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), page, func() table {
				return styleTable(page)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Page, "page", 0, "page number")
	f.IntVar(&opts.PageSize, "page-size", 0, "results per page")
	f.StringVar(&opts.Search, "search", "", "search name and description")
	f.StringVar(&opts.Sort, "sort", "", "sort fields, e.g. -usage_count,name")
	f.StringVar(&tags, "tags", "", "comma-separated tags; matches any")
	f.BoolVar(&templates, "templates", false, "filter by template flag")
	return cmd
}

func styleTable(page *pagination.PageResult[styles.StyleProfile]) table {
	t := table{header: []string{"ID", "NAME", "TAGS", "USAGE", "TEMPLATE", "UPDATED"}, footer: pageFooter(page)}
	for _, s := range page.Data {
		t.rows = append(t.rows, []string{
			s.ID,
			s.Name,
			strings.Join(s.Tags, ","),
			strconv.Itoa(s.UsageCount),
			strconv.FormatBool(s.IsTemplate),
			s.UpdatedAt.Format(time.DateTime),
		})
	}
	return t
}

func newStyleGetCmd(app *cli) *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a style profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := app.client.Styles().Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !canonical {
				return app.render(cmd.OutOrStdout(), style, nil)
			}

			data, err := document.Canonical(style.Document())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the canonical JSON document")
	return cmd
}

func newStyleDeleteCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a style profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.Styles().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted style profile %s\n", args[0])
			return nil
		},
	}
}

func newStyleValidateCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|->",
		Short: "Validate a style profile document",
		Long: `Validate a style profile document against the server schema without
storing it. The document may be JSON or YAML; use - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var doc document.Mapping
			if err := yaml.Unmarshal(input, &doc); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			result, err := app.client.Styles().Validate(cmd.Context(), doc)
			if err != nil {
				return err
			}
			if err := app.render(cmd.OutOrStdout(), result, nil); err != nil {
				return err
			}
			if !result.Valid {
				return errInvalidStyle
			}
			return nil
		},
	}
}

func newStyleExportCmd(app *cli) *cobra.Command {
	var (
		download bool
		file     string
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a style profile snapshot to blob storage",
		Long: `Export writes a canonical snapshot of the style profile to blob storage
and prints the export details. With --download the stored snapshot is
fetched instead, written to --file or stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !download {
				export, err := app.client.Styles().Export(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return app.render(cmd.OutOrStdout(), export, nil)
			}

			data, err := app.client.Styles().Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if file != "" {
				return os.WriteFile(file, data, 0644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&download, "download", false, "download the stored snapshot")
	cmd.Flags().StringVarP(&file, "file", "f", "", "write the downloaded snapshot to a file")
	return cmd
}

func newStyleEditCmd(app *cli) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a style profile in the guided editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := app.client.Styles().Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.runEditor(cmd, seed, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "print the document after every change")
	return cmd
}

func newStyleNewCmd(app *cli) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a style profile in the guided editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runEditor(cmd, nil, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "print the document after every change")
	return cmd
}

func (c *cli) runEditor(cmd *cobra.Command, seed *styles.StyleProfile, watch bool) error {
	out := cmd.OutOrStdout()

	opts := []editor.Option{editor.WithLogger(c.logger)}
	if watch {
		opts = append(opts, editor.WithObserver(func(preview []byte) {
			fmt.Fprintf(out, "%s\n", preview)
		}))
	}

	session := editor.New(c.client.Styles(), opts...)
	if err := session.Initialize(seed); err != nil {
		return err
	}

	saved, err := newRepl(session, cmd.InOrStdin(), out).run(cmd.Context())
	if err != nil {
		return err
	}
	if saved == nil {
		fmt.Fprintln(out, "no changes saved")
	}
	return nil
}
