package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptiverse/internal/client"
	"github.com/JaimeStill/promptiverse/internal/prompts"
	"github.com/JaimeStill/promptiverse/pkg/formatting"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

func newPromptsCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Prompt management commands",
	}
	cmd.AddCommand(
		newPromptListCmd(app),
		newPromptGetCmd(app),
		newPromptCreateCmd(app),
		newPromptUpdateCmd(app),
		newPromptDeleteCmd(app),
	)
	return cmd
}

func newPromptListCmd(app *cli) *cobra.Command {
	var (
		opts      client.ListOptions
		tags      string
		modalType string
		styleID   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Tags = formatting.ParseTags(tags)
			opts.Filters = map[string]string{
				"modal_type":       modalType,
				"style_profile_id": styleID,
			}

			page, err := app.client.Prompts().List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), page, func() table {
				return promptTable(page)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Page, "page", 0, "page number")
	f.IntVar(&opts.PageSize, "page-size", 0, "results per page")
	f.StringVar(&opts.Search, "search", "", "search title and description")
	f.StringVar(&opts.Sort, "sort", "", "sort fields, e.g. -updated_at,title")
	f.StringVar(&tags, "tags", "", "comma-separated tags; matches any")
	f.StringVar(&modalType, "modal-type", "", "filter by modal type")
	f.StringVar(&styleID, "style", "", "filter by style profile ID")
	return cmd
}

func promptTable(page *pagination.PageResult[prompts.Prompt]) table {
	t := table{header: []string{"ID", "TITLE", "MODAL", "STYLE", "TAGS", "UPDATED"}, footer: pageFooter(page)}
	for _, p := range page.Data {
		t.rows = append(t.rows, []string{
			p.ID.String(),
			p.Title,
			string(p.ModalType),
			orDash(p.StyleName),
			strings.Join(p.Tags, ","),
			p.UpdatedAt.Format(time.DateTime),
		})
	}
	return t
}

func newPromptGetCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePromptID(args[0])
			if err != nil {
				return err
			}
			p, err := app.client.Prompts().Find(cmd.Context(), id)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), p, nil)
		},
	}
}

// promptFlags are the writable fields shared by create and update.
type promptFlags struct {
	title       string
	description string
	modalType   string
	content     string
	contentFile string
	style       string
	tags        string
}

func (pf *promptFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&pf.title, "title", "", "prompt title")
	f.StringVar(&pf.description, "description", "", "prompt description")
	f.StringVar(&pf.modalType, "modal-type", "", "modal type: "+modalTypeNames())
	f.StringVar(&pf.content, "content", "", "prompt content: text or a JSON object")
	f.StringVar(&pf.contentFile, "content-file", "", "read content from a file, or - for stdin")
	f.StringVar(&pf.style, "style", "", "style profile ID")
	f.StringVar(&pf.tags, "tags", "", "comma-separated tags")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

// apply copies the flags that were set on cmd into p.
func (pf *promptFlags) apply(cmd *cobra.Command, p *prompts.Payload) error {
	changed := cmd.Flags().Changed

	if changed("title") {
		p.Title = pf.title
	}
	if changed("description") {
		p.Description = optional(pf.description)
	}
	if changed("modal-type") {
		m, err := prompts.ParseModalType(pf.modalType)
		if err != nil {
			return fmt.Errorf("%w: %q (want %s)", err, pf.modalType, modalTypeNames())
		}
		p.ModalType = m
	}
	if changed("content") {
		p.Content = prompts.ParseContent(pf.content)
	}
	if changed("content-file") {
		input, err := readInput(cmd.InOrStdin(), pf.contentFile)
		if err != nil {
			return err
		}
		p.Content = prompts.ParseContent(string(input))
	}
	if changed("style") {
		p.StyleProfileID = optional(pf.style)
	}
	if changed("tags") {
		p.Tags = formatting.ParseTags(pf.tags)
	}
	return nil
}

func newPromptCreateCmd(app *cli) *cobra.Command {
	var pf promptFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body prompts.CreateCommand
			if err := pf.apply(cmd, &body.Payload); err != nil {
				return err
			}
			p, err := app.client.Prompts().Create(cmd.Context(), body)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), p, nil)
		},
	}

	pf.register(cmd)
	cmd.MarkFlagRequired("title")
	return cmd
}

func newPromptUpdateCmd(app *cli) *cobra.Command {
	var pf promptFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a prompt",
		Long: `Update a prompt. The current record is fetched and only the flags
given on the command line are changed before the full record is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePromptID(args[0])
			if err != nil {
				return err
			}

			current, err := app.client.Prompts().Find(cmd.Context(), id)
			if err != nil {
				return err
			}

			body := prompts.UpdateCommand{Payload: prompts.Payload{
				Title:          current.Title,
				Description:    current.Description,
				ModalType:      current.ModalType,
				Content:        current.Content,
				StyleProfileID: current.StyleProfileID,
				Tags:           current.Tags,
				Metadata:       current.Metadata,
			}}
			if err := pf.apply(cmd, &body.Payload); err != nil {
				return err
			}

			p, err := app.client.Prompts().Update(cmd.Context(), id, body)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), p, nil)
		},
	}

	pf.register(cmd)
	return cmd
}

func newPromptDeleteCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePromptID(args[0])
			if err != nil {
				return err
			}
			if err := app.client.Prompts().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted prompt %s\n", id)
			return nil
		},
	}
}

func parsePromptID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid prompt id %q: %w", s, err)
	}
	return id, nil
}

func modalTypeNames() string {
	names := make([]string, 0, len(prompts.ModalTypes()))
	for _, m := range prompts.ModalTypes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// readInput reads a file, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
