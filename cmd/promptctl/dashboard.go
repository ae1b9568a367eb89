package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptiverse/internal/client"
	"github.com/JaimeStill/promptiverse/internal/prompts"
)

type dashboard struct {
	Prompts     int                       `json:"prompts"`
	Styles      int                       `json:"styles"`
	Templates   int                       `json:"templates"`
	ByModalType map[prompts.ModalType]int `json:"by_modal_type"`
	Recent      []recentPrompt            `json:"recent"`
}

type recentPrompt struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ModalType string `json:"modal_type"`
	Style     string `json:"style"`
}

func newDashboardCmd(app *cli) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize the prompt and style catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				stats                     *prompts.Stats
				styleTotal, templateTotal int
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				s, err := app.client.Prompts().Stats(ctx, recent)
				stats = s
				return err
			})
			g.Go(func() error {
				page, err := app.client.Styles().List(ctx, client.ListOptions{Page: 1, PageSize: 1})
				if err != nil {
					return err
				}
				styleTotal = page.Total
				return nil
			})
			g.Go(func() error {
				page, err := app.client.Styles().List(ctx, client.ListOptions{
					Page:     1,
					PageSize: 1,
					Filters:  map[string]string{"is_template": "true"},
				})
				if err != nil {
					return err
				}
				templateTotal = page.Total
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			d := dashboard{
				Prompts:     stats.Total,
				Styles:      styleTotal,
				Templates:   templateTotal,
				ByModalType: stats.ByModalType,
				Recent:      make([]recentPrompt, 0, len(stats.Recent)),
			}
			for _, p := range stats.Recent {
				d.Recent = append(d.Recent, recentPrompt{
					ID:        p.ID.String(),
					Title:     p.Title,
					ModalType: string(p.ModalType),
					Style:     orDash(p.StyleName),
				})
			}

			return app.render(cmd.OutOrStdout(), d, func() table {
				t := table{header: []string{"METRIC", "COUNT"}}
				t.rows = append(t.rows,
					[]string{"prompts", strconv.Itoa(d.Prompts)},
					[]string{"styles", strconv.Itoa(d.Styles)},
					[]string{"templates", strconv.Itoa(d.Templates)},
				)
				for _, m := range prompts.ModalTypes() {
					t.rows = append(t.rows, []string{"modal:" + string(m), strconv.Itoa(d.ByModalType[m])})
				}
				return t
			})
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 5, "number of recent prompts to include")
	return cmd
}
