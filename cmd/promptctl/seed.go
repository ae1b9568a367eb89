package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptiverse/internal/client"
	"github.com/JaimeStill/promptiverse/internal/seed"
)

type seedEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type seedReport struct {
	Created int         `json:"created"`
	Skipped int         `json:"skipped"`
	Styles  []seedEntry `json:"styles"`
}

func newSeedCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the built-in template style profiles",
		Long: `Seed creates the built-in template style profiles. Profiles whose ID
already exists are left unchanged, so seeding can be repeated safely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := seed.Run(cmd.Context(), app.client.Styles(), client.ErrConflict, app.logger)
			if err != nil {
				return err
			}

			report := seedReport{
				Created: result.Created(),
				Skipped: result.Skipped(),
				Styles:  make([]seedEntry, 0, len(result.Outcomes)),
			}
			for _, o := range result.Outcomes {
				status := "exists"
				if o.Created {
					status = "created"
				}
				report.Styles = append(report.Styles, seedEntry{ID: o.ID, Name: o.Name, Status: status})
			}

			return app.render(cmd.OutOrStdout(), report, func() table {
				t := table{header: []string{"ID", "NAME", "STATUS"}}
				for _, e := range report.Styles {
					t.rows = append(t.rows, []string{e.ID, e.Name, e.Status})
				}
				return t
			})
		},
	}
}
