// Package seed loads the stock template style profiles and writes the ones
// a catalog does not hold yet.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
)

//go:embed catalog.yaml
var catalogYAML []byte

const concurrency = 4

// Creator writes new style profiles.
type Creator interface {
	Create(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error)
}

type entry struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Tags        []string         `yaml:"tags"`
	Intent      document.Mapping `yaml:"intent"`
	Style       document.Mapping `yaml:"style"`
	Negative    document.Mapping `yaml:"negative"`
}

// Catalog returns the stock template styles in catalog order.
func Catalog() ([]styles.CreateCommand, error) {
	var entries []entry
	if err := yaml.Unmarshal(catalogYAML, &entries); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}

	cmds := make([]styles.CreateCommand, len(entries))
	for i, e := range entries {
		desc := e.Description
		cmds[i] = styles.CreateCommand{
			ID: e.ID,
			Payload: styles.Payload{
				SchemaVersion: styles.SchemaVersion,
				Name:          e.Name,
				Description:   &desc,
				Tags:          e.Tags,
				Intent:        e.Intent,
				Style:         e.Style,
				Negative:      e.Negative,
				IsTemplate:    true,
			},
		}
	}
	return cmds, nil
}

// Outcome reports what happened to one catalog entry.
type Outcome struct {
	ID      string
	Name    string
	Created bool
}

// Result collects seeding outcomes in catalog order.
type Result struct {
	Outcomes []Outcome
}

// Created counts the profiles written by the run.
func (r Result) Created() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Created {
			n++
		}
	}
	return n
}

// Skipped counts the profiles that already existed.
func (r Result) Skipped() int {
	return len(r.Outcomes) - r.Created()
}

// Run creates every catalog style. An entry whose create fails with an error
// matching exists is skipped; any other failure stops the run.
func Run(ctx context.Context, creator Creator, exists error, logger *slog.Logger) (Result, error) {
	cmds, err := Catalog()
	if err != nil {
		return Result{}, err
	}

	outcomes := make([]Outcome, len(cmds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, cmd := range cmds {
		g.Go(func() error {
			outcome := Outcome{ID: cmd.ID, Name: cmd.Name}

			_, err := creator.Create(ctx, cmd)
			switch {
			case err == nil:
				outcome.Created = true
				logger.Info("seeded style", "id", cmd.ID, "name", cmd.Name)
			case errors.Is(err, exists):
				logger.Info("skipped existing style", "id", cmd.ID, "name", cmd.Name)
			default:
				return fmt.Errorf("seed %s: %w", cmd.ID, err)
			}

			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Outcomes: outcomes}, nil
}
