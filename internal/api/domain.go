package api

import (
	"fmt"

	"github.com/JaimeStill/promptiverse/internal/prompts"
	"github.com/JaimeStill/promptiverse/internal/styles"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts prompts.System
	Styles  styles.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	stylesSystem, err := styles.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)
	if err != nil {
		return nil, fmt.Errorf("styles init failed: %w", err)
	}

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Prompts: promptsSystem,
		Styles:  stylesSystem,
	}, nil
}
