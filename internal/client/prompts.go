package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptiverse/internal/prompts"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

// Prompts is the gateway for /prompts.
type Prompts struct {
	c *Client
}

func (p *Prompts) List(ctx context.Context, opts ListOptions) (*pagination.PageResult[prompts.Prompt], error) {
	var result pagination.PageResult[prompts.Prompt]
	if err := p.c.get(ctx, "/prompts", opts.values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *Prompts) Find(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	var result prompts.Prompt
	if err := p.c.get(ctx, "/prompts/"+id.String(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *Prompts) Create(ctx context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error) {
	var result prompts.Prompt
	if err := p.c.send(ctx, http.MethodPost, "/prompts", cmd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *Prompts) Update(ctx context.Context, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error) {
	var result prompts.Prompt
	if err := p.c.send(ctx, http.MethodPut, "/prompts/"+id.String(), cmd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *Prompts) Delete(ctx context.Context, id uuid.UUID) error {
	return p.c.send(ctx, http.MethodDelete, "/prompts/"+id.String(), nil, nil)
}

// Stats returns the catalog summary with the given number of recent prompts.
func (p *Prompts) Stats(ctx context.Context, recent int) (*prompts.Stats, error) {
	q := url.Values{}
	if recent > 0 {
		q.Set("recent", strconv.Itoa(recent))
	}

	var result prompts.Stats
	if err := p.c.get(ctx, "/prompts/stats", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *Prompts) ModalTypes(ctx context.Context) ([]prompts.ModalType, error) {
	var result []prompts.ModalType
	if err := p.c.get(ctx, "/prompts/modal-types", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
