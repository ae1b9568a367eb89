package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

// Styles is the gateway for /styles. It satisfies the editor's save gateway.
type Styles struct {
	c *Client
}

func stylePath(id string, suffix ...string) string {
	p := "/styles/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func (s *Styles) List(ctx context.Context, opts ListOptions) (*pagination.PageResult[styles.StyleProfile], error) {
	var result pagination.PageResult[styles.StyleProfile]
	if err := s.c.get(ctx, "/styles", opts.values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Styles) Find(ctx context.Context, id string) (*styles.StyleProfile, error) {
	var result styles.StyleProfile
	if err := s.c.get(ctx, stylePath(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Styles) Create(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error) {
	var result styles.StyleProfile
	if err := s.c.send(ctx, http.MethodPost, "/styles", cmd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Styles) Update(ctx context.Context, id string, cmd styles.UpdateCommand) (*styles.StyleProfile, error) {
	var result styles.StyleProfile
	if err := s.c.send(ctx, http.MethodPut, stylePath(id), cmd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Styles) Delete(ctx context.Context, id string) error {
	return s.c.send(ctx, http.MethodDelete, stylePath(id), nil, nil)
}

// Validate checks doc against the style profile schema without storing it.
func (s *Styles) Validate(ctx context.Context, doc any) (*styles.ValidationResult, error) {
	var result styles.ValidationResult
	if err := s.c.send(ctx, http.MethodPost, "/styles/validate", doc, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Export stores a canonical snapshot of the profile in blob storage.
func (s *Styles) Export(ctx context.Context, id string) (*styles.Export, error) {
	var result styles.Export
	if err := s.c.send(ctx, http.MethodPost, stylePath(id, "export"), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Snapshot returns the raw bytes of the stored export.
func (s *Styles) Snapshot(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	if err := s.c.get(ctx, stylePath(id, "export"), nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}
