package styles

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/query"
	"github.com/JaimeStill/promptiverse/pkg/repository"
	"github.com/JaimeStill/promptiverse/pkg/storage"
)

const exportContentType = "application/json"

type repo struct {
	db         *sql.DB
	storage    storage.System
	validator  *Validator
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a style profile repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) (System, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	return &repo{
		db:         db,
		storage:    store,
		validator:  validator,
		logger:     logger.With("system", "styles"),
		pagination: pagination,
	}, nil
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[StyleProfile], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count styles: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	styles, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanStyle)
	if err != nil {
		return nil, fmt.Errorf("query styles: %w", err)
	}

	result := pagination.NewPageResult(styles, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*StyleProfile, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanStyle)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*StyleProfile, error) {
	if err := r.prepare(&cmd.Payload); err != nil {
		return nil, err
	}

	id := cmd.ID
	if id == "" {
		id = uuid.NewString()
	}

	args, err := writeArgs(cmd.Payload)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO style_profiles(schema_version, name, description, tags, intent, style, negative, is_template, id)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7::jsonb, $8, $9)
		RETURNING ` + columns

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (StyleProfile, error) {
		return repository.QueryOne(ctx, tx, q, append(args, id), scanStyle)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("style created", "id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd UpdateCommand) (*StyleProfile, error) {
	if err := r.prepare(&cmd.Payload); err != nil {
		return nil, err
	}

	args, err := writeArgs(cmd.Payload)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE style_profiles
		SET schema_version = $1, name = $2, description = $3, tags = $4,
			intent = $5::jsonb, style = $6::jsonb, negative = $7::jsonb,
			is_template = $8, updated_at = now()
		WHERE id = $9
		RETURNING ` + columns

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (StyleProfile, error) {
		return repository.QueryOne(ctx, tx, q, append(args, id), scanStyle)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("style updated", "id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM style_profiles WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, exportKey(id)); delErr != nil && !errors.Is(delErr, storage.ErrNotFound) {
		r.logger.Warn("export delete failed after style delete", "id", id, "error", delErr)
	}

	r.logger.Info("style deleted", "id", id)
	return nil
}

func (r *repo) Validate(doc any) ValidationResult {
	return r.validator.Validate(doc)
}

func (r *repo) Export(ctx context.Context, id string) (*Export, error) {
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := document.Canonical(p.Document())
	if err != nil {
		return nil, fmt.Errorf("render style export: %w", err)
	}

	key := exportKey(p.ID)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), exportContentType); err != nil {
		return nil, fmt.Errorf("upload style export: %w", err)
	}

	r.logger.Info("style exported", "id", p.ID, "key", key, "size", len(data))

	return &Export{
		StyleID:     p.ID,
		Key:         key,
		Size:        int64(len(data)),
		ContentType: exportContentType,
		ExportedAt:  time.Now().UTC(),
	}, nil
}

func (r *repo) Snapshot(ctx context.Context, id string) (io.ReadCloser, error) {
	return r.storage.Download(ctx, exportKey(id))
}

func (r *repo) prepare(p *Payload) error {
	p.normalize()
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Style == nil {
		p.Style = document.Mapping{}
	}
	return r.validator.Check(*p)
}

func writeArgs(p Payload) ([]any, error) {
	intent, err := repository.JSONB(p.Intent)
	if err != nil {
		return nil, fmt.Errorf("encode intent: %w", err)
	}
	style, err := repository.JSONB(p.Style)
	if err != nil {
		return nil, fmt.Errorf("encode style: %w", err)
	}
	negative, err := repository.JSONB(p.Negative)
	if err != nil {
		return nil, fmt.Errorf("encode negative: %w", err)
	}

	return []any{
		p.SchemaVersion,
		p.Name,
		p.Description,
		p.Tags,
		intent,
		style,
		negative,
		p.IsTemplate,
	}, nil
}

func exportKey(id string) string {
	return fmt.Sprintf("styles/%s.json", url.PathEscape(id))
}
