package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/query"
	"github.com/JaimeStill/promptiverse/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	prompts, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(prompts, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := find(ctx, r.db, id)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

// Create inserts the prompt and bumps the usage count of its style profile
// in the same transaction.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Prompt, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	args, err := writeArgs(cmd.Payload)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO prompts(title, description, modal_type, content, style_profile_id, tags, metadata)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7::jsonb)
		RETURNING id`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		if cmd.StyleProfileID != nil {
			if err := repository.ExecExpectOne(
				ctx, tx,
				"UPDATE style_profiles SET usage_count = usage_count + 1 WHERE id = $1",
				*cmd.StyleProfileID,
			); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return Prompt{}, ErrStyleNotFound
				}
				return Prompt{}, fmt.Errorf("count style usage: %w", err)
			}
		}

		var id uuid.UUID
		if err := tx.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return Prompt{}, err
		}
		return find(ctx, tx, id)
	})

	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("prompt created", "id", p.ID, "title", p.Title, "modal_type", p.ModalType)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	args, err := writeArgs(cmd.Payload)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE prompts
		SET title = $1, description = $2, modal_type = $3, content = $4::jsonb,
			style_profile_id = $5, tags = $6, metadata = $7::jsonb, updated_at = now()
		WHERE id = $8`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		if err := repository.ExecExpectOne(ctx, tx, q, append(args, id)...); err != nil {
			return Prompt{}, err
		}
		return find(ctx, tx, id)
	})

	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("prompt updated", "id", p.ID, "title", p.Title)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM prompts WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

func (r *repo) Stats(ctx context.Context, recent int) (*Stats, error) {
	stats := Stats{ByModalType: make(map[ModalType]int, len(ModalTypes()))}
	for _, m := range ModalTypes() {
		stats.ByModalType[m] = 0
	}

	rows, err := r.db.QueryContext(ctx, "SELECT modal_type, COUNT(*) FROM prompts GROUP BY modal_type")
	if err != nil {
		return nil, fmt.Errorf("count prompts by modal type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m ModalType
		var n int
		if err := rows.Scan(&m, &n); err != nil {
			return nil, fmt.Errorf("scan modal type count: %w", err)
		}
		stats.ByModalType[m] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count prompts by modal type: %w", err)
	}

	if recent > 0 {
		q, args := query.NewBuilder(projection, defaultSort).BuildPage(1, recent)
		stats.Recent, err = repository.QueryMany(ctx, r.db, q, args, scanPrompt)
		if err != nil {
			return nil, fmt.Errorf("query recent prompts: %w", err)
		}
	} else {
		stats.Recent = []Prompt{}
	}

	return &stats, nil
}

func find(ctx context.Context, db repository.Querier, id uuid.UUID) (Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	return repository.QueryOne(ctx, db, q, args, scanPrompt)
}

func mapError(err error) error {
	err = repository.MapReference(err, ErrStyleNotFound)
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
