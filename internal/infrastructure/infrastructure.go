// Package infrastructure assembles the logger, database pool, and export
// storage shared by every domain module.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/pkg/database"
	"github.com/JaimeStill/promptiverse/pkg/lifecycle"
	"github.com/JaimeStill/promptiverse/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New builds every system from cfg without connecting anything; Start
// registers their startup hooks. The process-wide default slog logger is
// replaced so stray slog calls share the configured handler.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := NewLogger(os.Stderr, cfg.Level(), cfg.LogFormat)
	slog.SetDefault(logger)
	logger = logger.With("version", cfg.Version)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// NewLogger returns a logger writing to w at level. format selects the JSON
// handler for "json" and the text handler otherwise.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type starter interface {
	Start(lc *lifecycle.Coordinator) error
}

// Start registers the database and storage with the lifecycle coordinator,
// in that order.
func (i *Infrastructure) Start() error {
	systems := []struct {
		name string
		sys  starter
	}{
		{"database", i.Database},
		{"storage", i.Storage},
	}
	for _, s := range systems {
		if err := s.sys.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("start %s: %w", s.name, err)
		}
	}
	return nil
}
