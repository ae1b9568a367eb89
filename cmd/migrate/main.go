// Command migrate applies the embedded schema migrations to the catalog database.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/promptiverse/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "PROMPTIVERSE_DB_DSN"

var errUsage = errors.New("choose one of -up, -down, -steps N, -version, -force N")

// action is the single migration operation selected on the command line.
type action struct {
	name  string
	steps int
	force int
}

type options struct {
	dsn     string
	verbose bool
	action  action
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger *slog.Logger) error {
	opts, err := parseArgs(args, stdout)
	if err != nil {
		return err
	}

	dsn, err := resolveDSN(opts.dsn)
	if err != nil {
		return err
	}

	src, err := newSource()
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()
	m.Log = &migrateLogger{logger: logger, verbose: opts.verbose}

	return apply(m, opts.action, stdout)
}

func parseArgs(args []string, out io.Writer) (*options, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		opts    options
		up      = fs.Bool("up", false, "apply all pending migrations")
		down    = fs.Bool("down", false, "revert all migrations")
		steps   = fs.Int("steps", 0, "apply N migrations, or revert when negative")
		version = fs.Bool("version", false, "print the current schema version")
		force   = fs.Int("force", -1, "set the schema version without running migrations")
	)
	fs.StringVar(&opts.dsn, "dsn", "", "postgres:// connection URL (default from "+envDSN+" or PROMPTIVERSE_DB_*)")
	fs.BoolVar(&opts.verbose, "v", false, "log each migration step")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var chosen []action
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "up":
			if *up {
				chosen = append(chosen, action{name: "up"})
			}
		case "down":
			if *down {
				chosen = append(chosen, action{name: "down"})
			}
		case "steps":
			if *steps != 0 {
				chosen = append(chosen, action{name: "steps", steps: *steps})
			}
		case "version":
			if *version {
				chosen = append(chosen, action{name: "version"})
			}
		case "force":
			chosen = append(chosen, action{name: "force", force: *force})
		}
	})

	if len(chosen) != 1 {
		fs.Usage()
		return nil, errUsage
	}
	opts.action = chosen[0]
	return &opts, nil
}

func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}
	db, err := config.DatabaseFromEnv()
	if err != nil {
		return "", fmt.Errorf("resolve database settings: %w", err)
	}
	return db.URL(), nil
}

func newSource() (source.Driver, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return src, nil
}

func apply(m *migrate.Migrate, a action, out io.Writer) error {
	var err error
	switch a.name {
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "version: none")
			return nil
		}
		if verr != nil {
			return fmt.Errorf("read version: %w", verr)
		}
		fmt.Fprintf(out, "version: %d, dirty: %v\n", v, dirty)
		return nil
	case "force":
		if err := m.Force(a.force); err != nil {
			return fmt.Errorf("force version %d: %w", a.force, err)
		}
		fmt.Fprintf(out, "forced to version %d\n", a.force)
		return nil
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(a.steps)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintln(out, "no change")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", a.name, err)
	}
	fmt.Fprintf(out, "migrate %s complete\n", a.name)
	return nil
}

// migrateLogger adapts slog to the migrate.Logger interface.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
