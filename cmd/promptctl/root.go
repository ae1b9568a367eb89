package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptiverse/internal/client"
)

const (
	envServerURL     = "PROMPTIVERSE_SERVER_URL"
	defaultServerURL = "http://localhost:8080/api"
)

// cli holds the state shared by every command once flags are parsed.
type cli struct {
	serverURL string
	output    string
	timeout   time.Duration
	logLevel  string

	client *client.Client
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:   "promptctl",
		Short: "Manage prompts and style profiles in a promptiverse server",
		Long: `promptctl calls a running promptiverse server over HTTP.

Use --server or PROMPTIVERSE_SERVER_URL to point at the API root.

Examples:
  promptctl prompts list --modal-type image
  promptctl styles get style.neo_noir.v1 --canonical
  promptctl styles new
  promptctl seed`,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
	}

	serverURL := os.Getenv(envServerURL)
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.serverURL, "server", serverURL, "API base URL (env "+envServerURL+")")
	flags.StringVarP(&app.output, "output", "o", string(formatYAML), "output format: yaml, json, or table")
	flags.DurationVar(&app.timeout, "timeout", 30*time.Second, "per-request timeout")
	flags.StringVar(&app.logLevel, "log-level", "warn", "log level: debug, info, warn, or error")

	root.AddCommand(
		newPromptsCmd(app),
		newStylesCmd(app),
		newSeedCmd(app),
		newDashboardCmd(app),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", c.logLevel)
	}

	switch outputFormat(strings.ToLower(c.output)) {
	case formatYAML, formatJSON, formatTable:
		c.output = strings.ToLower(c.output)
	default:
		return fmt.Errorf("unknown output format: %s", c.output)
	}

	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	c.client = client.New(c.serverURL,
		client.WithTimeout(c.timeout),
		client.WithLogger(c.logger),
	)
	return nil
}
