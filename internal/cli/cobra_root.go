// Package cli implements the journal command line: serving the HTTP API,
// managing schema migrations and inspecting a user's stats.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fitness-journal/internal/config"
	"fitness-journal/internal/logging"
	"fitness-journal/internal/metrics"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	config *config.Config
	out    io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, out io.Writer) *RootCommand {
	root := &RootCommand{
		loader: loader,
		out:    out,
	}

	root.cmd = &cobra.Command{
		Use:   "journal",
		Short: "A fitness journal backend",
		Long: `journal runs the fitness journal HTTP API and its maintenance tasks.

EXAMPLES:
  journal serve                            # Serve the API on JOURNAL_HTTP_ADDR
  journal serve --addr :9000               # Serve on another address
  journal migrate up                       # Apply pending schema migrations
  journal migrate status                   # List applied migrations
  journal stats --email jane@example.com   # Print a user's workout stats

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    JOURNAL_ENV                            development or production (default: development)
    JOURNAL_LOG_LEVEL                      debug, info, warn or error (default: info)
    JOURNAL_TIMEZONE                       Timezone for days and weeks in stats (default: UTC)
    JOURNAL_HTTP_ADDR                      Listen address (default: :8080)
    JOURNAL_DB_DRIVER                      sqlite or postgres (default: sqlite)
    JOURNAL_DB_DSN                         Database DSN (default: journal.db)
    JOURNAL_REDIS_ADDR                     Redis address for the stats cache (default: disabled)
    JOURNAL_JWT_SECRET                     Token signing secret (required)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs replaces the command line arguments, for tests.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("env", "", "Environment name (overrides JOURNAL_ENV)")
	flags.String("log-level", "", "Log level (overrides JOURNAL_LOG_LEVEL)")
	flags.String("timezone", "", "Stats timezone (overrides JOURNAL_TIMEZONE)")
	flags.String("addr", "", "HTTP listen address (overrides JOURNAL_HTTP_ADDR)")
	flags.String("db-driver", "", "Database driver (overrides JOURNAL_DB_DRIVER)")
	flags.String("db-dsn", "", "Database DSN (overrides JOURNAL_DB_DSN)")
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		newServeCommand(r),
		newMigrateCommand(r),
		newStatsCommand(r),
	)
}

// loadConfig resolves configuration with flag overrides and initialises the
// process-wide logger and metrics.
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	overrides := &config.ConfigOverrides{}
	flags := cmd.Flags()

	bind := func(name string, target **string) {
		if !flags.Changed(name) {
			return
		}
		value, _ := flags.GetString(name)
		*target = &value
	}
	bind("env", &overrides.Env)
	bind("log-level", &overrides.LogLevel)
	bind("timezone", &overrides.Timezone)
	bind("addr", &overrides.Addr)
	bind("db-driver", &overrides.DBDriver)
	bind("db-dsn", &overrides.DBDSN)

	cfg, err := r.loader.LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	if err := logging.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.Metrics.Enabled {
		metrics.Init()
	}
	return nil
}
