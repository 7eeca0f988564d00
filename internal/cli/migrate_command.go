package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"fitness-journal/internal/config"
	"fitness-journal/internal/repository/sqlstore"
	"fitness-journal/internal/repository/sqlstore/migrations"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(operation string, fn func(ctx context.Context, db *sqlstore.DB, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			db, err := openWithoutMigrations(ctx, root.config)
			if err != nil {
				return NewErrorHandler().Handle(operation, err)
			}
			defer db.Close()

			return NewErrorHandler().Handle(operation, fn(ctx, db, cmd.OutOrStdout()))
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run("apply migrations", migrateUp),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert the most recently applied migration",
			Args:  cobra.NoArgs,
			RunE:  run("revert migration", migrateDown),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE:  run("read migration status", migrateStatus),
		},
	)
	return cmd
}

func openWithoutMigrations(ctx context.Context, cfg *config.Config) (*sqlstore.DB, error) {
	return sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxConns,
	})
}

func migrateUp(ctx context.Context, db *sqlstore.DB, out io.Writer) error {
	before, err := db.AppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	after, err := db.AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	applied := len(after) - len(before)
	if applied == 0 {
		fmt.Fprintln(out, "Schema is up to date")
		return nil
	}
	fmt.Fprintf(out, "Applied %d migration(s)\n", applied)
	return nil
}

func migrateDown(ctx context.Context, db *sqlstore.DB, out io.Writer) error {
	reverted, err := db.MigrateDown(ctx)
	if err != nil {
		return err
	}
	if !reverted {
		fmt.Fprintln(out, "No migrations to revert")
		return nil
	}
	fmt.Fprintln(out, "Reverted 1 migration")
	return nil
}

func migrateStatus(ctx context.Context, db *sqlstore.DB, out io.Writer) error {
	all, err := migrations.Load(db.Driver())
	if err != nil {
		return err
	}
	versions, err := db.AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	for _, m := range all {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Fprintf(out, "%06d  %-20s %s\n", m.Version, m.Name, state)
	}
	return nil
}
