// Package sqlstore implements the repository contracts on top of sqlx, with
// SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq) drivers.
package sqlstore

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"modernc.org/sqlite"

	"fitness-journal/internal/errors"
	"fitness-journal/internal/repository/sqlstore/migrations"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLite's built-in lower() only folds ASCII. Replacing it keeps workout type
// filters case-insensitive for any script, the same as PostgreSQL and
// domain.ListOptions.Matches.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Options configures a database connection.
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	// Migrate applies pending migrations after connecting.
	Migrate bool
}

// DB wraps sqlx.DB and remembers which dialect it speaks.
type DB struct {
	*sqlx.DB
	driver string
}

// Open connects to the database described by opts and verifies the connection.
func Open(ctx context.Context, opts Options) (*DB, error) {
	if opts.Driver != DriverSQLite && opts.Driver != DriverPostgres {
		return nil, errors.NewInvalidInputError("driver", opts.Driver, "must be sqlite or postgres")
	}

	db, err := sqlx.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	if opts.Driver == DriverSQLite {
		// A single connection keeps ":memory:" databases shared and serialises writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		maxConns := opts.MaxOpenConns
		if maxConns <= 0 {
			maxConns = 10
		}
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns / 2)
		db.SetConnMaxLifetime(time.Hour)
		db.SetConnMaxIdleTime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("ping database", err)
	}

	if opts.Driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("enable foreign keys", err)
		}
	}

	store := &DB{DB: db, driver: opts.Driver}
	if opts.Migrate {
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return store, nil
}

// OpenMemory opens a migrated in-memory SQLite database.
func OpenMemory(ctx context.Context) (*DB, error) {
	return Open(ctx, Options{Driver: DriverSQLite, DSN: ":memory:", Migrate: true})
}

// Driver returns the dialect name.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies pending migrations.
func (db *DB) Migrate(ctx context.Context) error {
	if err := migrations.Run(ctx, db.DB, db.driver); err != nil {
		return errors.NewDatabaseError("run migrations", err)
	}
	return nil
}

// MigrateDown reverts the latest applied migration.
func (db *DB) MigrateDown(ctx context.Context) (bool, error) {
	reverted, err := migrations.Down(ctx, db.DB, db.driver)
	if err != nil {
		return false, errors.NewDatabaseError("revert migration", err)
	}
	return reverted, nil
}

// AppliedMigrations lists the applied migration versions.
func (db *DB) AppliedMigrations(ctx context.Context) ([]int, error) {
	versions, err := migrations.Applied(ctx, db.DB)
	if err != nil {
		return nil, errors.NewDatabaseError("list migrations", err)
	}
	return versions, nil
}

// Health checks database connectivity
func (db *DB) Health(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
