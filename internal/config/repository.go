package config

import (
	"context"
	"fmt"

	"fitness-journal/internal/repository/sqlstore"
)

// OpenStore opens the configured database, applying migrations when
// AutoMigrate is set.
func OpenStore(ctx context.Context, config *Config) (*sqlstore.DB, error) {
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       config.Database.Driver,
		DSN:          config.Database.DSN,
		MaxOpenConns: config.Database.MaxConns,
		Migrate:      config.Database.AutoMigrate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
