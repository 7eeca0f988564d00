package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fitness-journal/internal/api"
	"fitness-journal/internal/cache"
	"fitness-journal/internal/config"
	"fitness-journal/internal/logging"
	"fitness-journal/internal/repository/sqlstore"
	"fitness-journal/internal/services"
)

// Version is reported by the readiness endpoint. Set at build time with
// -ldflags "-X fitness-journal/internal/cli.Version=...".
var Version = "dev"

func newServeCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal HTTP API",
		Long:  "Open the database, apply migrations when enabled and serve the HTTP API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return NewErrorHandler().Handle("serve", runServe(ctx, root.config))
		},
	}
}

// runServe blocks until ctx is cancelled or the server fails.
func runServe(ctx context.Context, cfg *config.Config) error {
	defer logging.Sync()

	db, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	checks := map[string]api.HealthChecker{"database": db}

	var statsCache services.StatsCache
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewStatsCache(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.StatsCacheTTL,
		})
		if err != nil {
			return err
		}
		defer redisCache.Close()
		statsCache = redisCache
		checks["redis"] = redisCache
		logging.Infof("Stats cache enabled at %s", cfg.Redis.Addr)
	}

	container := newServiceContainer(cfg, db, statsCache)
	server := api.NewServer(serverConfig(cfg), container, api.NewHealthHandler(checks, Version))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// newServiceContainer wires the services over db. statsCache may be nil.
func newServiceContainer(cfg *config.Config, db *sqlstore.DB, statsCache services.StatsCache) *services.ServiceContainer {
	entries := sqlstore.NewEntryRepository(db)
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	return &services.ServiceContainer{
		EntryService: services.NewEntryService(entries, statsCache),
		StatsService: services.NewStatsService(entries, statsCache, cfg.Location()),
		AuthService:  services.NewAuthService(sqlstore.NewUserRepository(db), tokens, cfg.Auth.BcryptCost),
	}
}

func serverConfig(cfg *config.Config) api.ServerConfig {
	return api.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		Version:           Version,
		CORSOrigin:        cfg.HTTP.CORSOrigin,
		AuthRatePerMinute: cfg.HTTP.AuthRatePerMinute,
		AuthRateBurst:     cfg.HTTP.AuthRateBurst,
		RequestTimeout:    cfg.Database.QueryTimeout,
		MetricsEnabled:    cfg.Metrics.Enabled,
		MetricsPath:       cfg.Metrics.Path,
	}
}
