package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/settlersonline/api/internal/config"
	"github.com/settlersonline/api/internal/database"
	"github.com/settlersonline/api/internal/game"
	"github.com/settlersonline/api/internal/handler/health"
	"github.com/settlersonline/api/internal/migrations"
	"github.com/settlersonline/api/internal/notify"
	"github.com/settlersonline/api/internal/server"
	"github.com/settlersonline/api/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Store ---
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := server.SeedTemplates(ctx, logger, st); err != nil {
		return fmt.Errorf("seeding templates: %w", err)
	}

	checks := map[string]health.Checker{
		"store": health.CheckerFunc(st.Ping),
	}

	g, gctx := errgroup.WithContext(ctx)

	// --- Notifications ---
	var bus notify.Bus = notify.NewBroker()
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		bridge := notify.NewRedisBridge(rdb, notify.NewBroker(), logger)
		bus = bridge
		checks["redis"] = redisChecker{rdb}
		g.Go(func() error {
			return bridge.Run(gctx)
		})
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Store:        st,
		Bus:          bus,
		Runtime:      game.DefaultRuntime(),
		SPADir:       cfg.SPADir,
		PingInterval: cfg.SSEPingInterval,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	})

	// --- Run ---
	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// openStore connects to Postgres when DATABASE_URL is set and to the local
// libSQL file otherwise, migrating either one.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := migrations.Run(pg.DB(), migrations.Postgres); err != nil {
			pg.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to postgres")
		return pg, nil
	}

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}
	if err := migrations.Run(db, migrations.SQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)
	return store.NewLibSQL(db, cfg.StoreRetries, logger), nil
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// redisChecker adapts *redis.Client to health.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
