package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/lifecharts/internal/config"
	"github.com/JonMunkholm/lifecharts/internal/core"
	"github.com/JonMunkholm/lifecharts/internal/logging"
	"github.com/JonMunkholm/lifecharts/internal/source/pgsource"
	"github.com/JonMunkholm/lifecharts/internal/watch"
	"github.com/JonMunkholm/lifecharts/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"data_source", cfg.Data.Source,
		"data_watch", cfg.Data.Watch,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to open data source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	// A failed first load is not fatal: the page renders without charts
	// until a reload succeeds.
	store := core.NewStore(source)
	if _, err := store.Reload(ctx); err != nil {
		msg := core.MapError(err)
		slog.Warn("starting without a dataset", "code", msg.Code, "action", msg.Action)
	}

	server := web.NewServer(store, cfg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Data.Watch {
		watcher := watch.New(cfg.Data.Path, store, cfg.Data.WatchDebounce)
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil {
				slog.Warn("file watcher disabled", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openSource builds the configured dataset source. The returned func
// releases any connection pool.
func openSource(ctx context.Context, cfg *config.Config) (core.Source, func(), error) {
	if cfg.Data.Source != config.SourcePostgres {
		return core.FileSource{Path: cfg.Data.Path}, func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		slog.Warn("database not reachable yet", "error", err)
	}

	src, err := pgsource.New(pool, cfg.Data.Table)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("using postgres source", "table", src.String())
	return src, pool.Close, nil
}
