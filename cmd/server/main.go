package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"venue-finder-service/internal/adapters/cache"
	"venue-finder-service/internal/adapters/googlemaps"
	"venue-finder-service/internal/adapters/repositories"
	"venue-finder-service/internal/adapters/share"
	"venue-finder-service/internal/api"
	"venue-finder-service/internal/config"
	"venue-finder-service/internal/platform/db"
	"venue-finder-service/internal/platform/logger"
	"venue-finder-service/internal/ports"
	"venue-finder-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}
	logger.Setup()

	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var conn *sql.DB
	if cfg.Share.Store == config.StorePostgres || cfg.Maps.GeocodeCache {
		conn, err = db.Open(ctx, cfg.Share.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			return err
		}
	}

	var geocodeCache ports.GeocodeCache
	if cfg.Maps.GeocodeCache {
		geocodeCache = cache.NewPostgresGeocodeCache(conn)
	}

	provider, err := googlemaps.NewClient(googlemaps.Options{
		APIKey:        cfg.Maps.APIKey,
		BaseURL:       cfg.Maps.BaseURL,
		Timeout:       cfg.Maps.Timeout,
		MaxAttempts:   cfg.Maps.MaxAttempts,
		PhotoMaxWidth: cfg.Maps.PhotoMaxWidth,
		Concurrency:   cfg.Search.Concurrency,
		GeocodeCache:  geocodeCache,
	})
	if err != nil {
		return err
	}

	store, closeStore, err := openShareStore(ctx, cfg.Share, conn)
	if err != nil {
		return err
	}
	defer closeStore()

	router := api.NewRouter(api.RouterConfig{
		Finder:         services.NewPlaceFinder(provider, cfg.Search.MaxResults, cfg.Search.Concurrency),
		Shares:         services.NewShareService(store),
		StaticDir:      cfg.HTTP.StaticDir,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	// Write timeout covers a cold find-places request (many provider round trips).
	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening",
			"addr", srv.Addr,
			"share_store", cfg.Share.Store,
			"geocode_cache", cfg.Maps.GeocodeCache,
			"max_results", cfg.Search.MaxResults,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openShareStore(ctx context.Context, cfg config.ShareConfig, conn *sql.DB) (ports.ShareStore, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		return share.NewPostgresStore(conn), func() {}, nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := share.NewRedisStore(rdb, cfg.TTL)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return store, func() { _ = rdb.Close() }, nil
	default:
		slog.Warn("using in-memory share store; share links do not survive restarts")
		return share.NewMemoryStore(), func() {}, nil
	}
}
