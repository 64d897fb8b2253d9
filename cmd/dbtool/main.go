package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"
	"venue-finder-service/internal/adapters/repositories"
	"venue-finder-service/internal/config"
	"venue-finder-service/internal/platform/db"
	"venue-finder-service/internal/platform/logger"

	"github.com/joho/godotenv"
)

func main() {
	pruneAge := flag.Duration("prune-older-than", 0, "also delete share snapshots older than this age (e.g. 720h)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}
	logger.Setup()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		slog.Error("open database", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	slog.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		slog.Error("schema initialization failed", "err", err)
		os.Exit(1)
	}
	slog.Info("schema ready")

	if *pruneAge > 0 {
		n, err := repositories.PruneShareSnapshots(ctx, conn, time.Now().Add(-*pruneAge))
		if err != nil {
			slog.Error("prune failed", "err", err)
			os.Exit(1)
		}
		slog.Info("pruned share snapshots", "deleted", n, "older_than", pruneAge.String())
	}
}
