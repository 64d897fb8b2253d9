package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS share_snapshots (
		id TEXT PRIMARY KEY,
		places JSON NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_share_snapshots_created_at
		ON share_snapshots (created_at)`,
}

// InitSchema creates the share snapshot and geocode cache tables.
// It is idempotent.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: db is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// PruneShareSnapshots deletes snapshots created before cutoff and reports
// how many were removed.
func PruneShareSnapshots(ctx context.Context, db *sql.DB, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("prune snapshots: db is nil")
	}
	if cutoff.IsZero() {
		return 0, errors.New("prune snapshots: cutoff is required")
	}

	res, err := db.ExecContext(ctx, `DELETE FROM share_snapshots WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: rows affected: %w", err)
	}
	return n, nil
}
