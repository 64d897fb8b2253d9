package share

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/obs"
	"venue-finder-service/internal/ports"
)

// PostgresStore persists snapshots in the share_snapshots table. The places
// column is JSON rather than JSONB so the submitted text is kept verbatim.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Save(ctx context.Context, snapshot domain.ShareSnapshot) (err error) {
	defer obs.Time(ctx, "shareStore.postgres.Save")(&err)

	if s.DB == nil {
		return errors.New("share store: db is nil")
	}
	snapshot, err = prepare(snapshot)
	if err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO share_snapshots (id, places, created_at)
		VALUES ($1, $2::json, $3)
		ON CONFLICT (id) DO NOTHING`,
		snapshot.ID, string(snapshot.Places), snapshot.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", snapshot.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save snapshot %q: rows affected: %w", snapshot.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("save snapshot %q: %w", snapshot.ID, ErrDuplicateID)
	}

	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (_ domain.ShareSnapshot, err error) {
	defer obs.Time(ctx, "shareStore.postgres.Load")(&err)

	if s.DB == nil {
		return domain.ShareSnapshot{}, errors.New("share store: db is nil")
	}

	var snap domain.ShareSnapshot
	var placesJSON []byte
	err = s.DB.QueryRowContext(ctx, `
		SELECT id, places, created_at
		FROM share_snapshots
		WHERE id = $1`,
		id,
	).Scan(&snap.ID, &placesJSON, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShareSnapshot{}, fmt.Errorf("load snapshot %q: %w", id, domain.ErrShareLinkNotFound)
	}
	if err != nil {
		return domain.ShareSnapshot{}, fmt.Errorf("load snapshot %q: %w", id, err)
	}

	snap.Places = placesJSON

	return snap, nil
}

var _ ports.ShareStore = (*PostgresStore)(nil)
