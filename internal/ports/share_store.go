package ports

import (
	"context"
	"venue-finder-service/internal/domain"
)

// Port: a boundary for persisting share snapshots.
type ShareStore interface {
	// Save stores a new snapshot. IDs are never reused or overwritten.
	Save(ctx context.Context, snapshot domain.ShareSnapshot) error
	// Load returns domain.ErrShareLinkNotFound for unknown ids.
	Load(ctx context.Context, id string) (domain.ShareSnapshot, error)
}
