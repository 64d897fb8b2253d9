package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/metrics"
	"venue-finder-service/internal/ports"

	"github.com/google/uuid"
)

// ShareService stores result lists under fresh opaque ids and hands them
// back unchanged.
type ShareService struct {
	store ports.ShareStore
	newID func() string
	now   func() time.Time
}

func NewShareService(store ports.ShareStore) *ShareService {
	return &ShareService{
		store: store,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create persists places, a JSON array kept verbatim, and returns the new
// snapshot id.
func (s *ShareService) Create(ctx context.Context, places json.RawMessage) (_ string, err error) {
	defer func() { metrics.ShareSnapshotsTotal.WithLabelValues("create", metrics.Outcome(err)).Inc() }()

	places, err = domain.NormalizePlaceList(places)
	if err != nil {
		return "", fmt.Errorf("create share link: %w", err)
	}

	snap := domain.ShareSnapshot{
		ID:        s.newID(),
		Places:    places,
		CreatedAt: s.now(),
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return "", fmt.Errorf("create share link: %w", err)
	}

	return snap.ID, nil
}

// Get returns the place list stored under id exactly as it was submitted, or
// domain.ErrShareLinkNotFound.
func (s *ShareService) Get(ctx context.Context, id string) (_ json.RawMessage, err error) {
	defer func() { metrics.ShareSnapshotsTotal.WithLabelValues("get", metrics.Outcome(err)).Inc() }()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("get share link: %w: id is empty", domain.ErrInvalidInput)
	}

	snap, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get share link: %w", err)
	}

	return snap.Places, nil
}
