package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"
	"venue-finder-service/internal/adapters/share"
	"venue-finder-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestShareRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newScenario(3)
	places, err := NewPlaceFinder(p, 3, 8).FindPlaces(ctx, FindPlacesRequest{
		Locations: []string{"London", "Oxford"},
		Query:     "Restaurants",
	})
	require.NoError(t, err)
	raw, err := json.Marshal(places)
	require.NoError(t, err)

	svc := NewShareService(share.NewMemoryStore())
	id, err := svc.Create(ctx, raw)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, string(raw), string(got))

	var decoded []domain.PlaceResult
	require.NoError(t, json.Unmarshal(got, &decoded))
	require.Equal(t, places, decoded)
}

func TestShareKeepsClientFieldsVerbatim(t *testing.T) {
	ctx := context.Background()
	svc := NewShareService(share.NewMemoryStore())
	submitted := json.RawMessage(`[{"name":"X","lat":"51.5","extra":"kept?","routes":[]}]`)

	id, err := svc.Create(ctx, submitted)
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, string(submitted), string(got))
}

func TestShareCreateRejectsNonArray(t *testing.T) {
	store := share.NewMemoryStore()
	svc := NewShareService(store)

	_, err := svc.Create(context.Background(), json.RawMessage(`{"name":"X"}`))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Zero(t, store.Len())
}

func TestShareCreateUsesFreshIDs(t *testing.T) {
	ctx := context.Background()
	store := share.NewMemoryStore()
	svc := NewShareService(store)

	a, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.Equal(t, 2, store.Len())

	got, err := svc.Get(ctx, a)
	require.NoError(t, err)
	require.Equal(t, "[]", string(got))
}

func TestShareSnapshotMetadata(t *testing.T) {
	ctx := context.Background()
	store := share.NewMemoryStore()
	svc := NewShareService(store)
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	svc.newID = func() string { return "fixed-id" }
	svc.now = func() time.Time { return fixed }

	id, err := svc.Create(ctx, json.RawMessage(`[{"name":"A"}]`))
	require.NoError(t, err)
	require.Equal(t, "fixed-id", id)

	snap, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.True(t, fixed.Equal(snap.CreatedAt))
	require.Equal(t, `[{"name":"A"}]`, string(snap.Places))

	_, err = svc.Create(ctx, nil)
	require.ErrorIs(t, err, share.ErrDuplicateID)
}

func TestShareGetUnknown(t *testing.T) {
	svc := NewShareService(share.NewMemoryStore())

	_, err := svc.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrShareLinkNotFound)

	_, err = svc.Get(context.Background(), " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
