package cache

import (
	"context"
	"os"
	"testing"
	"venue-finder-service/internal/adapters/repositories"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPostgresGeocodeCacheNilDB(t *testing.T) {
	c := NewPostgresGeocodeCache(nil)
	_, err := c.GetMany(context.Background(), []string{"London"})
	require.Error(t, err)
	require.Error(t, c.PutMany(context.Background(), map[string]domain.Coordinates{"London": {}}))
}

func TestPostgresGeocodeCache(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(ctx, conn))

	c := NewPostgresGeocodeCache(conn)
	london := "London " + uuid.NewString()
	oxford := "Oxford " + uuid.NewString()

	got, err := c.GetMany(ctx, []string{london, oxford})
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		london: {Lon: -0.1276, Lat: 51.5072},
		oxford: {Lon: -1.2577, Lat: 51.752},
	}))
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		oxford: {Lon: -1.25, Lat: 51.75},
	}))

	got, err = c.GetMany(ctx, []string{london, oxford, "unknown " + uuid.NewString()})
	require.NoError(t, err)
	require.Equal(t, map[string]domain.Coordinates{
		london: {Lon: -0.1276, Lat: 51.5072},
		oxford: {Lon: -1.25, Lat: 51.75},
	}, got)
}
