package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/obs"
	"venue-finder-service/internal/ports"
)

// PostgresGeocodeCache stores resolved addresses in the geocode_cache table.
// Keys are expected to be normalized by the caller.
type PostgresGeocodeCache struct {
	DB *sql.DB
}

func NewPostgresGeocodeCache(db *sql.DB) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{DB: db}
}

// GetMany returns the cached subset of addresses. Missing keys are simply
// absent from the result.
func (c *PostgresGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocodeCache.GetMany")(&err)

	if c.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}
	if len(addresses) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	rows, err := c.DB.QueryContext(ctx, `
		SELECT address, lat, lng
		FROM geocode_cache
		WHERE address = ANY($1::text[])`,
		addresses,
	)
	if err != nil {
		return nil, fmt.Errorf("geocode cache lookup: %w", err)
	}
	defer rows.Close()

	found := make(map[string]domain.Coordinates, len(addresses))
	for rows.Next() {
		var (
			address  string
			lat, lng float64
		)
		if err := rows.Scan(&address, &lat, &lng); err != nil {
			return nil, fmt.Errorf("geocode cache lookup: scan: %w", err)
		}
		found[address] = domain.Coordinates{Lon: lng, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geocode cache lookup: rows: %w", err)
	}

	return found, nil
}

// PutMany upserts all entries in a single statement.
func (c *PostgresGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocodeCache.PutMany")(&err)

	if c.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	addresses := make([]string, 0, len(results))
	lats := make([]float64, 0, len(results))
	lngs := make([]float64, 0, len(results))
	for address, coords := range results {
		if address == "" {
			return errors.New("geocode cache store: empty address key")
		}
		addresses = append(addresses, address)
		lats = append(lats, coords.Lat)
		lngs = append(lngs, coords.Lon)
	}

	_, err = c.DB.ExecContext(ctx, `
		INSERT INTO geocode_cache (address, lat, lng)
		SELECT * FROM unnest($1::text[], $2::float8[], $3::float8[])
		ON CONFLICT (address) DO UPDATE
		SET lat = EXCLUDED.lat,
		    lng = EXCLUDED.lng,
		    resolved_at = now()`,
		addresses, lats, lngs,
	)
	if err != nil {
		return fmt.Errorf("geocode cache store %d entries: %w", len(addresses), err)
	}

	return nil
}

var _ ports.GeocodeCache = (*PostgresGeocodeCache)(nil)
