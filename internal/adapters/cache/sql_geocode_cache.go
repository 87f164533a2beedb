package cache

import (
	"context"
	"database/sql"
	"delivery-fee-service/internal/adapters/store"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// SQLGeocodeCache is a SQL-backed cache mapping addresses to coordinates.
// Address keys are normalized with NormalizeAddress on both read and write.
type SQLGeocodeCache struct {
	DB      *sql.DB
	Dialect store.Dialect
}

func NewSQLGeocodeCache(db *sql.DB, dialect store.Dialect) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, Dialect: dialect}
}

// Fetch cached coordinates for the given addresses.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	if len(addresses) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]any, 0, len(addresses))
	ph := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = NormalizeAddress(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
		ph = append(ph, s.Dialect.Placeholder(len(uniq)))
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
		address,
		lat,
		lng
	FROM geocode_cache
	WHERE address IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, uniq...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var addr string
		var lat, lng float64
		if err := rows.Scan(&addr, &lat, &lng); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = domain.Coordinates{Lat: lat, Lng: lng}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Get returns the cached coordinates of a single address.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	hits, err := s.GetMany(ctx, []string{address})
	if err != nil {
		return domain.Coordinates{}, false, err
	}
	c, ok := hits[NormalizeAddress(address)]
	return c, ok, nil
}

// ErrGeocodeMiss is returned by Geocode for addresses not in the cache.
var ErrGeocodeMiss = errors.New("address not in geocode cache")

// Geocode serves lookups from the cache alone, for running without a mapping API.
func (s *SQLGeocodeCache) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok, err := s.Get(ctx, address)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode from cache: %w", err)
	}
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode from cache %q: %w", address, ErrGeocodeMiss)
	}
	return c, nil
}

// Store address -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO geocode_cache (address, lat, lng)
	VALUES (%s, %s, %s)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`, s.Dialect.Placeholder(1), s.Dialect.Placeholder(2), s.Dialect.Placeholder(3)))
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		key := NormalizeAddress(addr)
		if key == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, key, c.Lat, c.Lng); err != nil {
			return fmt.Errorf("insert geocode cache address=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
