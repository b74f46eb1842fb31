package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS listings (
	id             TEXT PRIMARY KEY,
	neighborhood   TEXT NOT NULL,
	title          TEXT NOT NULL DEFAULT '',
	price          INTEGER NOT NULL DEFAULT 0,
	usable_area    INTEGER NOT NULL DEFAULT 0,
	bedrooms       INTEGER NOT NULL DEFAULT 0,
	bathrooms      INTEGER NOT NULL DEFAULT 0,
	parking_spaces INTEGER NOT NULL DEFAULT 0,
	amenities      TEXT NOT NULL DEFAULT '[]',
	lat            REAL,
	lon            REAL,
	approx_lat     REAL,
	approx_lon     REAL,
	flooded        INTEGER,
	scraped_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_listings_neighborhood ON listings(neighborhood);
CREATE INDEX IF NOT EXISTS idx_listings_flooded ON listings(flooded);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertListings inserts or refreshes listings by ID, preserving any
// existing flood flag. Returns the number of rows written.
func (s *SQLiteStore) UpsertListings(ctx context.Context, listings []listing.Listing) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (
			id, neighborhood, title, price, usable_area, bedrooms, bathrooms,
			parking_spaces, amenities, lat, lon, approx_lat, approx_lon, scraped_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			neighborhood   = excluded.neighborhood,
			title          = excluded.title,
			price          = excluded.price,
			usable_area    = excluded.usable_area,
			bedrooms       = excluded.bedrooms,
			bathrooms      = excluded.bathrooms,
			parking_spaces = excluded.parking_spaces,
			amenities      = excluded.amenities,
			lat            = excluded.lat,
			lon            = excluded.lon,
			approx_lat     = excluded.approx_lat,
			approx_lon     = excluded.approx_lon,
			scraped_at     = excluded.scraped_at`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer stmt.Close() //nolint:errcheck

	written := 0
	for _, l := range listings {
		amenities, err := json.Marshal(l.Amenities)
		if err != nil {
			return written, eris.Wrapf(err, "sqlite: marshal amenities for %s", l.ID)
		}
		scrapedAt := l.ScrapedAt
		if scrapedAt.IsZero() {
			scrapedAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			l.ID, l.Neighborhood, l.Title, l.Price, l.UsableArea,
			l.Bedrooms, l.Bathrooms, l.ParkingSpaces, string(amenities),
			l.Lat, l.Lon, l.ApproxLat, l.ApproxLon, scrapedAt,
		); err != nil {
			return written, eris.Wrapf(err, "sqlite: upsert listing %s", l.ID)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, eris.Wrap(err, "sqlite: commit upsert")
	}
	return written, nil
}

// ListListings returns listings matching the filter, ordered by ID.
func (s *SQLiteStore) ListListings(ctx context.Context, filter Filter) ([]listing.Listing, error) {
	query := `
		SELECT id, neighborhood, title, price, usable_area, bedrooms, bathrooms,
		       parking_spaces, amenities, lat, lon, approx_lat, approx_lon,
		       flooded, scraped_at
		FROM listings`

	var conds []string
	var args []any
	if filter.Neighborhood != "" {
		conds = append(conds, "neighborhood = ?")
		args = append(args, filter.Neighborhood)
	}
	if filter.Flooded != nil {
		conds = append(conds, "flooded = ?")
		args = append(args, boolToInt(*filter.Flooded))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET " + strconv.Itoa(filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list listings")
	}
	defer rows.Close() //nolint:errcheck

	var listings []listing.Listing
	for rows.Next() {
		var l listing.Listing
		var amenities string
		var flooded *int64
		if err := rows.Scan(
			&l.ID, &l.Neighborhood, &l.Title, &l.Price, &l.UsableArea,
			&l.Bedrooms, &l.Bathrooms, &l.ParkingSpaces, &amenities,
			&l.Lat, &l.Lon, &l.ApproxLat, &l.ApproxLon,
			&flooded, &l.ScrapedAt,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan listing")
		}
		if err := json.Unmarshal([]byte(amenities), &l.Amenities); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal amenities for %s", l.ID)
		}
		if flooded != nil {
			f := *flooded != 0
			l.Flooded = &f
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate listings")
	}
	return listings, nil
}

// SetFlooded writes flood flags back to their listings. ids and flooded
// must align positionally.
func (s *SQLiteStore) SetFlooded(ctx context.Context, ids []string, flooded []bool) error {
	if len(ids) != len(flooded) {
		return eris.Errorf("sqlite: ids/flags length mismatch (%d vs %d)", len(ids), len(flooded))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin set flooded")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `UPDATE listings SET flooded = ? WHERE id = ?`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare set flooded")
	}
	defer stmt.Close() //nolint:errcheck

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, boolToInt(flooded[i]), id); err != nil {
			return eris.Wrapf(err, "sqlite: set flooded for %s", id)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit set flooded")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
