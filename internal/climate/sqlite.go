package climate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS climatic_data (
	location  TEXT PRIMARY KEY,
	rain      REAL NOT NULL DEFAULT 0,
	snow      REAL NOT NULL,
	snow_rain REAL NOT NULL
)`

// SQLiteStore reads climate data from the climatic_data table of a loads
// database. The lookup timeout bounds every query.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenSQLite opens (or creates) the database at path and makes sure the
// climatic_data table exists.
func OpenSQLite(ctx context.Context, path string, timeout time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s := &SQLiteStore{db: db, timeout: timeout}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create climatic_data table: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Lookup returns the climate data of one location.
func (s *SQLiteStore) Lookup(ctx context.Context, siteID string) (Site, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	site := Site{ID: siteID}
	err := s.db.QueryRowContext(ctx,
		`SELECT rain, snow, snow_rain FROM climatic_data WHERE location = ?`, siteID,
	).Scan(&site.RainfallMM, &site.GroundSnowLoad, &site.AssociatedRainLoad)
	if errors.Is(err, sql.ErrNoRows) {
		return Site{}, notFound(siteID)
	}
	if err != nil {
		return Site{}, fmt.Errorf("failed to query climate data for %q: %w", siteID, err)
	}
	return site, nil
}

// Upsert inserts or replaces sites in a single transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, sites ...Site) error {
	for _, site := range sites {
		if err := site.Validate(); err != nil {
			return err
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO climatic_data (location, rain, snow, snow_rain) VALUES (?, ?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET
			rain = excluded.rain, snow = excluded.snow, snow_rain = excluded.snow_rain`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, site := range sites {
		if _, err := stmt.ExecContext(ctx, site.ID, site.RainfallMM, site.GroundSnowLoad, site.AssociatedRainLoad); err != nil {
			return fmt.Errorf("failed to store %q: %w", site.ID, err)
		}
	}
	return tx.Commit()
}

// List returns every stored site ordered by location.
func (s *SQLiteStore) List(ctx context.Context) ([]Site, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT location, rain, snow, snow_rain FROM climatic_data ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("failed to query climate data: %w", err)
	}
	defer rows.Close()

	var sites []Site
	for rows.Next() {
		var site Site
		if err := rows.Scan(&site.ID, &site.RainfallMM, &site.GroundSnowLoad, &site.AssociatedRainLoad); err != nil {
			return nil, fmt.Errorf("failed to scan climate row: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
