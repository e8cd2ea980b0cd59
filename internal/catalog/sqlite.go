package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS load_catalog (
	id       TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	load     REAL NOT NULL,
	unit     TEXT NOT NULL
)`

// SQLiteStore keeps the catalog in the load_catalog table of a loads
// database, next to the climate data.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenSQLite opens (or creates) the database at path and makes sure the
// load_catalog table exists.
func OpenSQLite(ctx context.Context, path string, timeout time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s := &SQLiteStore{db: db, timeout: timeout}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create load_catalog table: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Lookup returns one catalog entry.
func (s *SQLiteStore) Lookup(ctx context.Context, id string) (Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e := Entry{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT category, load, unit FROM load_catalog WHERE id = ?`, id,
	).Scan(&e.Category, &e.Load, &e.Unit)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, notFound(id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query catalog entry %q: %w", id, err)
	}
	return e, nil
}

// Upsert inserts or replaces entries in a single transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, entries ...Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
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

	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO load_catalog (id, category, load, unit) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				category = excluded.category, load = excluded.load, unit = excluded.unit`,
			e.ID, e.Category, e.Load, e.Unit)
		if err != nil {
			return fmt.Errorf("failed to store %q: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// List returns the entries of one category ordered by id. An empty
// category lists everything.
func (s *SQLiteStore) List(ctx context.Context, category string) ([]Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, load, unit FROM load_catalog
		WHERE ? = '' OR category = ?
		ORDER BY id`, category, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query load catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Category, &e.Load, &e.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
