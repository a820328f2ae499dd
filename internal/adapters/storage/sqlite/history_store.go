// Package sqlite keeps the deliberation history in a local SQLite
// database, one row per record with the payload stored as JSON.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS deliberations (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	payload    TEXT NOT NULL
)`

// createdAtFormat is fixed-width (nanoseconds always padded to nine
// digits), so the TEXT column sorts chronologically. RFC3339Nano trims
// trailing zeros and would break lexicographic ordering within a second.
const createdAtFormat = "2006-01-02T15:04:05.000000000Z07:00"

type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(path string) (*HistoryStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite history path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history database ping failed: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) Upsert(d *domain.Deliberation) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding deliberation: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO deliberations (id, created_at, payload) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET created_at = excluded.created_at, payload = excluded.payload`,
		string(d.ID), d.CreatedAt.UTC().Format(createdAtFormat), string(payload),
	)
	if err != nil {
		return fmt.Errorf("upserting deliberation: %w", err)
	}
	return nil
}

func (s *HistoryStore) Get(id domain.DeliberationID) (*domain.Deliberation, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM deliberations WHERE id = ?`, string(id),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading deliberation: %w", err)
	}

	return decode(payload)
}

func (s *HistoryStore) List() ([]*domain.Deliberation, error) {
	// Fixed-width timestamps sort chronologically, so ordering happens in SQL.
	rows, err := s.db.Query(`SELECT payload FROM deliberations ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing deliberations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Deliberation
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning deliberation row: %w", err)
		}
		d, err := decode(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliberation rows: %w", err)
	}

	return out, nil
}

func decode(payload string) (*domain.Deliberation, error) {
	var d domain.Deliberation
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return nil, fmt.Errorf("decoding deliberation: %w", err)
	}
	return &d, nil
}
