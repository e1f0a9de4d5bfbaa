package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	perrors "github.com/zhubert/parley/internal/errors"
)

// SQLite persists the snapshot blob in a single-row SQLite table.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (or creates) the database at path and ensures the
// snapshot table exists.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, perrors.StorageOpenFailed(path, fmt.Errorf("open sqlite db: %w", err))
	}

	// A CHECK on id pins the table to exactly one row; Save upserts it.
	const schema = `CREATE TABLE IF NOT EXISTS snapshot (
		id   INTEGER PRIMARY KEY CHECK (id = 1),
		data BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, perrors.StorageOpenFailed(path, fmt.Errorf("create snapshot table: %w", err))
	}

	return &SQLite{db: db, path: path}, nil
}

// Path returns the backing database path.
func (s *SQLite) Path() string {
	return s.path
}

// Load reads the persisted blob, or returns (nil, nil) when the snapshot
// row has never been written.
func (s *SQLite) Load() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.StorageOpenFailed(s.path, fmt.Errorf("read snapshot: %w", err))
	}
	return data, nil
}

// Save upserts the single snapshot row.
func (s *SQLite) Save(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshot (id, data) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		data,
	)
	if err != nil {
		return perrors.StorageSaveFailed(s.path, fmt.Errorf("write snapshot: %w", err))
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
