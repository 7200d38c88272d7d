package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores configuration in a single key-value table. Values are
// JSON-encoded so sequences and mappings round-trip through Get with their
// kinds intact.
type SQLite struct {
	db *sql.DB
}

const createTable = `CREATE TABLE IF NOT EXISTS config (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenSQLite opens (creating if necessary) a SQLite-backed store at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite store path")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	if _, err := db.Exec(createTable); err != nil {
		_ = db.Close()
		return nil, &Error{Op: "open", Err: err}
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM config`); err != nil {
		return &Error{Op: "reset", Err: err}
	}
	return nil
}

func (s *SQLite) Get(key string) (any, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM config WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &Error{Op: "get", Key: key, Err: err}
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, &Error{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

func (s *SQLite) SetMany(values map[string]any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &Error{Op: "set", Err: err}
	}
	stmt, err := tx.Prepare(`INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		_ = tx.Rollback()
		return &Error{Op: "set", Err: err}
	}
	defer stmt.Close()

	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			_ = tx.Rollback()
			return &Error{Op: "set", Key: key, Err: err}
		}
		if _, err := stmt.Exec(key, string(raw)); err != nil {
			_ = tx.Rollback()
			return &Error{Op: "set", Key: key, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &Error{Op: "set", Err: err}
	}
	return nil
}

func (s *SQLite) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM config ORDER BY key`)
	if err != nil {
		return nil, &Error{Op: "keys", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &Error{Op: "keys", Err: err}
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "keys", Err: err}
	}
	return keys, nil
}

func (s *SQLite) Close() error { return s.db.Close() }
