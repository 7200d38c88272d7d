package store

import (
	"fmt"
	"strings"
)

// Store is the host-owned configuration key-value layer the merger writes
// into. Implementations must make SetMany atomic or best-effort; the merger
// only calls it once per run, after full validation.
type Store interface {
	Reset() error
	Get(key string) (any, bool, error)
	SetMany(values map[string]any) error
	Keys() ([]string, error)
	Close() error
}

// Error reports a failed store operation.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Open creates a store from a DSN. Supported forms:
//
//	memory:            ephemeral in-process store
//	sqlite:/path/db    SQLite-backed store
//	/path/db           shorthand for sqlite
func Open(dsn string) (Store, error) {
	switch {
	case dsn == "memory:" || dsn == "memory":
		return NewMemory(), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return OpenSQLite(strings.TrimPrefix(dsn, "sqlite:"))
	case dsn == "":
		return nil, fmt.Errorf("empty store DSN")
	default:
		return OpenSQLite(dsn)
	}
}
