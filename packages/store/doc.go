// Package store provides key-value configuration store adapters.
//
// It provides:
//   - the Store interface the merger commits through
//   - a map-backed Memory store for tests and dry runs
//   - a SQLite-backed store with JSON-encoded values
//   - file-backed defaults for append targets
package store
