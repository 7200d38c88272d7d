// Package merge computes the effective configuration from an ordered list
// of parsed documents and commits it to a key-value store.
//
// The merge is two-phase: the full effective config is built and validated
// in memory, then the write set (keys whose value changed) is committed in
// one SetMany call. A failing document therefore never leaves the store
// partially updated.
package merge
