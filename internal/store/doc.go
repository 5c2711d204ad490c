// Package store implements durable key-value persistence for client state.
//
// The [Store] interface is the only persistence surface the rest of the
// application sees: string keys to structured-text (JSON) values. Absence of
// a key is a valid empty state, not an error. Writes are synchronous
// write-through from the caller's perspective.
//
// Implementations:
//   - [SQLiteStore] : durable storage backed by a sqlite kv table
//   - [MemoryStore] : map-backed storage for tests and ephemeral runs
package store
