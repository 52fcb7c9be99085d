// Package store provides the storage layer behind the dev API server.
//
// The [Store] interface abstracts record CRUD so the server can run on
// either backend:
//   - BoltDB (default): an embedded key-value store, one bucket keyed by
//     big-endian sequence numbers so iteration follows insertion order
//   - SQLite: the pure Go modernc.org/sqlite driver, one table with an
//     autoincrement primary key
//
// Use [Open] to pick a backend by driver name:
//
//	st, err := store.Open(store.DriverBolt, dataDir)
//	records, err := st.List()
//
// Ids are assigned by the store and are always integers.
package store
