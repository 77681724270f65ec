// Package sqlstore provides an implementation of the store.IStore interface on top of an
// embedded SQLite database (zombiezen.com/go/sqlite, no cgo).
//
// All cells live in a single table:
//
//	cells(key TEXT PRIMARY KEY, kind INTEGER, data BLOB)
//
// The key is the normalized resource key, kind records whether the cell holds binary content or
// a document, and documents are encoded with the configured serializer (cbor by default).
// Reading a cell as the other kind fails with store.ErrUsageConflict.
//
// Connections come from a sqlitex.Pool. Every connection is prepared once with WAL journaling
// and the schema, so a database file can be opened by several stores (and processes) on the same host.
//
// Thread-safety:
//
//	All methods are safe for concurrent use. Every operation is a single statement and therefore atomic.
package sqlstore
