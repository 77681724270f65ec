// Package store provides the storage boundary of the farm: a small interface every
// backend implements, the resource key format and unified error handling.
//
// The package focuses on:
//   - A unified interface (IStore) for binary and document content across backends
//   - Resource keys that identify content system-wide
//   - A structured error type with return codes
//
// Key Components:
//
//   - IStore Interface: Binary, Document, Update, UpdateDocument, Has and Keys.
//     Every backend (and every decorator that wants to participate in a storage chain)
//     implements it, allowing applications to switch between backends without code
//     changes.
//
//   - Resource Keys: "hive/comb/cell" paths built with Key and normalized with
//     NormalizeKey. The same key is used as cache key and lock key.
//
//   - Error System: Error carries a RetCode. errors.Is matches by code, so callers
//     can test for ErrUsageConflict, ErrConfig or ErrInvalid without type assertions.
//
// Implementations:
//
//   - File Store (fstore): one file per cell below a root directory, created lazily.
//     Available in "github.com/ValentinKolb/dFarm/lib/store/fstore".
//
//   - RAM Store (rstore): nested in-process maps. Multiple farms can share one
//     rstore.Store. Available in "github.com/ValentinKolb/dFarm/lib/store/rstore".
//
//   - SQLite Store (sqlstore): a single table in an embedded SQLite database.
//     Available in "github.com/ValentinKolb/dFarm/lib/store/sqlstore".
//
// The testing package (github.com/ValentinKolb/dFarm/lib/store/testing) provides a
// shared test suite all implementations run.
package store
