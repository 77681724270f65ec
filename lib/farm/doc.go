// Package farm implements the hierarchical object store: a Farm resolves Hives, a Hive holds
// Combs listed in its Catalog, and a Comb groups named Cells holding binary content or documents.
//
//	farm ─┬─ hive "users" ─┬─ _catalog        (hive level meta cell, catalog document)
//	      │                ├─ comb "alice" ─┬─ cell "avatar"   (binary)
//	      │                │                └─ cell "profile"  (document)
//	      │                └─ comb "bob"   ── ...
//	      └─ hive "orders" ── ...
//
// Every cell is addressed by its resource key "hive/comb/cell" (meta cells by "hive/cell"), which is
// also the key used by caches and the lock manager.
//
// Backends:
//
//   - NewFileFarm: one file per cell below a root directory (fstore)
//   - NewRamFarm: in-process maps, optionally shared between farms (rstore)
//   - NewSQLiteFarm: a single table of an embedded SQLite database (sqlstore)
//   - NewFarm: any store.IStore
//
// Decorators:
//
//	Decorating farms wrap any IFarm and decorate every cell it resolves, including the catalog
//	cell. They compose by construction order, e.g.
//
//	    f := farm.NewSyncFarm(farm.NewCachedFarm(fileFarm, cache.NewSimpleCache()), nil)
//
//   - NewCachedFarm routes all content through a shared cache.ICache (write-through). The cache
//     enforces that a key is used either as binary or as document (store.ErrUsageConflict).
//   - NewSyncFarm runs every cell operation inside the exclusive section of its resource key.
//     Modify holds the section for the whole read-modify-write. Atomically runs a function
//     with a cell bound to one owner, so sequences of operations (including catalog operations on
//     the catalog cell) are atomic and nested operations re-enter the section.
//
// Build composes backend, cache chain and synchronization from a common.FarmConfig.
//
// Resolution:
//
//	Hive.Combs(query) resolves identifiers with Catalog.List and creates one Comb per identifier
//	without reading any content. Hive.Comb(id) resolves an identifier directly. Hives are not
//	cached, every Farm.Hive call returns a fresh handle.
//
// Thread-safety:
//
//	All types are safe for concurrent use. Without NewSyncFarm only single key atomicity of the
//	backend is guaranteed, Modify and catalog mutations may then lose concurrent updates.
package farm
