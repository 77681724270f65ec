// Package rstore provides an in-memory implementation of the store.IStore interface.
//
// Content is kept in a Store: a concurrent map from hive name to a concurrent map from cell key
// (comb/cell below the hive) to the cell content. Binary payloads and documents are copied on
// every read and write, so callers never share state with the store.
//
// Shared state:
//
//	A Store is explicit, caller owned state. Every NewRamStore(nil) creates a private Store,
//	passing the same Store to several stores lets multiple farms share their data:
//
//	    shared := rstore.NewStore(nil)
//	    a := farm.NewRamFarm(shared)
//	    b := farm.NewRamFarm(shared) // sees everything written through a
//
// Key listing:
//
//	Keys is answered from the memory.IKnowledge given to NewStore, which records every stored key.
//	Stores that never need listings can pass memory.NewDeadKnowledge() to skip the bookkeeping.
//
// Thread-safety:
//
//	All operations are safe for concurrent use (xsync.MapOf). Operations on a single key are atomic,
//	there is no atomicity across keys.
package rstore
