// Package lockmgr implements per key exclusive sections for the synchronized farm.
// Operations on the same resource key are totally ordered, while operations on distinct
// keys never wait for each other.
//
// Core Functionality:
//   - Lock and Unlock of a key on behalf of an Owner
//   - Re-entrant acquisition of a key by the owner already holding it
//   - Exclusive, running a function inside a section
//
// Implementation Approach:
//
//	Sections live in an xsync.MapOf keyed by the normalized resource key. A section is created
//	by the first Lock of a key and carries a reference count of all owners holding or waiting
//	for it. Both creation and reference counting happen inside MapOf.Compute, which makes them
//	atomic with respect to the removal of the section once the last reference is released.
//	So the map only contains keys that are in use and a removed section is never handed out.
//
//	- Owners: Go has no goroutine identity, so re-entrancy is bound to an explicit Owner
//	  created with NewOwner. A logical call chain (e.g. a read-modify-write of a cell) uses one
//	  owner for all of its nested operations.
//
//	- Re-entrancy: a section records its owner and a depth. The holder may lock again (depth+1),
//	  other owners wait on a sync.Cond until the depth drops to zero.
//
// Metrics:
//
//	Every manager carries its own go-metrics registry with the timer "lockmgr.wait" (time spent
//	in Lock) and the counter "lockmgr.contended" (Locks that had to wait for another owner).
//
// Thread Safety:
//
//	All methods are safe for concurrent use. Lock scope never spans more than one key: callers
//	must not lock a different key while holding one.
//
// Usage Example:
//
//	lm := lockmgr.NewLockManager()
//	owner := lockmgr.NewOwner()
//
//	err := lm.Exclusive("hive/comb/cell", owner, func() error {
//	    // nested calls with the same owner re-enter the section
//	    return lm.Exclusive("hive/comb/cell", owner, update)
//	})
package lockmgr
