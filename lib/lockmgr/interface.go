package lockmgr

import (
	"github.com/rcrowley/go-metrics"
)

// ILockManager provides per key exclusive sections. Sections are re-entrant for the same
// Owner: an owner holding a key may lock it again and must unlock it as often as it locked it.
// Different owners block each other on the same key, distinct keys never block each other.
type ILockManager interface {
	// Lock blocks until owner holds the section of key.
	// Return an error if the owner is invalid.
	Lock(key string, owner Owner) (err error)

	// Unlock releases one level of the section of key held by owner.
	// Return an error if owner does not hold the key.
	Unlock(key string, owner Owner) (err error)

	// Exclusive runs fn while owner holds the section of key and returns the error of fn.
	// A zero owner is replaced by a fresh one (a non re-entrant call).
	Exclusive(key string, owner Owner, fn func() error) (err error)

	// Metrics returns the registry with the timer "lockmgr.wait" and the counter "lockmgr.contended".
	Metrics() metrics.Registry
}
