package lockmgr

import (
	"sync/atomic"
)

// Owner identifies the logical call chain holding a section. The zero value is no owner.
type Owner uint64

var lastOwner atomic.Uint64

// NewOwner creates a new unique owner.
//
// Thread-safety: This function is thread-safe since it uses atomic operations.
func NewOwner() Owner {
	return Owner(lastOwner.Add(1))
}
