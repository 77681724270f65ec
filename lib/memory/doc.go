// Package memory provides the generic key/value substrate used by the caches and the ram store.
//
// A Memory maps normalized resource keys (see store.NormalizeKey) to values of any type.
// It is constructed with an emptiness predicate: updating a key with an empty value removes
// the key instead of storing the value, and empty supplier results are never stored.
//
// Get-or-create:
//
//	Content(key, supplier) first loads the key. On a miss the supplier runs without any lock
//	held and the result is published with LoadOrStore, so concurrent first accesses may invoke
//	their suppliers redundantly but always converge to exactly one stored value, which is
//	returned to every caller. Supplier errors are returned and nothing is stored.
//
// Knowledge:
//
//	IKnowledge tracks names independent of content. NewRamKnowledge keeps them in a concurrent
//	map, NewDeadKnowledge tracks nothing and accepts every operation as a no-op (useful when
//	key listing is not needed).
//
// Thread-safety:
//
//	Both types are backed by xsync.MapOf and safe for concurrent use.
//
// Usage Example:
//
//	mem := memory.NewBinary()
//	v, err := mem.Content("hive/comb/cell", func() ([]byte, error) {
//	    return load()
//	})
//	mem.Update("hive/comb/cell", nil) // removes the key
package memory
