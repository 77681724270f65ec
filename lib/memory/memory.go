package memory

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
)

// --------------------------------------------------------------------------
// Memory
// --------------------------------------------------------------------------

// Memory is a concurrent key/value substrate. Values considered empty by the
// predicate given to New are never stored: updating a key with an empty value removes it.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory[T any] struct {
	data  *xsync.MapOf[string, T]
	empty func(T) bool
}

// New creates a Memory using empty to decide which values remove a key.
func New[T any](empty func(T) bool) *Memory[T] {
	return &Memory[T]{
		data:  xsync.NewMapOf[string, T](),
		empty: empty,
	}
}

// NewBinary creates a Memory for byte payloads, zero length payloads are empty.
func NewBinary() *Memory[[]byte] {
	return New(func(b []byte) bool { return len(b) == 0 })
}

// NewDocuments creates a Memory for documents, documents without a root are empty.
func NewDocuments() *Memory[*doc.Document] {
	return New(func(d *doc.Document) bool { return d.IsEmpty() })
}

// Knows reports whether a value is stored under key.
func (m *Memory[T]) Knows(key string) bool {
	_, ok := m.data.Load(store.NormalizeKey(key))
	return ok
}

// Knowledge returns a sorted snapshot of all stored keys.
func (m *Memory[T]) Knowledge() []string {
	keys := make([]string, 0, m.data.Size())
	m.data.Range(func(key string, _ T) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	return keys
}

// Content returns the value stored under key. On a miss the supplier is invoked
// (without holding any lock) and its result stored, unless it is empty or the supplier fails.
// Concurrent first accesses may all run their supplier, but only one result is kept and returned to every caller.
func (m *Memory[T]) Content(key string, supplier func() (T, error)) (T, error) {
	key = store.NormalizeKey(key)
	if v, ok := m.data.Load(key); ok {
		return v, nil
	}

	v, err := supplier()
	if err != nil {
		var zero T
		return zero, err
	}
	if m.empty(v) {
		return v, nil
	}

	actual, _ := m.data.LoadOrStore(key, v)
	return actual, nil
}

// Update replaces the value stored under key, or removes the key if value is empty.
func (m *Memory[T]) Update(key string, value T) {
	key = store.NormalizeKey(key)
	if m.empty(value) {
		m.data.Delete(key)
		return
	}
	m.data.Store(key, value)
}

// Forget removes key from the memory.
func (m *Memory[T]) Forget(key string) {
	m.data.Delete(store.NormalizeKey(key))
}

// Size returns the number of stored keys.
func (m *Memory[T]) Size() int {
	return m.data.Size()
}
