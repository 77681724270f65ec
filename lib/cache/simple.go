package cache

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/memory"
	"github.com/ValentinKolb/dFarm/lib/store"
)

type simpleCache struct {
	bins *memory.Memory[[]byte]
	docs *memory.Memory[*doc.Document]
}

// NewSimple creates a cache that stores every non empty content in the given memories,
// one per content kind. Memories may be shared between caches.
func NewSimple(bins *memory.Memory[[]byte], docs *memory.Memory[*doc.Document]) ICache {
	return &simpleCache{
		bins: bins,
		docs: docs,
	}
}

// NewSimpleCache creates a simple cache with private memories.
func NewSimpleCache() ICache {
	return NewSimple(memory.NewBinary(), memory.NewDocuments())
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache/interface.go)
// --------------------------------------------------------------------------

// Thread-safety: the kind is checked before and after the memory access, so a racing
// writer of the other kind is detected by at least one of the two operations.
func (c *simpleCache) Binary(key string, supplier func() ([]byte, error)) ([]byte, error) {
	key = store.NormalizeKey(key)
	if c.docs.Knows(key) {
		return nil, usageConflict(key, "binary", "document")
	}

	missed := false
	value, err := c.bins.Content(key, func() ([]byte, error) {
		missed = true
		return supplier()
	})
	if err != nil {
		return nil, err
	}
	if c.docs.Knows(key) {
		return nil, usageConflict(key, "binary", "document")
	}

	record(policySimple, hitOrMiss(missed))
	return value, nil
}

func (c *simpleCache) Document(key string, supplier func() (*doc.Document, error)) (*doc.Document, error) {
	key = store.NormalizeKey(key)
	if c.bins.Knows(key) {
		return nil, usageConflict(key, "document", "binary")
	}

	missed := false
	value, err := c.docs.Content(key, func() (*doc.Document, error) {
		missed = true
		return supplier()
	})
	if err != nil {
		return nil, err
	}
	if c.bins.Knows(key) {
		return nil, usageConflict(key, "document", "binary")
	}

	record(policySimple, hitOrMiss(missed))
	return value, nil
}

func (c *simpleCache) Update(key string, value []byte) error {
	key = store.NormalizeKey(key)
	if c.docs.Knows(key) {
		return usageConflict(key, "binary", "document")
	}
	c.bins.Update(key, value)
	return nil
}

func (c *simpleCache) UpdateDocument(key string, d *doc.Document) error {
	key = store.NormalizeKey(key)
	if c.bins.Knows(key) {
		return usageConflict(key, "document", "binary")
	}
	c.docs.Update(key, d)
	return nil
}

func (c *simpleCache) Has(key string) bool {
	return c.bins.Knows(key) || c.docs.Knows(key)
}
