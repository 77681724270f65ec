package cache

import (
	"fmt"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
	"path"
)

type blacklistCache struct {
	patterns []string
	origin   ICache
}

// NewBlacklist creates a cache that bypasses caching for keys matching one of the glob patterns
// (syntax of path.Match, applied to the normalized key). Reads of matching keys always invoke the supplier
// and updates of matching keys do nothing. Other keys are delegated to origin unchanged.
func NewBlacklist(origin ICache, patterns ...string) (ICache, error) {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = store.NormalizeKey(p)
		if _, err := path.Match(p, ""); err != nil {
			return nil, store.Errorf(store.RetCConfigError, "invalid blacklist pattern %q: %v", p, err)
		}
		normalized = append(normalized, p)
	}
	return &blacklistCache{
		patterns: normalized,
		origin:   origin,
	}, nil
}

// bypass reports whether key matches any pattern.
func (c *blacklistCache) bypass(key string) bool {
	key = store.NormalizeKey(key)
	for _, p := range c.patterns {
		// patterns are validated in NewBlacklist
		if ok, _ := path.Match(p, key); ok {
			return true
		}
	}
	return false
}

// String lists the patterns, used when printing the cache chain.
func (c *blacklistCache) String() string {
	return fmt.Sprintf("blacklist%v", c.patterns)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache/interface.go)
// --------------------------------------------------------------------------

func (c *blacklistCache) Binary(key string, supplier func() ([]byte, error)) ([]byte, error) {
	if c.bypass(key) {
		record(policyBlacklist, resultBypass)
		return supplier()
	}
	return c.origin.Binary(key, supplier)
}

func (c *blacklistCache) Document(key string, supplier func() (*doc.Document, error)) (*doc.Document, error) {
	if c.bypass(key) {
		record(policyBlacklist, resultBypass)
		return supplier()
	}
	return c.origin.Document(key, supplier)
}

func (c *blacklistCache) Update(key string, value []byte) error {
	if c.bypass(key) {
		return nil
	}
	return c.origin.Update(key, value)
}

func (c *blacklistCache) UpdateDocument(key string, d *doc.Document) error {
	if c.bypass(key) {
		return nil
	}
	return c.origin.UpdateDocument(key, d)
}

func (c *blacklistCache) Has(key string) bool {
	if c.bypass(key) {
		return false
	}
	return c.origin.Has(key)
}
