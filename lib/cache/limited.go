package cache

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
)

type limitedCache struct {
	max    int64
	origin ICache
}

// NewLimited creates a cache that only passes content of at most maxBytes to origin.
// Larger content is never cached: reads always invoke the supplier, updates evict the key from origin.
// Documents are measured with doc.Document.Size.
func NewLimited(maxBytes int64, origin ICache) ICache {
	return &limitedCache{
		max:    maxBytes,
		origin: origin,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache/interface.go)
// --------------------------------------------------------------------------

func (c *limitedCache) Binary(key string, supplier func() ([]byte, error)) ([]byte, error) {
	var oversized []byte
	value, err := c.origin.Binary(key, func() ([]byte, error) {
		v, err := supplier()
		if err != nil {
			return nil, err
		}
		if int64(len(v)) > c.max {
			// empty content is never stored by the origin
			oversized = v
			return nil, nil
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if oversized != nil {
		record(policyLimited, resultOversized)
		return oversized, nil
	}
	return value, nil
}

func (c *limitedCache) Document(key string, supplier func() (*doc.Document, error)) (*doc.Document, error) {
	var oversized *doc.Document
	value, err := c.origin.Document(key, func() (*doc.Document, error) {
		d, err := supplier()
		if err != nil {
			return nil, err
		}
		if d.Size() > c.max {
			oversized = d
			return doc.New(), nil
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	if oversized != nil {
		record(policyLimited, resultOversized)
		return oversized, nil
	}
	return value, nil
}

func (c *limitedCache) Update(key string, value []byte) error {
	if int64(len(value)) > c.max {
		record(policyLimited, resultOversized)
		log.Debugf("evicting %s: %d bytes exceed the limit of %d", store.NormalizeKey(key), len(value), c.max)
		return c.origin.Update(key, nil)
	}
	return c.origin.Update(key, value)
}

func (c *limitedCache) UpdateDocument(key string, d *doc.Document) error {
	if size := d.Size(); size > c.max {
		record(policyLimited, resultOversized)
		log.Debugf("evicting %s: document of %d bytes exceeds the limit of %d", store.NormalizeKey(key), size, c.max)
		return c.origin.UpdateDocument(key, doc.New())
	}
	return c.origin.UpdateDocument(key, d)
}

func (c *limitedCache) Has(key string) bool {
	return c.origin.Has(key)
}
