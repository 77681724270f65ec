package farm

import (
	"github.com/ValentinKolb/dFarm/lib/cache"
	"github.com/ValentinKolb/dFarm/lib/doc"
)

// NewCachedFarm wraps origin so that every cell, including the catalog cells, is read and
// written through c, keyed by the resource key. The cache is shared by all hives of the farm.
//
// Updates are written through: the cache is updated first (which detects usage conflicts before
// the origin is touched), then the origin. If the origin fails, the key is evicted again.
func NewCachedFarm(origin IFarm, c cache.ICache) IFarm {
	return &wrappedFarm{
		origin: origin,
		wrap: func(cell ICell) ICell {
			return &cachedCell{origin: cell, cache: c}
		},
	}
}

type cachedCell struct {
	origin ICell
	cache  cache.ICache
}

func (c *cachedCell) Key() string  { return c.origin.Key() }
func (c *cachedCell) Name() string { return c.origin.Name() }

func (c *cachedCell) Content() ([]byte, error) {
	return c.cache.Binary(c.Key(), c.origin.Content)
}

func (c *cachedCell) Update(value []byte) error {
	if err := c.cache.Update(c.Key(), value); err != nil {
		return err
	}
	if err := c.origin.Update(value); err != nil {
		if evictErr := c.cache.Update(c.Key(), nil); evictErr != nil {
			log.Warningf("%s: can't evict after failed update: %v", c.Key(), evictErr)
		}
		return err
	}
	return nil
}

func (c *cachedCell) Document() (*doc.Document, error) {
	d, err := c.cache.Document(c.Key(), c.origin.Document)
	if err != nil {
		return nil, err
	}
	// cached documents are shared, hand out a copy
	return d.Clone(), nil
}

func (c *cachedCell) UpdateDocument(d *doc.Document) error {
	d = d.Clone()
	if err := c.cache.UpdateDocument(c.Key(), d); err != nil {
		return err
	}
	if err := c.origin.UpdateDocument(d); err != nil {
		if evictErr := c.cache.UpdateDocument(c.Key(), doc.New()); evictErr != nil {
			log.Warningf("%s: can't evict after failed update: %v", c.Key(), evictErr)
		}
		return err
	}
	return nil
}

func (c *cachedCell) Modify(directives ...doc.Directive) error {
	return modify(c, directives)
}

func (c *cachedCell) Exists() (bool, error) {
	if c.cache.Has(c.Key()) {
		return true, nil
	}
	return c.origin.Exists()
}
