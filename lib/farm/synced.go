package farm

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/lockmgr"
)

// NewSyncFarm wraps origin so that all operations on the same resource key are mutually exclusive,
// while operations on distinct keys run concurrently. A nil lock manager creates a private one.
// Sync farms sharing one lock manager are synchronized with each other.
func NewSyncFarm(origin IFarm, lm lockmgr.ILockManager) IFarm {
	if lm == nil {
		lm = lockmgr.NewLockManager()
	}
	return &wrappedFarm{
		origin: origin,
		wrap: func(cell ICell) ICell {
			return &syncCell{origin: cell, lm: lm}
		},
	}
}

// syncCell runs every operation inside the exclusive section of its key. A zero owner
// makes every operation acquire the section on its own, a cell bound by Atomically re-enters it.
type syncCell struct {
	origin ICell
	lm     lockmgr.ILockManager
	owner  lockmgr.Owner
}

func (c *syncCell) exclusive(fn func() error) error {
	return c.lm.Exclusive(c.Key(), c.owner, fn)
}

func (c *syncCell) Key() string  { return c.origin.Key() }
func (c *syncCell) Name() string { return c.origin.Name() }

func (c *syncCell) Content() (value []byte, err error) {
	err = c.exclusive(func() error {
		value, err = c.origin.Content()
		return err
	})
	return value, err
}

func (c *syncCell) Update(value []byte) error {
	return c.exclusive(func() error {
		return c.origin.Update(value)
	})
}

func (c *syncCell) Document() (d *doc.Document, err error) {
	err = c.exclusive(func() error {
		d, err = c.origin.Document()
		return err
	})
	return d, err
}

func (c *syncCell) UpdateDocument(d *doc.Document) error {
	return c.exclusive(func() error {
		return c.origin.UpdateDocument(d)
	})
}

// Modify holds the section for the whole read-modify-write.
func (c *syncCell) Modify(directives ...doc.Directive) error {
	return c.exclusive(func() error {
		return c.origin.Modify(directives...)
	})
}

func (c *syncCell) Exists() (ok bool, err error) {
	err = c.exclusive(func() error {
		ok, err = c.origin.Exists()
		return err
	})
	return ok, err
}

// Atomically runs fn inside the exclusive section of cell. The cell passed to fn is bound to the
// section's owner, so its operations (and those of anything built on it, e.g. a catalog.Catalog)
// re-enter the section instead of blocking.
//
// Cells of farms without synchronization are passed to fn unchanged, without any guarantee.
func Atomically(cell ICell, fn func(c ICell) error) error {
	sc, ok := cell.(*syncCell)
	if !ok {
		return fn(cell)
	}
	owner := sc.owner
	if owner == 0 {
		owner = lockmgr.NewOwner()
	}
	bound := &syncCell{origin: sc.origin, lm: sc.lm, owner: owner}
	return sc.lm.Exclusive(sc.Key(), owner, func() error {
		return fn(bound)
	})
}
