package farm

import (
	"github.com/ValentinKolb/dFarm/lib/catalog"
	"github.com/ValentinKolb/dFarm/lib/store"
)

// --------------------------------------------------------------------------
// Decorated Farms
// --------------------------------------------------------------------------

// cellWrapper decorates every cell a decorated farm resolves
type cellWrapper func(origin ICell) ICell

// wrappedFarm resolves hives, combs and cells through an origin farm and decorates every cell.
// The catalog of a wrapped hive is built over the decorated meta cell, so catalog reads and
// writes pass the same decoration as any other content.
type wrappedFarm struct {
	origin IFarm
	wrap   cellWrapper
}

func (f *wrappedFarm) Hive(name string) (IHive, error) {
	h, err := f.origin.Hive(name)
	if err != nil {
		return nil, err
	}
	return &wrappedHive{origin: h, wrap: f.wrap}, nil
}

func (f *wrappedFarm) Hives() ([]string, error) {
	return f.origin.Hives()
}

func (f *wrappedFarm) Close() error {
	return f.origin.Close()
}

type wrappedHive struct {
	origin IHive
	wrap   cellWrapper
}

func (h *wrappedHive) Name() string {
	return h.origin.Name()
}

func (h *wrappedHive) Catalog() *catalog.Catalog {
	// Meta only fails for invalid names
	meta, _ := h.Meta(store.CatalogCell)
	return catalog.New(meta)
}

func (h *wrappedHive) Combs(query string) ([]IComb, error) {
	return resolveCombs(h, query)
}

func (h *wrappedHive) Comb(id string) (IComb, error) {
	c, err := h.origin.Comb(id)
	if err != nil {
		return nil, err
	}
	return &wrappedComb{origin: c, wrap: h.wrap}, nil
}

func (h *wrappedHive) Meta(name string) (ICell, error) {
	c, err := h.origin.Meta(name)
	if err != nil {
		return nil, err
	}
	return h.wrap(c), nil
}

type wrappedComb struct {
	origin IComb
	wrap   cellWrapper
}

func (c *wrappedComb) ID() string {
	return c.origin.ID()
}

func (c *wrappedComb) Cell(name string) (ICell, error) {
	cell, err := c.origin.Cell(name)
	if err != nil {
		return nil, err
	}
	return c.wrap(cell), nil
}

func (c *wrappedComb) Cells() ([]string, error) {
	return c.origin.Cells()
}
