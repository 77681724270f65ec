package farm

import (
	"github.com/ValentinKolb/dFarm/lib/catalog"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"io"
)

var log = logger.GetLogger("farm")

// --------------------------------------------------------------------------
// Farm
// --------------------------------------------------------------------------

type farmImpl struct {
	store store.IStore
}

// NewFarm creates a farm storing all content in s. If s implements io.Closer it is closed by Close.
func NewFarm(s store.IStore) IFarm {
	return &farmImpl{store: s}
}

func (f *farmImpl) Hive(name string) (IHive, error) {
	if err := store.ValidateName("hive", name); err != nil {
		return nil, err
	}
	return &hiveImpl{store: f.store, name: name}, nil
}

func (f *farmImpl) Hives() ([]string, error) {
	return f.store.Keys("")
}

func (f *farmImpl) Close() error {
	if c, ok := f.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Hive
// --------------------------------------------------------------------------

type hiveImpl struct {
	store store.IStore
	name  string
}

func (h *hiveImpl) Name() string {
	return h.name
}

func (h *hiveImpl) Catalog() *catalog.Catalog {
	return catalog.New(h.meta(store.CatalogCell))
}

func (h *hiveImpl) Combs(query string) ([]IComb, error) {
	return resolveCombs(h, query)
}

func (h *hiveImpl) Comb(id string) (IComb, error) {
	if err := catalog.ValidateID(id); err != nil {
		return nil, err
	}
	return &combImpl{store: h.store, hive: h.name, id: id}, nil
}

func (h *hiveImpl) Meta(name string) (ICell, error) {
	if err := store.ValidateMetaName(name); err != nil {
		return nil, err
	}
	return h.meta(name), nil
}

func (h *hiveImpl) meta(name string) *cellImpl {
	return &cellImpl{store: h.store, key: store.Key(h.name, "", name), name: name}
}

// resolveCombs lists the identifiers matching query in the catalog of h and resolves each with h.Comb.
// Decorated hives use it with themselves, so catalog and combs are both decorated.
func resolveCombs(h IHive, query string) ([]IComb, error) {
	ids, err := h.Catalog().List(query)
	if err != nil {
		return nil, err
	}
	combs := make([]IComb, 0, len(ids))
	for _, id := range ids {
		c, err := h.Comb(id)
		if err != nil {
			return nil, err
		}
		combs = append(combs, c)
	}
	return combs, nil
}

// --------------------------------------------------------------------------
// Comb
// --------------------------------------------------------------------------

type combImpl struct {
	store store.IStore
	hive  string
	id    string
}

func (c *combImpl) ID() string {
	return c.id
}

func (c *combImpl) Cell(name string) (ICell, error) {
	if err := store.ValidateName("cell", name); err != nil {
		return nil, err
	}
	return &cellImpl{store: c.store, key: store.Key(c.hive, c.id, name), name: name}, nil
}

func (c *combImpl) Cells() ([]string, error) {
	return c.store.Keys(store.Key(c.hive, c.id, ""))
}

// --------------------------------------------------------------------------
// Cell
// --------------------------------------------------------------------------

type cellImpl struct {
	store store.IStore
	key   string
	name  string
}

func (c *cellImpl) Key() string  { return c.key }
func (c *cellImpl) Name() string { return c.name }

func (c *cellImpl) Content() ([]byte, error) {
	return c.store.Binary(c.key)
}

func (c *cellImpl) Update(value []byte) error {
	return c.store.Update(c.key, value)
}

func (c *cellImpl) Document() (*doc.Document, error) {
	return c.store.Document(c.key)
}

func (c *cellImpl) UpdateDocument(d *doc.Document) error {
	return c.store.UpdateDocument(c.key, d)
}

func (c *cellImpl) Modify(directives ...doc.Directive) error {
	return modify(c, directives)
}

func (c *cellImpl) Exists() (bool, error) {
	return c.store.Has(c.key)
}

// modify reads the document of c, applies the directives and writes the result back.
func modify(c ICell, directives []doc.Directive) error {
	d, err := c.Document()
	if err != nil {
		return err
	}
	modified, err := doc.Apply(d, directives...)
	if err != nil {
		return store.Wrapf(store.RetCInvalidOperation, err, "%s", c.Key())
	}
	log.Debugf("%s: applied %d directives", c.Key(), len(directives))
	return c.UpdateDocument(modified)
}
