package farm

import (
	"github.com/ValentinKolb/dFarm/lib/catalog"
	"github.com/ValentinKolb/dFarm/lib/doc"
)

// IFarm resolves hives by name against a storage backend. Hives are created on demand and
// not cached, every call returns a fresh, cheap handle.
type IFarm interface {
	// Hive returns the hive called name. The name must be a valid path segment.
	Hive(name string) (h IHive, err error)
	// Hives returns the names of all hives holding content, sorted.
	Hives() (names []string, err error)
	// Close releases the resources of the backend (e.g. database connections).
	Close() (err error)
}

// IHive is a named collection of combs. Comb identifiers are resolved through the hive's catalog.
type IHive interface {
	// Name returns the name of the hive.
	Name() string
	// Catalog returns the catalog of the hive, stored in the meta cell "_catalog".
	Catalog() *catalog.Catalog
	// Combs resolves query with Catalog().List and returns one comb per matching identifier.
	// Combs are created lazily, no content is read. A query matching nothing returns an empty slice.
	Combs(query string) (combs []IComb, err error)
	// Comb returns the comb id directly, without consulting the catalog.
	Comb(id string) (c IComb, err error)
	// Meta returns a hive level cell (not belonging to any comb). The name must start with
	// store.MetaPrefix ("_"), a prefix comb identifiers can't use.
	Meta(name string) (c ICell, err error)
}

// IComb is an identified storage scope within a hive, grouping cells.
type IComb interface {
	// ID returns the identifier of the comb.
	ID() string
	// Cell returns the cell called name.
	Cell(name string) (c ICell, err error)
	// Cells returns the names of all cells holding content, sorted.
	Cells() (names []string, err error)
}

// ICell is a single content slot, holding either binary content or a document.
// Reading a cell that was never written returns empty content. Updating with empty content removes the cell.
type ICell interface {
	// Key returns the resource key of the cell ("hive/comb/cell").
	Key() string
	// Name returns the name of the cell.
	Name() string
	// Content returns the binary content of the cell.
	Content() (value []byte, err error)
	// Update replaces the binary content of the cell.
	Update(value []byte) (err error)
	// Document returns the document stored in the cell. The document is owned by the caller.
	Document() (d *doc.Document, err error)
	// UpdateDocument replaces the document stored in the cell.
	UpdateDocument(d *doc.Document) (err error)
	// Modify applies the edit directives to the stored document (read, doc.Apply, update).
	Modify(directives ...doc.Directive) (err error)
	// Exists reports whether the cell holds any content.
	Exists() (ok bool, err error)
}
