package catalog

import (
	"errors"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"strings"
)

var log = logger.GetLogger("catalog")

// Names of the catalog document schema
const (
	RootName  = "catalog"
	EntryName = "comb"
	IDAttr    = "id"
)

// IDocCell is the document cell a catalog is stored in. Every farm cell implements it.
type IDocCell interface {
	Key() string
	Document() (*doc.Document, error)
	Modify(directives ...doc.Directive) error
}

// Catalog records the comb identifiers of a hive together with arbitrary attributes.
//
// Document schema:
//
//	<catalog>
//	  <comb id='42' owner='alice'/>
//	  ...
//	</catalog>
type Catalog struct {
	cell IDocCell
}

// New creates a catalog stored in cell. The document is created on the first Create.
func New(cell IDocCell) *Catalog {
	return &Catalog{cell: cell}
}

// Cell returns the cell the catalog is stored in.
func (c *Catalog) Cell() IDocCell {
	return c.cell
}

// ValidateID checks a comb identifier. Identifiers become path segments and literals in
// path predicates, so they must be valid names and must not contain quotes. The prefix of
// hive level cells (store.MetaPrefix) is reserved.
func ValidateID(id string) error {
	if err := store.ValidateName("comb", id); err != nil {
		return err
	}
	if strings.HasPrefix(id, store.MetaPrefix) {
		return store.Errorf(store.RetCInvalidOperation, "comb id %q must not start with %q", id, store.MetaPrefix)
	}
	return nil
}

// entryStep returns the path step selecting the entry of id, e.g. comb[@id='42'].
func entryStep(id string) string {
	return EntryName + "[@" + IDAttr + "='" + id + "']"
}

// --------------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------------

// Create adds an entry for id. Creating an existing id is a no-op.
func (c *Catalog) Create(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := c.cell.Modify(doc.AddIf(RootName), doc.AddIf(entryStep(id))); err != nil {
		return err
	}
	log.Debugf("%s: created comb %s", c.cell.Key(), id)
	return nil
}

// Add creates an entry with a freshly assigned identifier and returns the identifier.
func (c *Catalog) Add() (string, error) {
	id := uuid.NewString()
	if err := c.Create(id); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes the entry of id. Deleting an unknown id is a no-op.
// The content of the comb is not touched.
func (c *Catalog) Delete(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := c.cell.Modify(doc.XPath("/"+RootName+"/"+entryStep(id)), doc.Remove()); err != nil {
		return err
	}
	log.Debugf("%s: deleted comb %s", c.cell.Key(), id)
	return nil
}

// List returns the identifiers of all entries matching query, in creation order.
//
// The query is either empty (all entries), a predicate evaluated against every entry
// (e.g. "@id='42'" or "@owner='alice' and not(@archived)") or an absolute path into the
// catalog document (e.g. "/catalog/comb[2]"). A query matching nothing returns an empty slice.
func (c *Catalog) List(query string) ([]string, error) {
	path, err := compileQuery(query)
	if err != nil {
		return nil, err
	}
	d, err := c.cell.Document()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, n := range path.Eval(d) {
		if id, ok := n.Attr(IDAttr); ok && n.Name == EntryName {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Has reports whether an entry for id exists.
func (c *Catalog) Has(id string) (bool, error) {
	if err := ValidateID(id); err != nil {
		return false, err
	}
	ids, err := c.List("@" + IDAttr + "='" + id + "'")
	return len(ids) > 0, err
}

// AddAttribute sets an attribute of the entry of id. The id attribute itself is immutable.
// Unknown ids are rejected.
func (c *Catalog) AddAttribute(id, name, value string) error {
	if name == IDAttr {
		return store.Errorf(store.RetCInvalidOperation, "attribute %q is immutable", IDAttr)
	}
	if err := ValidateID(id); err != nil {
		return err
	}
	// the existence check is part of the modification, a concurrent Delete can't slip in between
	err := c.cell.Modify(doc.Require("/"+RootName+"/"+entryStep(id)), doc.Attr(name, value))
	if errors.Is(err, doc.ErrNoMatch) {
		return store.Errorf(store.RetCInvalidOperation, "comb %q is not in the catalog", id)
	}
	return err
}

// Attributes returns all attributes of the entry of id (including the id).
// Unknown ids return an empty map.
func (c *Catalog) Attributes(id string) (map[string]string, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	d, err := c.cell.Document()
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]string)
	nodes := doc.MustCompile("/" + RootName + "/" + entryStep(id)).Eval(d)
	if len(nodes) > 0 {
		for _, a := range nodes[0].Attrs {
			attrs[a.Name] = a.Value
		}
	}
	return attrs, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// compileQuery turns a List query into a path over the catalog document.
func compileQuery(query string) (*doc.Path, error) {
	query = strings.TrimSpace(query)
	source := "/" + RootName + "/" + EntryName
	switch {
	case query == "":
	case strings.HasPrefix(query, "/"):
		source = query
	default:
		if err := doc.ValidPredicate(query); err != nil {
			return nil, store.Errorf(store.RetCInvalidOperation, "invalid catalog query %q: %v", query, err)
		}
		source += "[" + query + "]"
	}
	p, err := doc.Compile(source)
	if err != nil {
		return nil, store.Errorf(store.RetCInvalidOperation, "invalid catalog query %q: %v", query, err)
	}
	return p, nil
}
