package rstore

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/memory"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
	"strings"
)

var log = logger.GetLogger("store")

// --------------------------------------------------------------------------
// Shared Store
// --------------------------------------------------------------------------

// entry is the content of a single cell. Exactly one of bin and doc is set.
type entry struct {
	bin []byte
	doc *doc.Document
}

// Store holds the content of ram backed stores: hive name -> (cell key -> content).
// A Store is owned by the caller. Passing the same Store to several NewRamStore calls
// lets all of them (and the farms built on them) share their data.
type Store struct {
	hives *xsync.MapOf[string, *xsync.MapOf[string, entry]]
	known memory.IKnowledge
}

// NewStore creates an empty Store. known records the stored keys and backs Keys,
// nil means a ram knowledge. With a dead knowledge Keys always returns nothing.
func NewStore(known memory.IKnowledge) *Store {
	if known == nil {
		known = memory.NewRamKnowledge()
	}
	return &Store{
		hives: xsync.NewMapOf[string, *xsync.MapOf[string, entry]](),
		known: known,
	}
}

// Hives returns the names of all hives holding content, sorted.
func (s *Store) Hives() []string {
	names := make([]string, 0, s.hives.Size())
	s.hives.Range(func(name string, cells *xsync.MapOf[string, entry]) bool {
		if cells.Size() > 0 {
			names = append(names, name)
		}
		return true
	})
	sort.Strings(names)
	return names
}

// cells returns the cell map of the hive addressed by key and the key below the hive.
func (s *Store) cells(key string) (*xsync.MapOf[string, entry], string, error) {
	key, err := store.CheckCellKey(key)
	if err != nil {
		return nil, "", err
	}
	hive, rest := store.Split(key)
	cells, _ := s.hives.LoadOrCompute(hive, func() *xsync.MapOf[string, entry] {
		return xsync.NewMapOf[string, entry]()
	})
	return cells, rest, nil
}

// --------------------------------------------------------------------------
// IStore Implementation
// --------------------------------------------------------------------------

type storeImpl struct {
	shared *Store
}

// NewRamStore creates a store keeping all content in memory.
// This store is not persistent, the content lives as long as the given Store.
// A nil Store creates a private one.
func NewRamStore(shared *Store) store.IStore {
	if shared == nil {
		shared = NewStore(nil)
	}
	return &storeImpl{
		shared: shared,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Binary(key string) ([]byte, error) {
	cells, rest, err := s.shared.cells(key)
	if err != nil {
		return nil, err
	}
	e, ok := cells.Load(rest)
	if !ok {
		return nil, nil
	}
	if e.doc != nil {
		return nil, store.Errorf(store.RetCUsageConflict, "%s holds a document", store.NormalizeKey(key))
	}
	// return a copy so the caller can't modify the stored value
	return append([]byte(nil), e.bin...), nil
}

func (s *storeImpl) Document(key string) (*doc.Document, error) {
	cells, rest, err := s.shared.cells(key)
	if err != nil {
		return nil, err
	}
	e, ok := cells.Load(rest)
	if !ok {
		return doc.New(), nil
	}
	if e.doc == nil {
		return nil, store.Errorf(store.RetCUsageConflict, "%s holds binary content", store.NormalizeKey(key))
	}
	return e.doc.Clone(), nil
}

func (s *storeImpl) Update(key string, value []byte) error {
	if len(value) == 0 {
		return s.remove(key)
	}
	return s.put(key, entry{bin: append([]byte(nil), value...)})
}

func (s *storeImpl) UpdateDocument(key string, d *doc.Document) error {
	if d.IsEmpty() {
		return s.remove(key)
	}
	return s.put(key, entry{doc: d.Clone()})
}

func (s *storeImpl) Has(key string) (bool, error) {
	cells, rest, err := s.shared.cells(key)
	if err != nil {
		return false, err
	}
	_, ok := cells.Load(rest)
	return ok, nil
}

func (s *storeImpl) Keys(prefix string) ([]string, error) {
	prefix = store.NormalizeKey(prefix)
	if prefix != "" {
		prefix += "/"
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, key := range s.shared.known.Contents() {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || rest == "" {
			continue
		}
		name, _, _ := strings.Cut(rest, "/")
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// put stores e under key. The cell map and the knowledge are updated under the bucket lock of the key,
// so racing puts and removes leave both in agreement.
func (s *storeImpl) put(key string, e entry) error {
	cells, rest, err := s.shared.cells(key)
	if err != nil {
		return err
	}
	cells.Compute(rest, func(_ entry, _ bool) (entry, bool) {
		s.shared.known.Introduce(key)
		return e, false
	})
	log.Debugf("stored %s", store.NormalizeKey(key))
	return nil
}

func (s *storeImpl) remove(key string) error {
	cells, rest, err := s.shared.cells(key)
	if err != nil {
		return err
	}
	cells.Compute(rest, func(old entry, _ bool) (entry, bool) {
		s.shared.known.Forget(key)
		return old, true
	})
	log.Debugf("removed %s", store.NormalizeKey(key))
	return nil
}
