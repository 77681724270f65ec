package memory

import (
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
)

// IKnowledge tracks a set of known names, independent of any content.
type IKnowledge interface {
	// Introduce adds name to the set.
	Introduce(name string)
	// Forget removes name from the set. Forgetting an unknown name does nothing.
	Forget(name string)
	// Has reports whether name is known.
	Has(name string) bool
	// Contents returns a sorted snapshot of all known names.
	Contents() []string
}

// --------------------------------------------------------------------------
// Ram Knowledge
// --------------------------------------------------------------------------

type ramKnowledge struct {
	names *xsync.MapOf[string, struct{}]
}

// NewRamKnowledge returns a knowledge tracking names in memory.
//
// Thread-safety: safe for concurrent use.
func NewRamKnowledge() IKnowledge {
	return &ramKnowledge{names: xsync.NewMapOf[string, struct{}]()}
}

func (k *ramKnowledge) Introduce(name string) {
	k.names.Store(store.NormalizeKey(name), struct{}{})
}

func (k *ramKnowledge) Forget(name string) {
	k.names.Delete(store.NormalizeKey(name))
}

func (k *ramKnowledge) Has(name string) bool {
	_, ok := k.names.Load(store.NormalizeKey(name))
	return ok
}

func (k *ramKnowledge) Contents() []string {
	names := make([]string, 0, k.names.Size())
	k.names.Range(func(name string, _ struct{}) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// --------------------------------------------------------------------------
// Dead Knowledge
// --------------------------------------------------------------------------

type deadKnowledge struct{}

// NewDeadKnowledge returns a knowledge that tracks nothing. Every operation is a no-op.
func NewDeadKnowledge() IKnowledge {
	return deadKnowledge{}
}

func (deadKnowledge) Introduce(string)   {}
func (deadKnowledge) Forget(string)      {}
func (deadKnowledge) Has(string) bool    { return false }
func (deadKnowledge) Contents() []string { return []string{} }
