package cache

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
)

// ICache decorates a content source. It exposes two independently typed channels per key,
// binary payloads and documents. Keys are resource keys and normalized by the implementation.
//
// A key is fixed to the kind it was first cached as. Using the other kind afterward fails
// with an error matching store.ErrUsageConflict.
type ICache interface {
	// Binary returns the cached payload for key, invoking supplier on a miss.
	Binary(key string, supplier func() ([]byte, error)) ([]byte, error)
	// Document returns the cached document for key, invoking supplier on a miss.
	// The returned document is shared and must not be modified.
	Document(key string, supplier func() (*doc.Document, error)) (*doc.Document, error)
	// Update replaces the cached payload for key. Empty payloads evict the key.
	Update(key string, value []byte) error
	// UpdateDocument replaces the cached document for key. Empty documents evict the key.
	UpdateDocument(key string, d *doc.Document) error
	// Has reports whether any content is cached for key.
	Has(key string) bool
}

// usageConflict creates the error returned when key is used as want after being cached as got.
func usageConflict(key, want, got string) error {
	return store.Errorf(store.RetCUsageConflict, "key %q is used as %s but is cached as %s", key, want, got)
}
