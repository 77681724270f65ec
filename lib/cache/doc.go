// Package cache implements the caching policies every cell access of a cached farm passes through.
//
// All policies implement ICache, which exposes two independently typed channels per resource key:
// binary payloads and documents. Policies are decorators and compose by construction order, e.g.
//
//	simple := cache.NewSimpleCache()
//	limited := cache.NewLimited(2048, simple)
//	c, err := cache.NewBlacklist(limited, "*/*/*.tmp")
//
// Policies:
//
//   - Simple: caches every non empty content in two memory.Memory instances, one per content kind.
//     It enforces kind exclusivity: a key first cached as a document can't be used as binary and
//     vice versa (store.ErrUsageConflict). Empty updates evict the key.
//
//   - Limited: passes only content of at most the configured size to its origin. Oversized reads
//     return the supplied value without caching it, oversized updates evict the key so that later
//     reads recompute. Oversized content is a designed bypass, not an error.
//
//   - Blacklist: keys matching one of the glob patterns bypass caching entirely. Reads always
//     invoke the supplier and updates are dropped by this decorator. Other keys are delegated.
//
// Suppliers:
//
//	A supplier is invoked on a miss, without holding any lock. Concurrent first reads of the same key
//	may invoke their suppliers redundantly, the cache keeps exactly one result. Supplier errors
//	are returned unmodified and nothing is cached.
//
// Metrics:
//
//	Every answered request increments the VictoriaMetrics counter
//	dfarm_cache_requests_total{policy="...",result="..."} with result one of hit, miss, bypass and oversized.
//	WriteMetrics renders them in Prometheus text format.
//
// Thread-safety:
//
//	All policies are safe for concurrent use. Only single key atomicity is guaranteed, linearizable
//	updates of one key require the synchronized farm on top.
package cache
