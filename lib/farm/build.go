package farm

import (
	"github.com/ValentinKolb/dFarm/lib/cache"
	"github.com/ValentinKolb/dFarm/lib/common"
	"github.com/ValentinKolb/dFarm/lib/lockmgr"
	"github.com/ValentinKolb/dFarm/lib/serializer"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/ValentinKolb/dFarm/lib/store/fstore"
	"github.com/ValentinKolb/dFarm/lib/store/rstore"
	"github.com/ValentinKolb/dFarm/lib/store/sqlstore"
)

// --------------------------------------------------------------------------
// Backends
// --------------------------------------------------------------------------

// NewFileFarm creates a farm storing every cell in a file below root
// ({root}/{hive}/{comb}/{cell}). The root is created on first use. Options may be nil.
func NewFileFarm(root string, opts *fstore.Options) (IFarm, error) {
	s, err := fstore.NewFileStore(root, opts)
	if err != nil {
		return nil, err
	}
	return NewFarm(s), nil
}

// NewRamFarm creates a farm keeping all content in memory. Farms created with the same
// shared store see the same content, nil creates a private store.
func NewRamFarm(shared *rstore.Store) IFarm {
	return NewFarm(rstore.NewRamStore(shared))
}

// NewSQLiteFarm creates a farm storing all cells in the SQLite database at path.
// The farm must be closed to release the database.
func NewSQLiteFarm(path string, opts *sqlstore.Options) (IFarm, error) {
	s, err := sqlstore.NewSQLiteStore(path, opts)
	if err != nil {
		return nil, err
	}
	return NewFarm(s), nil
}

// --------------------------------------------------------------------------
// Builder
// --------------------------------------------------------------------------

// Build creates the farm described by cfg: the backend, wrapped by the cache chain
// (simple, limited, blacklist) if configured, wrapped by synchronization if configured.
func Build(cfg common.FarmConfig) (IFarm, error) {
	return BuildWithLockManager(cfg, nil)
}

// BuildWithLockManager is like Build but synchronizes through lm (if cfg asks for synchronization).
// A nil lm creates a private lock manager.
func BuildWithLockManager(cfg common.FarmConfig, lm lockmgr.ILockManager) (IFarm, error) {
	codec, err := serializer.ByName(cfg.Codec)
	if err != nil {
		return nil, store.Errorf(store.RetCConfigError, "%v", err)
	}

	var f IFarm
	switch cfg.Backend {
	case common.BackendFile, "":
		compression, err := fstore.ParseCompression(cfg.Compression)
		if err != nil {
			return nil, store.Errorf(store.RetCConfigError, "%v", err)
		}
		f, err = NewFileFarm(cfg.Root, &fstore.Options{Serializer: codec, Compression: compression})
		if err != nil {
			return nil, err
		}
	case common.BackendRam:
		f = NewRamFarm(nil)
	case common.BackendSQLite:
		f, err = NewSQLiteFarm(cfg.Root, &sqlstore.Options{Serializer: codec})
		if err != nil {
			return nil, err
		}
	default:
		return nil, store.Errorf(store.RetCConfigError, "unknown backend %q. must be one of file, ram, sqlite", cfg.Backend)
	}

	switch cfg.Cache {
	case common.CacheNone, "":
	case common.CacheSimple:
		c, err := buildCache(cfg)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		f = NewCachedFarm(f, c)
	default:
		_ = f.Close()
		return nil, store.Errorf(store.RetCConfigError, "unknown cache policy %q. must be one of none, simple", cfg.Cache)
	}

	if cfg.Synchronized {
		f = NewSyncFarm(f, lm)
	}

	log.Infof("built %s farm (cache: %s, synchronized: %t)", cfg.Backend, cfg.Cache, cfg.Synchronized)
	return f, nil
}

// buildCache composes the cache chain of cfg
func buildCache(cfg common.FarmConfig) (cache.ICache, error) {
	c := cache.NewSimpleCache()
	if cfg.CacheLimit > 0 {
		c = cache.NewLimited(cfg.CacheLimit, c)
	}
	if len(cfg.Blacklist) > 0 {
		return cache.NewBlacklist(c, cfg.Blacklist...)
	}
	return c, nil
}
