package lockmgr

import (
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rcrowley/go-metrics"
	"sync"
	"time"
)

var log = logger.GetLogger("lockmgr")

// section is the exclusive section of a single key
type section struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner Owner // current holder (0 = free)
	depth int   // number of times the holder locked the section
	refs  int   // holders and waiters, only changed inside Compute
}

func newSection() *section {
	s := &section{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

type lockMgrImpl struct {
	sections  *xsync.MapOf[string, *section]
	registry  metrics.Registry
	wait      metrics.Timer
	contended metrics.Counter
}

// NewLockManager creates a new lock manager. Sections are created on first use and removed
// once no owner holds or waits for them, so the manager only keeps state for keys in use.
func NewLockManager() ILockManager {
	registry := metrics.NewRegistry()
	return &lockMgrImpl{
		sections:  xsync.NewMapOf[string, *section](),
		registry:  registry,
		wait:      metrics.GetOrRegisterTimer("lockmgr.wait", registry),
		contended: metrics.GetOrRegisterCounter("lockmgr.contended", registry),
	}
}

// retain returns the section of key, creating it if necessary, and increments its reference count.
//
// Thread-safety: Compute holds the bucket lock of key, which guards the reference count.
func (lm *lockMgrImpl) retain(key string) *section {
	s, _ := lm.sections.Compute(key, func(s *section, loaded bool) (*section, bool) {
		if !loaded {
			s = newSection()
		}
		s.refs++
		return s, false
	})
	return s
}

// release decrements the reference count of the section of key and removes it when unused.
func (lm *lockMgrImpl) release(key string) {
	lm.sections.Compute(key, func(s *section, loaded bool) (*section, bool) {
		if !loaded {
			return s, true
		}
		s.refs--
		return s, s.refs <= 0
	})
}

// --------------------------------------------------------------------------
// Interface Methods (docu see lockmgr/interface.go)
// --------------------------------------------------------------------------

func (lm *lockMgrImpl) Lock(key string, owner Owner) error {
	if owner == 0 {
		return store.NewError(store.RetCInvalidOperation, "lock owner must not be zero")
	}
	key = store.NormalizeKey(key)
	s := lm.retain(key)

	start := time.Now()
	contended := false

	s.mu.Lock()
	for s.depth > 0 && s.owner != owner {
		contended = true
		s.cond.Wait()
	}
	s.owner = owner
	s.depth++
	s.mu.Unlock()

	lm.wait.UpdateSince(start)
	if contended {
		lm.contended.Inc(1)
		log.Debugf("waited %s for %s", time.Since(start), key)
	}
	return nil
}

func (lm *lockMgrImpl) Unlock(key string, owner Owner) error {
	key = store.NormalizeKey(key)
	s, ok := lm.sections.Load(key)
	if !ok {
		return store.Errorf(store.RetCInvalidOperation, "%s is not locked", key)
	}

	s.mu.Lock()
	if s.depth == 0 || s.owner != owner {
		s.mu.Unlock()
		return store.Errorf(store.RetCInvalidOperation, "%s is not held by owner %d", key, owner)
	}
	s.depth--
	if s.depth == 0 {
		s.owner = 0
		s.cond.Broadcast()
	}
	s.mu.Unlock()

	lm.release(key)
	return nil
}

func (lm *lockMgrImpl) Exclusive(key string, owner Owner, fn func() error) error {
	if owner == 0 {
		owner = NewOwner()
	}
	if err := lm.Lock(key, owner); err != nil {
		return err
	}
	defer func() {
		if err := lm.Unlock(key, owner); err != nil {
			log.Errorf("failed to unlock %s: %v", key, err)
		}
	}()
	return fn()
}

func (lm *lockMgrImpl) Metrics() metrics.Registry {
	return lm.registry
}
