package lockmgr

import (
	"errors"
	"github.com/ValentinKolb/dFarm/lib/store"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestReentrant(t *testing.T) {
	lm := NewLockManager()
	owner := NewOwner()

	calls := 0
	err := lm.Exclusive("a/b/c", owner, func() error {
		calls++
		return lm.Exclusive("/a/b/c/", owner, func() error {
			calls++
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Exclusive failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}

	impl := lm.(*lockMgrImpl)
	if impl.sections.Size() != 0 {
		t.Errorf("Expected all sections to be removed, got %d", impl.sections.Size())
	}
}

func TestMutualExclusion(t *testing.T) {
	lm := NewLockManager()

	var inside, maxInside atomic.Int64
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = lm.Exclusive("shared", NewOwner(), func() error {
					if n := inside.Add(1); n > maxInside.Load() {
						maxInside.Store(n)
					}
					counter++
					inside.Add(-1)
					return nil
				})
			}
		}()
	}
	wg.Wait()

	if counter != 1600 {
		t.Errorf("Expected counter 1600, got %d", counter)
	}
	if maxInside.Load() != 1 {
		t.Errorf("Expected at most one owner inside the section, got %d", maxInside.Load())
	}
}

func TestDistinctKeysDoNotBlock(t *testing.T) {
	lm := NewLockManager()
	holder := NewOwner()
	if err := lm.Lock("key-1", holder); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		_ = lm.Exclusive("key-2", NewOwner(), func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Expected a distinct key not to block")
	}

	if err := lm.Unlock("key-1", holder); err != nil {
		t.Errorf("Unlock failed: %v", err)
	}
}

func TestOtherOwnerBlocks(t *testing.T) {
	lm := NewLockManager()
	holder := NewOwner()
	_ = lm.Lock("k", holder)

	acquired := make(chan struct{})
	go func() {
		_ = lm.Exclusive("k", NewOwner(), func() error { return nil })
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatalf("Expected the second owner to wait")
	case <-time.After(50 * time.Millisecond):
	}

	_ = lm.Unlock("k", holder)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("Expected the second owner to acquire the key after unlock")
	}

	if lm.Metrics().Get("lockmgr.contended") == nil {
		t.Errorf("Expected the contended counter to be registered")
	}
}

func TestUnlockErrors(t *testing.T) {
	lm := NewLockManager()
	if err := lm.Unlock("unknown", NewOwner()); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected invalid operation, got %v", err)
	}

	holder := NewOwner()
	_ = lm.Lock("k", holder)
	if err := lm.Unlock("k", NewOwner()); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected invalid operation for a foreign owner, got %v", err)
	}
	if err := lm.Lock("k", 0); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected invalid operation for the zero owner, got %v", err)
	}
	_ = lm.Unlock("k", holder)
}

func TestExclusiveReturnsError(t *testing.T) {
	lm := NewLockManager()
	boom := errors.New("boom")
	if err := lm.Exclusive("k", 0, func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Expected fn error, got %v", err)
	}
	// section is free again
	if err := lm.Exclusive("k", 0, func() error { return nil }); err != nil {
		t.Errorf("Expected second Exclusive to succeed, got %v", err)
	}
}
