package testing

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
	"sync"
	"testing"
)

// StoreFactory is a function that creates a new, empty instance of an IStore implementation
type StoreFactory func(t *testing.T) store.IStore

// RunStoreTests runs a comprehensive test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Binary", func(t *testing.T) {
			testBinary(t, factory(t))
		})

		t.Run("Document", func(t *testing.T) {
			testDocument(t, factory(t))
		})

		t.Run("EmptyRemoves", func(t *testing.T) {
			testEmptyRemoves(t, factory(t))
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory(t))
		})

		t.Run("Keys", func(t *testing.T) {
			testKeys(t, factory(t))
		})

		t.Run("NormalizedKeys", func(t *testing.T) {
			testNormalizedKeys(t, factory(t))
		})

		t.Run("InvalidKeys", func(t *testing.T) {
			testInvalidKeys(t, factory(t))
		})

		t.Run("Concurrent", func(t *testing.T) {
			testConcurrent(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func sampleDocument() *doc.Document {
	d := doc.NewWithRoot("catalog")
	comb := d.Root.AddChild("comb")
	comb.SetAttr("id", "1")
	comb.SetAttr("owner", "alice")
	comb.AddChild("note").Text = "hello"
	return d
}

func mustUpdate(t *testing.T, s store.IStore, key string, value []byte) {
	t.Helper()
	if err := s.Update(key, value); err != nil {
		t.Fatalf("Update(%s) failed: %v", key, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testBinary(t *testing.T, s store.IStore) {
	value, err := s.Binary("hive/comb/missing")
	if err != nil {
		t.Fatalf("Binary of a missing key failed: %v", err)
	}
	if len(value) != 0 {
		t.Errorf("Expected empty content for a missing key, got %q", value)
	}

	mustUpdate(t, s, "hive/comb/cell", []byte("value1"))
	value, err = s.Binary("hive/comb/cell")
	if err != nil || !bytes.Equal(value, []byte("value1")) {
		t.Errorf("Expected value1, got %q (%v)", value, err)
	}

	mustUpdate(t, s, "hive/comb/cell", []byte("value2"))
	value, _ = s.Binary("hive/comb/cell")
	if !bytes.Equal(value, []byte("value2")) {
		t.Errorf("Expected value2, got %q", value)
	}

	// modifying the returned slice must not change the stored value
	value[0] = 'X'
	again, _ := s.Binary("hive/comb/cell")
	if !bytes.Equal(again, []byte("value2")) {
		t.Errorf("Expected stored value to be unchanged, got %q", again)
	}

	large := bytes.Repeat([]byte("0123456789"), 10_000)
	mustUpdate(t, s, "hive/comb/large", large)
	value, _ = s.Binary("hive/comb/large")
	if !bytes.Equal(value, large) {
		t.Errorf("Expected large value to round trip (got %d bytes)", len(value))
	}
}

func testDocument(t *testing.T, s store.IStore) {
	d, err := s.Document("hive/comb/missing")
	if err != nil {
		t.Fatalf("Document of a missing key failed: %v", err)
	}
	if !d.IsEmpty() {
		t.Errorf("Expected an empty document for a missing key, got %s", d)
	}

	want := sampleDocument()
	if err := s.UpdateDocument("hive/_catalog", want); err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}
	got, err := s.Document("hive/_catalog")
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Expected %s, got %s", want, got)
	}

	// the returned document belongs to the caller
	got.Root.SetAttr("changed", "yes")
	again, _ := s.Document("hive/_catalog")
	if !again.Equal(want) {
		t.Errorf("Expected stored document to be unchanged, got %s", again)
	}

	// and so does the written one
	want.Root.Children = nil
	again, _ = s.Document("hive/_catalog")
	if !again.Equal(sampleDocument()) {
		t.Errorf("Expected store to keep its own copy, got %s", again)
	}
}

func testEmptyRemoves(t *testing.T, s store.IStore) {
	mustUpdate(t, s, "hive/comb/cell", []byte("value"))
	mustUpdate(t, s, "hive/comb/cell", nil)
	if ok, _ := s.Has("hive/comb/cell"); ok {
		t.Errorf("Expected empty update to remove the key")
	}

	if err := s.UpdateDocument("hive/comb/doc", sampleDocument()); err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}
	if err := s.UpdateDocument("hive/comb/doc", doc.New()); err != nil {
		t.Fatalf("UpdateDocument with an empty document failed: %v", err)
	}
	if ok, _ := s.Has("hive/comb/doc"); ok {
		t.Errorf("Expected empty document to remove the key")
	}

	// removing a missing key is fine
	if err := s.Update("hive/comb/never", nil); err != nil {
		t.Errorf("Expected removing a missing key to succeed, got %v", err)
	}
}

func testHas(t *testing.T, s store.IStore) {
	if ok, err := s.Has("hive/comb/cell"); err != nil || ok {
		t.Errorf("Expected missing key, got %t (%v)", ok, err)
	}
	mustUpdate(t, s, "hive/comb/cell", []byte("v"))
	if ok, err := s.Has("hive/comb/cell"); err != nil || !ok {
		t.Errorf("Expected existing key, got %t (%v)", ok, err)
	}
	if ok, _ := s.Has("other/comb/cell"); ok {
		t.Errorf("Expected hives to be separated")
	}
}

func testKeys(t *testing.T, s store.IStore) {
	names, err := s.Keys("hive/comb")
	if err != nil {
		t.Fatalf("Keys of an unknown prefix failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Expected no names, got %v", names)
	}

	mustUpdate(t, s, "hive/c1/b", []byte("v"))
	mustUpdate(t, s, "hive/c1/a", []byte("v"))
	mustUpdate(t, s, "hive/c2/x", []byte("v"))
	mustUpdate(t, s, "other/c3/y", []byte("v"))
	if err := s.UpdateDocument("hive/_catalog", sampleDocument()); err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}

	names, _ = s.Keys("hive/c1")
	if fmt.Sprint(names) != "[a b]" {
		t.Errorf("Expected [a b], got %v", names)
	}
	names, _ = s.Keys("hive")
	if fmt.Sprint(names) != "[_catalog c1 c2]" {
		t.Errorf("Expected [_catalog c1 c2], got %v", names)
	}

	mustUpdate(t, s, "hive/c1/a", nil)
	names, _ = s.Keys("hive/c1")
	if fmt.Sprint(names) != "[b]" {
		t.Errorf("Expected [b] after removal, got %v", names)
	}
}

func testNormalizedKeys(t *testing.T, s store.IStore) {
	mustUpdate(t, s, "/hive//comb/cell/", []byte("v"))
	value, _ := s.Binary("hive/comb/cell")
	if string(value) != "v" {
		t.Errorf("Expected normalized keys to address the same cell, got %q", value)
	}
	value, _ = s.Binary(`hive\comb\cell`)
	if string(value) != "v" {
		t.Errorf("Expected backslashes to be normalized, got %q", value)
	}
}

func testInvalidKeys(t *testing.T, s store.IStore) {
	for _, key := range []string{"", "/", "hive"} {
		if err := s.Update(key, []byte("v")); !errors.Is(err, store.ErrInvalid) {
			t.Errorf("Expected invalid operation for key %q, got %v", key, err)
		}
	}
}

func testConcurrent(t *testing.T, s store.IStore) {
	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("hive/comb-%d/cell-%d", w, i)
				value := []byte(fmt.Sprintf("%d-%d", w, i))
				if err := s.Update(key, value); err != nil {
					errs <- err
					continue
				}
				got, err := s.Binary(key)
				if err != nil {
					errs <- err
					continue
				}
				if !bytes.Equal(got, value) {
					errs <- fmt.Errorf("%s: expected %q, got %q", key, value, got)
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	names, _ := s.Keys("hive")
	if len(names) != workers {
		t.Errorf("Expected %d combs, got %d", workers, len(names))
	}
}
