package fstore

import (
	"bytes"
	"errors"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/serializer"
	"github.com/ValentinKolb/dFarm/lib/store"
	storetesting "github.com/ValentinKolb/dFarm/lib/store/testing"
	"github.com/spf13/afero"
	"path/filepath"
	"sync"
	"testing"
)

func newMemStore(t *testing.T, opts *Options) store.IStore {
	s, err := NewFileStoreFs(afero.NewMemMapFs(), "/data/farm", opts)
	if err != nil {
		t.Fatalf("NewFileStoreFs failed: %v", err)
	}
	return s
}

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "FileStore", func(t *testing.T) store.IStore {
		return newMemStore(t, nil)
	})

	storetesting.RunStoreTests(t, "FileStoreOS", func(t *testing.T) store.IStore {
		s, err := NewFileStore(filepath.Join(t.TempDir(), "farm"), nil)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		return s
	})

	for _, c := range []Compression{CompressionZstd, CompressionLZ4} {
		c := c
		storetesting.RunStoreTests(t, "FileStore-"+string(c), func(t *testing.T) store.IStore {
			return newMemStore(t, &Options{Compression: c, Serializer: serializer.NewCBORSerializer()})
		})
	}

	storetesting.RunStoreTests(t, "FileStore-json", func(t *testing.T) store.IStore {
		return newMemStore(t, &Options{Serializer: serializer.NewJSONSerializer()})
	})
}

func TestLayout(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, _ := NewFileStoreFs(fsys, "/root", nil)

	if err := s.Update("hive/comb/cell", []byte("payload")); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := s.UpdateDocument("hive/"+store.CatalogCell, doc.NewWithRoot("catalog")); err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}

	raw, err := afero.ReadFile(fsys, "/root/hive/comb/cell")
	if err != nil || !bytes.Equal(raw, []byte("payload")) {
		t.Errorf("Expected cell file with payload, got %q (%v)", raw, err)
	}
	if ok, _ := afero.Exists(fsys, "/root/hive/_catalog"); !ok {
		t.Errorf("Expected catalog file in the hive directory")
	}
}

func TestCompressionOnDisk(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, _ := NewFileStoreFs(fsys, "/root", &Options{Compression: CompressionZstd})

	payload := bytes.Repeat([]byte("compressible "), 1000)
	_ = s.Update("h/c/cell", payload)

	raw, _ := afero.ReadFile(fsys, "/root/h/c/cell")
	if len(raw) >= len(payload) {
		t.Errorf("Expected compressed file to be smaller (%d >= %d)", len(raw), len(payload))
	}
	got, _ := s.Binary("h/c/cell")
	if !bytes.Equal(got, payload) {
		t.Errorf("Expected decompressed payload")
	}
}

func TestRootCreationFailsPermanently(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s, err := NewFileStoreFs(fsys, "/not/writable", nil)
	if err != nil {
		t.Fatalf("Expected lazy root creation, got %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Update("h/c/cell", []byte("v"))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if !errors.Is(err, store.ErrConfig) {
			t.Errorf("Expected config error, got %v", err)
		}
	}

	impl := s.(*storeImpl)
	first := impl.rootErr
	_, err = s.Binary("h/c/cell")
	if !errors.Is(err, store.ErrConfig) || impl.rootErr != first {
		t.Errorf("Expected the stored error to be returned without retry, got %v", err)
	}
}

func TestRootCreatedOnce(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, _ := NewFileStoreFs(fsys, "/lazy", nil)
	if ok, _ := afero.DirExists(fsys, "/lazy"); ok {
		t.Fatalf("Expected root not to exist before first use")
	}
	_, _ = s.Has("h/c/cell")
	if ok, _ := afero.DirExists(fsys, "/lazy"); !ok {
		t.Errorf("Expected root to exist after first use")
	}
}

func TestInvalidOptions(t *testing.T) {
	if _, err := NewFileStoreFs(afero.NewMemMapFs(), "", nil); !errors.Is(err, store.ErrConfig) {
		t.Errorf("Expected config error for an empty root, got %v", err)
	}
	if _, err := NewFileStoreFs(afero.NewMemMapFs(), "/r", &Options{Compression: "brotli"}); !errors.Is(err, store.ErrConfig) {
		t.Errorf("Expected config error for an unknown compression, got %v", err)
	}
	if _, err := ParseCompression("LZ4"); err != nil {
		t.Errorf("Expected case insensitive compression names, got %v", err)
	}
}

func TestCorruptDocument(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, _ := NewFileStoreFs(fsys, "/root", &Options{Serializer: serializer.NewJSONSerializer()})
	_ = s.Update("h/c/doc", []byte("{not json"))
	if _, err := s.Document("h/c/doc"); !errors.Is(err, store.ErrInternal) {
		t.Errorf("Expected internal error for a corrupt document, got %v", err)
	}
}
