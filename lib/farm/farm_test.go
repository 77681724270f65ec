package farm

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/dFarm/lib/cache"
	"github.com/ValentinKolb/dFarm/lib/catalog"
	"github.com/ValentinKolb/dFarm/lib/common"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/ValentinKolb/dFarm/lib/store/rstore"
	"path/filepath"
	"reflect"
	"testing"
)

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

type farmFactory func(t *testing.T) IFarm

func backends() map[string]farmFactory {
	return map[string]farmFactory{
		"file": func(t *testing.T) IFarm {
			f, err := NewFileFarm(filepath.Join(t.TempDir(), "farm"), nil)
			if err != nil {
				t.Fatalf("NewFileFarm failed: %v", err)
			}
			return f
		},
		"ram": func(t *testing.T) IFarm {
			return NewRamFarm(nil)
		},
		"sqlite": func(t *testing.T) IFarm {
			f, err := NewSQLiteFarm(filepath.Join(t.TempDir(), "farm.db"), nil)
			if err != nil {
				t.Fatalf("NewSQLiteFarm failed: %v", err)
			}
			t.Cleanup(func() { _ = f.Close() })
			return f
		},
		"cached-ram": func(t *testing.T) IFarm {
			return NewCachedFarm(NewRamFarm(nil), cache.NewSimpleCache())
		},
		"sync-cached-file": func(t *testing.T) IFarm {
			f, err := NewFileFarm(filepath.Join(t.TempDir(), "farm"), nil)
			if err != nil {
				t.Fatalf("NewFileFarm failed: %v", err)
			}
			return NewSyncFarm(NewCachedFarm(f, cache.NewSimpleCache()), nil)
		},
	}
}

func mustHive(t *testing.T, f IFarm, name string) IHive {
	t.Helper()
	h, err := f.Hive(name)
	if err != nil {
		t.Fatalf("Hive(%s) failed: %v", name, err)
	}
	return h
}

func mustCell(t *testing.T, h IHive, comb, name string) ICell {
	t.Helper()
	c, err := h.Comb(comb)
	if err != nil {
		t.Fatalf("Comb(%s) failed: %v", comb, err)
	}
	cell, err := c.Cell(name)
	if err != nil {
		t.Fatalf("Cell(%s) failed: %v", name, err)
	}
	return cell
}

// scenario runs a fixed sequence of operations and records every observable result
func scenario(t *testing.T, f IFarm) []string {
	var out []string
	record := func(format string, args ...interface{}) {
		out = append(out, fmt.Sprintf(format, args...))
	}

	h := mustHive(t, f, "users")
	for _, id := range []string{"alice", "bob", "carol"} {
		if err := h.Catalog().Create(id); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	_ = h.Catalog().AddAttribute("bob", "role", "admin")
	_ = h.Catalog().Delete("carol")

	combs, err := h.Combs("")
	if err != nil {
		t.Fatalf("Combs failed: %v", err)
	}
	for _, c := range combs {
		cell, _ := c.Cell("avatar")
		_ = cell.Update([]byte("png:" + c.ID()))
		profile, _ := c.Cell("profile")
		_ = profile.Modify(doc.Add("profile"), doc.Attr("name", c.ID()))
	}

	admins, _ := h.Combs("@role='admin'")
	record("admins=%d", len(admins))
	for _, c := range combs {
		cell, _ := c.Cell("avatar")
		v, err := cell.Content()
		record("%s/avatar=%s err=%v", c.ID(), v, err)
		profile, _ := c.Cell("profile")
		d, err := profile.Document()
		name, _ := d.Root.Attr("name")
		record("%s/profile=%s err=%v", c.ID(), name, err)
		cells, _ := c.Cells()
		record("%s/cells=%v", c.ID(), cells)
	}

	missing := mustCell(t, h, "nobody", "avatar")
	v, err := missing.Content()
	record("missing=%q err=%v", v, err)
	ok, _ := missing.Exists()
	record("missing exists=%t", ok)

	hives, _ := f.Hives()
	record("hives=%v", hives)
	return out
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func TestCrossBackendEquivalence(t *testing.T) {
	var reference []string
	var referenceName string
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			got := scenario(t, factory(t))
			if reference == nil {
				reference, referenceName = got, name
				return
			}
			if !reflect.DeepEqual(reference, got) {
				t.Errorf("Expected %s to behave like %s:\n%v\n%v", name, referenceName, reference, got)
			}
		})
	}
}

func TestCombsAreLazy(t *testing.T) {
	f := NewRamFarm(nil)
	h := mustHive(t, f, "h")
	_ = h.Catalog().Create("1")
	combs, err := h.Combs("@id='1'")
	if err != nil || len(combs) != 1 || combs[0].ID() != "1" {
		t.Fatalf("Expected comb 1, got %v (%v)", combs, err)
	}
	if combs, _ := h.Combs("@id='2'"); len(combs) != 0 {
		t.Errorf("Expected an empty match, got %d combs", len(combs))
	}
	cells, _ := combs[0].Cells()
	if len(cells) != 0 {
		t.Errorf("Expected a new comb to have no cells, got %v", cells)
	}
}

func TestInvalidNames(t *testing.T) {
	f := NewRamFarm(nil)
	if _, err := f.Hive("a/b"); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected invalid hive name, got %v", err)
	}
	h := mustHive(t, f, "h")
	if _, err := h.Comb(".."); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected invalid comb id, got %v", err)
	}
	if _, err := h.Comb(store.CatalogCell); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected reserved comb id to be rejected, got %v", err)
	}
	if _, err := h.Meta(""); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected invalid meta name, got %v", err)
	}
	if _, err := h.Meta("settings"); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected meta name without prefix to be rejected, got %v", err)
	}
	if _, err := h.Comb("_settings"); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected comb id with the meta prefix to be rejected, got %v", err)
	}
}

func TestMetaAndCombsDoNotCollide(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			h := mustHive(t, factory(t), "h")

			meta, err := h.Meta("_x")
			if err != nil {
				t.Fatalf("Meta failed: %v", err)
			}
			if err := meta.Update([]byte("meta")); err != nil {
				t.Fatalf("meta Update failed: %v", err)
			}
			cell := mustCell(t, h, "x", "y")
			if err := cell.Update([]byte("comb")); err != nil {
				t.Fatalf("comb cell Update failed: %v", err)
			}

			if v, err := meta.Content(); err != nil || string(v) != "meta" {
				t.Errorf("Expected meta content 'meta', got %q (%v)", v, err)
			}
			if v, err := cell.Content(); err != nil || string(v) != "comb" {
				t.Errorf("Expected comb content 'comb', got %q (%v)", v, err)
			}
		})
	}
}

func TestSharedRamStore(t *testing.T) {
	shared := rstore.NewStore(nil)
	a := NewRamFarm(shared)
	b := NewRamFarm(shared)

	_ = mustHive(t, a, "h").Catalog().Create("c")
	_ = mustCell(t, mustHive(t, a, "h"), "c", "cell").Update([]byte("shared"))

	if ok, _ := mustHive(t, b, "h").Catalog().Has("c"); !ok {
		t.Errorf("Expected the catalog to be shared")
	}
	v, _ := mustCell(t, mustHive(t, b, "h"), "c", "cell").Content()
	if string(v) != "shared" {
		t.Errorf("Expected shared content, got %q", v)
	}
}

func TestModifyInvalidDirective(t *testing.T) {
	cell := mustCell(t, mustHive(t, NewRamFarm(nil), "h"), "c", "doc")
	_ = cell.Modify(doc.Add("root"))
	// a second root is not allowed
	if err := cell.Modify(doc.XPath("/root"), doc.Up(), doc.Add("other")); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Expected invalid operation, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	cfg := common.DefaultFarmConfig()
	cfg.Backend = common.BackendRam
	cfg.Cache = common.CacheSimple
	cfg.CacheLimit = 2048
	cfg.Blacklist = []string{"*/*/tmp"}
	cfg.Synchronized = true

	f, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()
	cell := mustCell(t, mustHive(t, f, "h"), "c", "cell")
	if err := cell.Update([]byte("v")); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if v, _ := cell.Content(); string(v) != "v" {
		t.Errorf("Expected 'v', got %q", v)
	}

	cfg = common.DefaultFarmConfig()
	cfg.Root = filepath.Join(t.TempDir(), "farm")
	cfg.Codec = "cbor"
	cfg.Compression = "zstd"
	if f, err := Build(cfg); err != nil {
		t.Errorf("Build of a file farm failed: %v", err)
	} else {
		_ = f.Close()
	}

	for name, mutate := range map[string]func(c *common.FarmConfig){
		"backend":     func(c *common.FarmConfig) { c.Backend = "tape" },
		"codec":       func(c *common.FarmConfig) { c.Codec = "xml" },
		"compression": func(c *common.FarmConfig) { c.Compression = "rar" },
		"cache":       func(c *common.FarmConfig) { c.Backend = common.BackendRam; c.Cache = "lru" },
		"blacklist":   func(c *common.FarmConfig) { c.Backend = common.BackendRam; c.Cache = common.CacheSimple; c.Blacklist = []string{"["} },
	} {
		cfg := common.DefaultFarmConfig()
		cfg.Root = filepath.Join(t.TempDir(), "farm")
		mutate(&cfg)
		if _, err := Build(cfg); !errors.Is(err, store.ErrConfig) {
			t.Errorf("%s: expected config error, got %v", name, err)
		}
	}
}

func TestCatalogStoredInMetaCell(t *testing.T) {
	f := NewRamFarm(nil)
	h := mustHive(t, f, "h")
	_ = h.Catalog().Create("42")

	meta, err := h.Meta(store.CatalogCell)
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}
	d, _ := meta.Document()
	nodes, _ := d.Select("/" + catalog.RootName + "/" + catalog.EntryName)
	if len(nodes) != 1 {
		t.Errorf("Expected one catalog entry in the meta cell, got %s", d)
	}
}
