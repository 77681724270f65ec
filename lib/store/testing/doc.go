// Package testing provides a reusable test suite for store.IStore implementations.
//
// Every backend runs the suite from its own tests:
//
//	func Test(t *testing.T) {
//	    storetesting.RunStoreTests(t, "RamStore", func(t *testing.T) store.IStore {
//	        return rstore.NewRamStore(nil)
//	    })
//	}
//
// The factory receives the subtest so backends can use t.TempDir or register cleanups.
package testing
