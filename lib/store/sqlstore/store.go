package sqlstore

import (
	"context"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/serializer"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"runtime"
	"sort"
	"strings"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var log = logger.GetLogger("store")

// content kinds of the kind column
const (
	kindBinary   int64 = 1
	kindDocument int64 = 2
)

const schema = `
CREATE TABLE IF NOT EXISTS cells (
	key  TEXT PRIMARY KEY,
	kind INTEGER NOT NULL,
	data BLOB NOT NULL
) WITHOUT ROWID;
`

// Options configures the SQLite store
type Options struct {
	Serializer serializer.IDocSerializer // Encoding of document cells (nil = cbor)
	PoolSize   int                       // Number of connections (0 = max(NumCPU, 4))
}

// Store keeps all cells in a single table of an embedded SQLite database.
// It implements store.IStore and must be closed after use.
type Store struct {
	pool       *sqlitex.Pool
	path       string
	serializer serializer.IDocSerializer
}

// NewSQLiteStore opens (or creates) the database at path. The parent directory must exist.
func NewSQLiteStore(path string, opts *Options) (*Store, error) {
	if path == "" {
		return nil, store.NewError(store.RetCConfigError, "sqlite store path must not be empty")
	}
	if opts == nil {
		opts = &Options{}
	}
	ser := opts.Serializer
	if ser == nil {
		ser = serializer.NewCBORSerializer()
	}
	poolSize := opts.PoolSize
	if poolSize <= 0 {
		poolSize = max(runtime.NumCPU(), 4)
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, store.Errorf(store.RetCConfigError, "can't open sqlite database %s: %v", path, err)
	}

	s := &Store{
		pool:       pool,
		path:       path,
		serializer: ser,
	}

	// surface schema errors on construction instead of the first operation
	if err := s.withConn(func(*sqlite.Conn) error { return nil }); err != nil {
		_ = pool.Close()
		return nil, store.Errorf(store.RetCConfigError, "can't prepare sqlite database %s: %v", path, err)
	}
	log.Infof("opened sqlite store %s (pool size %d)", path, poolSize)
	return s, nil
}

// prepareConnection applies the pragmas and the schema, once per connection
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return err
		}
	}
	return sqlitex.ExecuteScript(conn, schema, nil)
}

// Close closes all connections of the store.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return store.Errorf(store.RetCInternalError, "closing %s: %v", s.path, err)
	}
	log.Infof("closed sqlite store %s", s.path)
	return nil
}

func (s *Store) withConn(fn func(conn *sqlite.Conn) error) error {
	conn, err := s.pool.Take(context.Background())
	if err != nil {
		return store.Errorf(store.RetCInternalError, "take connection: %v", err)
	}
	defer s.pool.Put(conn)
	return fn(conn)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store) Binary(key string) ([]byte, error) {
	key, err := store.CheckCellKey(key)
	if err != nil {
		return nil, err
	}
	kind, data, found, err := s.load(key)
	if err != nil || !found {
		return nil, err
	}
	if kind != kindBinary {
		return nil, store.Errorf(store.RetCUsageConflict, "%s holds a document", key)
	}
	return data, nil
}

func (s *Store) Document(key string) (*doc.Document, error) {
	key, err := store.CheckCellKey(key)
	if err != nil {
		return nil, err
	}
	kind, data, found, err := s.load(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return doc.New(), nil
	}
	if kind != kindDocument {
		return nil, store.Errorf(store.RetCUsageConflict, "%s holds binary content", key)
	}
	d, err := s.serializer.Deserialize(data)
	if err != nil {
		return nil, store.Errorf(store.RetCInternalError, "can't decode %s as %s: %v", key, s.serializer.Name(), err)
	}
	return d, nil
}

func (s *Store) Update(key string, value []byte) error {
	key, err := store.CheckCellKey(key)
	if err != nil {
		return err
	}
	if len(value) == 0 {
		return s.remove(key)
	}
	return s.put(key, kindBinary, value)
}

func (s *Store) UpdateDocument(key string, d *doc.Document) error {
	key, err := store.CheckCellKey(key)
	if err != nil {
		return err
	}
	if d.IsEmpty() {
		return s.remove(key)
	}
	data, err := s.serializer.Serialize(d)
	if err != nil {
		return store.Errorf(store.RetCInternalError, "can't encode %s as %s: %v", key, s.serializer.Name(), err)
	}
	return s.put(key, kindDocument, data)
}

func (s *Store) Has(key string) (bool, error) {
	key, err := store.CheckCellKey(key)
	if err != nil {
		return false, err
	}
	found := false
	err = s.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT 1 FROM cells WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(*sqlite.Stmt) error {
				found = true
				return nil
			},
		})
	})
	if err != nil {
		return false, store.Errorf(store.RetCInternalError, "has %s: %v", key, err)
	}
	return found, nil
}

func (s *Store) Keys(prefix string) ([]string, error) {
	prefix = store.NormalizeKey(prefix)
	query := "SELECT key FROM cells"
	var args []any
	if prefix != "" {
		prefix += "/"
		// '0' is the successor of '/', so this selects every key starting with prefix
		query += " WHERE key >= ? AND key < ?"
		args = []any{prefix, strings.TrimSuffix(prefix, "/") + "0"}
	}

	seen := make(map[string]struct{})
	names := make([]string, 0)
	err := s.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rest := strings.TrimPrefix(stmt.ColumnText(0), prefix)
				name, _, _ := strings.Cut(rest, "/")
				if _, dup := seen[name]; !dup && name != "" {
					seen[name] = struct{}{}
					names = append(names, name)
				}
				return nil
			},
		})
	})
	if err != nil {
		return nil, store.Errorf(store.RetCInternalError, "keys %s: %v", prefix, err)
	}
	sort.Strings(names)
	return names, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func (s *Store) load(key string) (kind int64, data []byte, found bool, err error) {
	err = s.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT kind, data FROM cells WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				kind = stmt.ColumnInt64(0)
				data = make([]byte, stmt.ColumnLen(1))
				stmt.ColumnBytes(1, data)
				return nil
			},
		})
	})
	if err != nil {
		return 0, nil, false, store.Errorf(store.RetCInternalError, "load %s: %v", key, err)
	}
	return kind, data, found, nil
}

func (s *Store) put(key string, kind int64, data []byte) error {
	err := s.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO cells (key, kind, data) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, data = excluded.data`,
			&sqlitex.ExecOptions{Args: []any{key, kind, data}})
	})
	if err != nil {
		return store.Errorf(store.RetCInternalError, "update %s: %v", key, err)
	}
	log.Debugf("stored %s (%d bytes)", key, len(data))
	return nil
}

func (s *Store) remove(key string) error {
	err := s.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "DELETE FROM cells WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
		})
	})
	if err != nil {
		return store.Errorf(store.RetCInternalError, "remove %s: %v", key, err)
	}
	return nil
}
