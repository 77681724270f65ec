package fstore

import (
	"errors"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/afero"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

var log = logger.GetLogger("store")

// tmpPrefix marks files that are being written, they are never listed
const tmpPrefix = ".tmp-"

type storeImpl struct {
	fs    afero.Fs
	root  string
	opts  *Options
	codec codec

	// lazy root creation
	ready   atomic.Bool
	mu      sync.Mutex
	rootErr error
}

// NewFileStore creates a store keeping every cell in a file below root on the local disk.
// The root directory is created on first use. Options may be nil.
func NewFileStore(root string, opts *Options) (store.IStore, error) {
	return NewFileStoreFs(afero.NewOsFs(), root, opts)
}

// NewFileStoreFs is like NewFileStore but works on the given file system.
func NewFileStoreFs(fsys afero.Fs, root string, opts *Options) (store.IStore, error) {
	if root == "" {
		return nil, store.NewError(store.RetCConfigError, "file store root must not be empty")
	}
	opts = opts.withDefaults()
	c, err := newCodec(opts.Compression)
	if err != nil {
		return nil, store.Errorf(store.RetCConfigError, "file store: %v", err)
	}
	return &storeImpl{
		fs:    fsys,
		root:  filepath.Clean(root),
		opts:  opts,
		codec: c,
	}, nil
}

// ensureRoot creates the root directory exactly once. A failure is stored and returned
// by every later call without retrying.
//
// Thread-safety: the atomic flag serves the common path, the mutex serializes the creation.
func (s *storeImpl) ensureRoot() error {
	if s.ready.Load() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready.Load() {
		return nil
	}
	if s.rootErr != nil {
		return s.rootErr
	}
	if err := s.fs.MkdirAll(s.root, s.opts.DirMode); err != nil {
		s.rootErr = store.Errorf(store.RetCConfigError, "can't create root directory %s: %v", s.root, err)
		log.Errorf("%v", s.rootErr)
		return s.rootErr
	}
	s.ready.Store(true)
	log.Infof("using root directory %s", s.root)
	return nil
}

// path maps a key to its file, creating the root if necessary
func (s *storeImpl) path(key string, cell bool) (string, error) {
	if err := s.ensureRoot(); err != nil {
		return "", err
	}
	if cell {
		var err error
		if key, err = store.CheckCellKey(key); err != nil {
			return "", err
		}
	} else {
		key = store.NormalizeKey(key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Binary(key string) ([]byte, error) {
	p, err := s.path(key, true)
	if err != nil {
		return nil, err
	}
	return s.read(p)
}

func (s *storeImpl) Document(key string) (*doc.Document, error) {
	p, err := s.path(key, true)
	if err != nil {
		return nil, err
	}
	data, err := s.read(p)
	if err != nil {
		return nil, err
	}
	d, err := s.opts.Serializer.Deserialize(data)
	if err != nil {
		return nil, store.Errorf(store.RetCInternalError, "can't decode %s as %s: %v", p, s.opts.Serializer.Name(), err)
	}
	return d, nil
}

func (s *storeImpl) Update(key string, value []byte) error {
	p, err := s.path(key, true)
	if err != nil {
		return err
	}
	if len(value) == 0 {
		return s.remove(p)
	}
	return s.write(p, value)
}

func (s *storeImpl) UpdateDocument(key string, d *doc.Document) error {
	p, err := s.path(key, true)
	if err != nil {
		return err
	}
	if d.IsEmpty() {
		return s.remove(p)
	}
	data, err := s.opts.Serializer.Serialize(d)
	if err != nil {
		return store.Errorf(store.RetCInternalError, "can't encode %s as %s: %v", p, s.opts.Serializer.Name(), err)
	}
	return s.write(p, data)
}

func (s *storeImpl) Has(key string) (bool, error) {
	p, err := s.path(key, true)
	if err != nil {
		return false, err
	}
	info, err := s.fs.Stat(p)
	if notExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *storeImpl) Keys(prefix string) ([]string, error) {
	dir, err := s.path(prefix, false)
	if err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(s.fs, dir)
	if notExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), tmpPrefix) {
			continue
		}
		// combs whose cells were all removed leave an empty directory behind
		if e.IsDir() && !s.hasEntries(filepath.Join(dir, e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// --------------------------------------------------------------------------
// File Helper
// --------------------------------------------------------------------------

func (s *storeImpl) read(p string) ([]byte, error) {
	info, err := s.fs.Stat(p)
	if notExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, store.Errorf(store.RetCInvalidOperation, "%s is a directory", p)
	}
	raw, err := afero.ReadFile(s.fs, p)
	if notExist(err) {
		// removed concurrently
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	data, err := s.codec.decode(raw)
	if err != nil {
		return nil, store.Errorf(store.RetCInternalError, "can't decompress %s (%s): %v", p, s.opts.Compression, err)
	}
	return data, nil
}

// write replaces the file at p by writing a temporary file next to it and renaming it.
func (s *storeImpl) write(p string, data []byte) error {
	encoded, err := s.codec.encode(data)
	if err != nil {
		return store.Errorf(store.RetCInternalError, "can't compress %s (%s): %v", p, s.opts.Compression, err)
	}

	dir := filepath.Dir(p)
	if err := s.fs.MkdirAll(dir, s.opts.DirMode); err != nil {
		return err
	}
	tmp, err := afero.TempFile(s.fs, dir, tmpPrefix+filepath.Base(p)+"-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(name)
		return err
	}
	if err := s.fs.Rename(name, p); err != nil {
		_ = s.fs.Remove(name)
		return err
	}
	log.Debugf("wrote %s (%d bytes)", p, len(encoded))
	return nil
}

func (s *storeImpl) remove(p string) error {
	err := s.fs.Remove(p)
	if err != nil && !notExist(err) {
		return err
	}
	log.Debugf("removed %s", p)
	return nil
}

func (s *storeImpl) hasEntries(dir string) bool {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), tmpPrefix) {
			return true
		}
	}
	return false
}

func notExist(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}
