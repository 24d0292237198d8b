package ruggy

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ruggydb/ruggy-go/internal/native"
	"github.com/ruggydb/ruggy-go/pkg/ruggy/logging"
)

// Options configures a Database.
type Options struct {
	// Engine overrides the storage engine backing the wrapper. Nil selects
	// this build's native engine; builds without it fail with ErrNotBuilt.
	Engine Engine

	// Logger receives wrapper diagnostics (swallowed decode failures,
	// connection churn). Nil binds to logging.New(nil).
	Logger logging.Logger
}

// Database owns one native database handle and a cache of Collection wrappers
// keyed by name. It is safe for concurrent use. Closing is terminal and
// cascades into every cached collection, whether or not other code still
// holds references to them.
type Database struct {
	mu     sync.Mutex
	handle uintptr
	cache  map[string]*Collection

	path string
	eng  Engine
	log  logging.Logger

	decodeErrs atomic.Int64
}

// DatabaseStats is a read-only snapshot of a Database's counters.
type DatabaseStats struct {
	Path              string
	CachedCollections int
	DecodeErrors      int64
}

// Open opens (or creates) the database rooted at path with default Options.
func Open(path string) (*Database, error) {
	return OpenWithOptions(path, Options{})
}

// OpenWithOptions opens (or creates) the database rooted at path.
func OpenWithOptions(path string, opts Options) (*Database, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path must not be empty", ErrInvalidArgument)
	}
	eng := opts.Engine
	if eng == nil {
		if !native.Available() {
			return nil, ErrNotBuilt
		}
		eng = defaultEngine()
	}
	log := opts.Logger
	if log == nil {
		log = logging.New(nil)
	}
	h := eng.Open(path)
	if h == 0 {
		return nil, &OpenError{Path: path}
	}
	db := &Database{
		handle: h,
		cache:  make(map[string]*Collection),
		path:   path,
		eng:    eng,
		log:    log,
	}
	runtime.SetFinalizer(db, func(db *Database) { _ = db.Close() })
	return db, nil
}

// Path returns the file-system path the database was opened at.
func (db *Database) Path() string { return db.path }

// IsOpen reports whether the database still holds its native handle.
func (db *Database) IsOpen() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.handle != 0
}

// Collection returns the named collection, opening it on first use. Repeated
// calls with the same name return the identical wrapper for as long as it
// stays open; a cached wrapper that was closed behind the cache's back is
// evicted and replaced with a fresh one.
func (db *Database) Collection(name string) (*Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name must not be empty", ErrInvalidArgument)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.handle == 0 {
		return nil, ErrDatabaseClosed
	}
	if c, ok := db.cache[name]; ok {
		if c.IsOpen() {
			return c, nil
		}
		delete(db.cache, name)
	}
	c, err := db.openCollectionLocked(name)
	if err != nil {
		return nil, err
	}
	db.cache[name] = c
	return c, nil
}

// openCollectionLocked opens a fresh wrapper around a fresh engine handle.
// Callers must hold db.mu.
func (db *Database) openCollectionLocked(name string) (*Collection, error) {
	h := db.eng.OpenCollection(db.handle, name)
	if h == 0 {
		return nil, &CollectionOpenError{Name: name}
	}
	return newCollection(h, name, db.eng, db.log, &db.decodeErrs), nil
}

// CreateCollection is an alias of Collection, offered for call sites that
// read better as creation. The engine creates collections on first access
// either way.
func (db *Database) CreateCollection(name string) (*Collection, error) {
	return db.Collection(name)
}

// WithCollection opens the named collection, runs fn against it, and closes
// it again on every exit path. The wrapper is private to the call and never
// enters the cache, so concurrent scoped uses of the same name cannot close
// each other's handle; they share data through the engine. No collection
// handle outlives a single logical use through this helper.
func (db *Database) WithCollection(name string, fn func(c *Collection) error) error {
	if fn == nil {
		return fmt.Errorf("%w: operation must not be nil", ErrInvalidArgument)
	}
	if name == "" {
		return fmt.Errorf("%w: collection name must not be empty", ErrInvalidArgument)
	}
	db.mu.Lock()
	if db.handle == 0 {
		db.mu.Unlock()
		return ErrDatabaseClosed
	}
	c, err := db.openCollectionLocked(name)
	db.mu.Unlock()
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

// Close closes every cached collection, clears the cache, and frees the
// database handle. Idempotent; a closed Database is terminal.
func (db *Database) Close() error {
	if db == nil {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.handle == 0 {
		return nil
	}
	runtime.SetFinalizer(db, nil)
	for name, c := range db.cache {
		_ = c.Close()
		delete(db.cache, name)
	}
	db.log.Debug(context.Background(), "database closed", "path", db.path)
	db.eng.CloseDatabase(db.handle)
	db.handle = 0
	return nil
}

// Stats returns a snapshot of the database's counters.
func (db *Database) Stats() DatabaseStats {
	db.mu.Lock()
	cached := len(db.cache)
	db.mu.Unlock()
	return DatabaseStats{
		Path:              db.path,
		CachedCollections: cached,
		DecodeErrors:      db.decodeErrs.Load(),
	}
}

// WithDatabase opens the database at path, runs fn against it, and closes it
// on every exit path.
func WithDatabase(path string, fn func(db *Database) error) error {
	return WithDatabaseOptions(path, Options{}, fn)
}

// WithDatabaseOptions is WithDatabase with explicit Options.
func WithDatabaseOptions(path string, opts Options, fn func(db *Database) error) error {
	if fn == nil {
		return fmt.Errorf("%w: operation must not be nil", ErrInvalidArgument)
	}
	db, err := OpenWithOptions(path, opts)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
