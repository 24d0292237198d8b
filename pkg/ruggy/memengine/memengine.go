package memengine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ruggydb/ruggy-go/pkg/ruggy"
	"github.com/ruggydb/ruggy-go/pkg/ruggy/internal/jsondoc"
)

// Faults defines which engine calls should fail, for testing wrapper
// robustness against a misbehaving storage layer. The zero value injects
// nothing.
type Faults struct {
	// FailOpen makes every Open report failure.
	FailOpen bool

	// FailOpenAfterN makes Open fail once N opens have succeeded.
	FailOpenAfterN int

	// FailCollections makes OpenCollection report failure.
	FailCollections bool

	// FailInserts makes Insert report failure.
	FailInserts bool

	// FailReads makes FindAll, Find, and FindWithOperator report failure.
	FailReads bool

	// CorruptReads makes read calls succeed but return undecodable payloads.
	CorruptReads bool

	// FailWrites makes UpdateField and Delete report failure.
	FailWrites bool
}

// Engine is an in-memory ruggy.Engine. The zero value is not usable; call
// New. Safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	next   uintptr
	dbs    map[uintptr]*database
	cols   map[uintptr]*colHandle
	stores map[string]*store
	faults Faults
	opens  int
}

// store is the per-path document storage. It outlives database handles so a
// reopened path sees earlier data, the way files on disk would.
type store struct {
	mu   sync.Mutex
	cols map[string]*collection
}

type collection struct {
	mu   sync.Mutex
	docs []map[string]any
}

type database struct {
	path  string
	store *store
}

type colHandle struct {
	name string
	col  *collection
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{
		next:   1,
		dbs:    make(map[uintptr]*database),
		cols:   make(map[uintptr]*colHandle),
		stores: make(map[string]*store),
	}
}

// NewWithFaults creates an engine with the given fault set active.
func NewWithFaults(f Faults) *Engine {
	e := New()
	e.faults = f
	return e
}

// SetFaults replaces the active fault set.
func (e *Engine) SetFaults(f Faults) {
	e.mu.Lock()
	e.faults = f
	e.mu.Unlock()
}

// OpenHandles reports the number of live database and collection handles.
// Useful for leak checks in tests.
func (e *Engine) OpenHandles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.dbs) + len(e.cols)
}

func (e *Engine) Open(path string) uintptr {
	if path == "" {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.faults.FailOpen {
		return 0
	}
	if n := e.faults.FailOpenAfterN; n > 0 && e.opens >= n {
		return 0
	}
	e.opens++
	st := e.stores[path]
	if st == nil {
		st = &store{cols: make(map[string]*collection)}
		e.stores[path] = st
	}
	h := e.next
	e.next++
	e.dbs[h] = &database{path: path, store: st}
	return h
}

func (e *Engine) CloseDatabase(db uintptr) {
	e.mu.Lock()
	delete(e.dbs, db)
	e.mu.Unlock()
}

func (e *Engine) OpenCollection(db uintptr, name string) uintptr {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.faults.FailCollections || name == "" {
		return 0
	}
	d, ok := e.dbs[db]
	if !ok {
		return 0
	}
	st := d.store
	st.mu.Lock()
	c := st.cols[name]
	if c == nil {
		c = &collection{}
		st.cols[name] = c
	}
	st.mu.Unlock()
	h := e.next
	e.next++
	e.cols[h] = &colHandle{name: name, col: c}
	return h
}

func (e *Engine) CloseCollection(col uintptr) {
	e.mu.Lock()
	delete(e.cols, col)
	e.mu.Unlock()
}

// collection resolves a handle to its backing collection along with a
// snapshot of the active faults.
func (e *Engine) collection(h uintptr) (*collection, Faults, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch, ok := e.cols[h]
	if !ok {
		return nil, Faults{}, false
	}
	return ch.col, e.faults, true
}

func (e *Engine) Insert(col uintptr, doc []byte) (string, bool) {
	c, f, ok := e.collection(col)
	if !ok || f.FailInserts {
		return "", false
	}
	parsed, ok := jsondoc.DecodeObject(doc)
	if !ok {
		return "", false
	}
	id := uuid.NewString()
	parsed[jsondoc.IDField] = id
	c.mu.Lock()
	c.docs = append(c.docs, parsed)
	c.mu.Unlock()
	return id, true
}

func (e *Engine) FindAll(col uintptr) (string, bool) {
	c, f, ok := e.collection(col)
	if !ok || f.FailReads {
		return "", false
	}
	if f.CorruptReads {
		return "{", true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return jsondoc.EncodeDocs(c.docs)
}

func (e *Engine) Find(col uintptr, field, value string) (string, bool) {
	return e.filtered(col, func(d map[string]any) bool {
		return jsondoc.Match(d, field, value)
	})
}

func (e *Engine) FindWithOperator(col uintptr, field, value, operator string) (string, bool) {
	return e.filtered(col, func(d map[string]any) bool {
		return jsondoc.MatchOperator(d, field, value, operator)
	})
}

func (e *Engine) filtered(col uintptr, keep func(map[string]any) bool) (string, bool) {
	c, f, ok := e.collection(col)
	if !ok || f.FailReads {
		return "", false
	}
	if f.CorruptReads {
		return "{", true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.docs))
	for _, d := range c.docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return jsondoc.EncodeDocs(out)
}

func (e *Engine) UpdateField(col uintptr, id, field string, value []byte) int {
	c, f, ok := e.collection(col)
	if !ok || f.FailWrites {
		return 0
	}
	v, ok := jsondoc.DecodeValue(value)
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.docs {
		if did, ok := jsondoc.ID(d); ok && did == id {
			d[field] = v
			return 1
		}
	}
	return 0
}

func (e *Engine) Delete(col uintptr, id string) int {
	c, f, ok := e.collection(col)
	if !ok || f.FailWrites {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, d := range c.docs {
		if did, ok := jsondoc.ID(d); ok && did == id {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1
		}
	}
	return 0
}

var _ ruggy.Engine = (*Engine)(nil)
