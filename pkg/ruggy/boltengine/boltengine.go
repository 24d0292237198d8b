package boltengine

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/ruggydb/ruggy-go/pkg/ruggy"
	"github.com/ruggydb/ruggy-go/pkg/ruggy/internal/jsondoc"
)

// FileName is the bbolt file created inside the database directory.
const FileName = "ruggy.bolt"

// Engine is a bbolt-backed ruggy.Engine. The zero value is not usable; call
// New. Safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	next   uintptr
	dbs    map[uintptr]*dbState
	cols   map[uintptr]*colState
	byPath map[string]*dbState
}

// dbState is shared by every open handle on the same path. refs counts those
// handles; the bbolt file closes when it reaches zero.
type dbState struct {
	path string
	bdb  *bbolt.DB
	refs int
}

type colState struct {
	db   *dbState
	name string
}

// New creates an engine with no open databases.
func New() *Engine {
	return &Engine{
		next:   1,
		dbs:    make(map[uintptr]*dbState),
		cols:   make(map[uintptr]*colState),
		byPath: make(map[string]*dbState),
	}
}

func (e *Engine) Open(path string) uintptr {
	if path == "" {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.byPath[path]
	if st == nil {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return 0
		}
		bdb, err := bbolt.Open(filepath.Join(path, FileName), 0o600, &bbolt.Options{Timeout: time.Second})
		if err != nil {
			return 0
		}
		st = &dbState{path: path, bdb: bdb}
		e.byPath[path] = st
	}
	st.refs++
	h := e.next
	e.next++
	e.dbs[h] = st
	return h
}

func (e *Engine) CloseDatabase(db uintptr) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.dbs[db]
	if !ok {
		return
	}
	delete(e.dbs, db)
	st.refs--
	if st.refs == 0 {
		delete(e.byPath, st.path)
		_ = st.bdb.Close()
	}
}

func (e *Engine) OpenCollection(db uintptr, name string) uintptr {
	e.mu.Lock()
	st, ok := e.dbs[db]
	e.mu.Unlock()
	if !ok || name == "" {
		return 0
	}
	err := st.bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.next
	e.next++
	e.cols[h] = &colState{db: st, name: name}
	return h
}

func (e *Engine) CloseCollection(col uintptr) {
	e.mu.Lock()
	delete(e.cols, col)
	e.mu.Unlock()
}

func (e *Engine) col(h uintptr) (*colState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.cols[h]
	return st, ok
}

func (e *Engine) Insert(col uintptr, doc []byte) (string, bool) {
	st, ok := e.col(col)
	if !ok {
		return "", false
	}
	parsed, ok := jsondoc.DecodeObject(doc)
	if !ok {
		return "", false
	}
	id := uuid.NewString()
	parsed[jsondoc.IDField] = id
	enc, ok := jsondoc.EncodeDoc(parsed)
	if !ok {
		return "", false
	}
	err := st.db.bdb.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(st.name))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), enc)
	})
	if err != nil {
		return "", false
	}
	return id, true
}

func (e *Engine) FindAll(col uintptr) (string, bool) {
	return e.scan(col, nil)
}

func (e *Engine) Find(col uintptr, field, value string) (string, bool) {
	return e.scan(col, func(d map[string]any) bool {
		return jsondoc.Match(d, field, value)
	})
}

func (e *Engine) FindWithOperator(col uintptr, field, value, operator string) (string, bool) {
	return e.scan(col, func(d map[string]any) bool {
		return jsondoc.MatchOperator(d, field, value, operator)
	})
}

// scan walks the collection's bucket in key order, which is insertion order
// because keys come from the bucket sequence. Entries that fail to decode
// are skipped, matching how the native engine treats damaged lines.
func (e *Engine) scan(col uintptr, keep func(map[string]any) bool) (string, bool) {
	st, ok := e.col(col)
	if !ok {
		return "", false
	}
	out := make([]map[string]any, 0)
	err := st.db.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(st.name))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			d, ok := jsondoc.DecodeObject(v)
			if !ok {
				return nil
			}
			if keep == nil || keep(d) {
				out = append(out, d)
			}
			return nil
		})
	})
	if err != nil {
		return "", false
	}
	return jsondoc.EncodeDocs(out)
}

func (e *Engine) UpdateField(col uintptr, id, field string, value []byte) int {
	st, ok := e.col(col)
	if !ok {
		return 0
	}
	v, ok := jsondoc.DecodeValue(value)
	if !ok {
		return 0
	}
	found := false
	err := st.db.bdb.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(st.name))
		if b == nil {
			return nil
		}
		key, doc := findByID(b, id)
		if key == nil {
			return nil
		}
		doc[field] = v
		enc, ok := jsondoc.EncodeDoc(doc)
		if !ok {
			return nil
		}
		found = true
		return b.Put(key, enc)
	})
	if err != nil || !found {
		return 0
	}
	return 1
}

func (e *Engine) Delete(col uintptr, id string) int {
	st, ok := e.col(col)
	if !ok {
		return 0
	}
	found := false
	err := st.db.bdb.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(st.name))
		if b == nil {
			return nil
		}
		key, _ := findByID(b, id)
		if key == nil {
			return nil
		}
		found = true
		return b.Delete(key)
	})
	if err != nil || !found {
		return 0
	}
	return 1
}

// findByID locates the bucket entry whose document carries the given id.
// The returned key is a copy; bbolt keys are only valid during iteration.
func findByID(b *bbolt.Bucket, id string) ([]byte, map[string]any) {
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		d, ok := jsondoc.DecodeObject(v)
		if !ok {
			continue
		}
		if did, ok := jsondoc.ID(d); ok && did == id {
			return append([]byte(nil), k...), d
		}
	}
	return nil, nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

var _ ruggy.Engine = (*Engine)(nil)
