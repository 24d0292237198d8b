package ruggy

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ruggydb/ruggy-go/pkg/ruggy/logging"
)

// Collection owns exactly one native collection handle and is the only thing
// that will ever free it. Instances come from Database.Collection, never from
// callers directly. Once closed, a Collection is terminal; the Database cache
// evicts closed entries on lookup and hands out a fresh wrapper instead.
type Collection struct {
	mu     sync.Mutex
	handle uintptr

	name string
	eng  Engine
	log  logging.Logger

	// decodeErrs belongs to the owning Database; read paths bump it when they
	// swallow malformed engine output.
	decodeErrs *atomic.Int64
}

func newCollection(handle uintptr, name string, eng Engine, log logging.Logger, decodeErrs *atomic.Int64) *Collection {
	c := &Collection{handle: handle, name: name, eng: eng, log: log, decodeErrs: decodeErrs}
	runtime.SetFinalizer(c, func(c *Collection) { _ = c.Close() })
	return c
}

// Name returns the collection's logical name.
func (c *Collection) Name() string { return c.name }

// IsOpen reports whether the collection still holds its native handle.
func (c *Collection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != 0
}

func (c *Collection) liveHandle() (uintptr, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return 0, ErrCollectionClosed
	}
	return c.handle, nil
}

// Insert stores doc and returns its engine-assigned id. The document must be
// a non-nil JSON object; the id also appears in the stored document under
// IDField.
func (c *Collection) Insert(doc Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: document must not be nil", ErrInvalidArgument)
	}
	h, err := c.liveHandle()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: document not encodable: %v", ErrInvalidArgument, err)
	}
	id, ok := c.eng.Insert(h, payload)
	runtime.KeepAlive(c)
	if !ok {
		return "", fmt.Errorf("%w: collection %q", ErrInsertFailed, c.name)
	}
	return id, nil
}

// FindAll returns every document in the collection. A failed engine call or
// unparseable result yields an empty slice, never an error: read operations
// only fail for lifecycle misuse. Swallowed decode failures are reported
// through the logger and the database's decode-error counter.
func (c *Collection) FindAll() ([]Document, error) {
	h, err := c.liveHandle()
	if err != nil {
		return nil, err
	}
	res, ok := c.eng.FindAll(h)
	runtime.KeepAlive(c)
	return c.decodeDocs("find_all", res, ok), nil
}

// Find returns documents whose field exactly matches value. The value is
// compared by its string form; type-aware matching is not offered at this
// layer. Result handling matches FindAll.
func (c *Collection) Find(field string, value any) ([]Document, error) {
	if field == "" {
		return nil, fmt.Errorf("%w: field must not be empty", ErrInvalidArgument)
	}
	h, err := c.liveHandle()
	if err != nil {
		return nil, err
	}
	res, ok := c.eng.Find(h, field, fmt.Sprint(value))
	runtime.KeepAlive(c)
	return c.decodeDocs("find", res, ok), nil
}

// FindWithOperator is Find with an operator token the engine interprets
// (`=`, `like`, `starts_with`, `ends_with`, `contains`, ...). The token is
// passed through verbatim; the wrapper neither validates nor interprets it.
func (c *Collection) FindWithOperator(field string, value any, operator string) ([]Document, error) {
	if field == "" {
		return nil, fmt.Errorf("%w: field must not be empty", ErrInvalidArgument)
	}
	if operator == "" {
		return nil, fmt.Errorf("%w: operator must not be empty", ErrInvalidArgument)
	}
	h, err := c.liveHandle()
	if err != nil {
		return nil, err
	}
	res, ok := c.eng.FindWithOperator(h, field, fmt.Sprint(value), operator)
	runtime.KeepAlive(c)
	return c.decodeDocs("find_op", res, ok), nil
}

// UpdateField sets field to value on the document with the given id. The
// value is JSON-encoded, so strings, numbers, booleans, nil, maps and slices
// are all representable. It returns true only when the engine reports
// success; "not found" and engine errors are indistinguishable here.
func (c *Collection) UpdateField(id, field string, value any) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: id must not be empty", ErrInvalidArgument)
	}
	if field == "" {
		return false, fmt.Errorf("%w: field must not be empty", ErrInvalidArgument)
	}
	h, err := c.liveHandle()
	if err != nil {
		return false, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("%w: value not encodable: %v", ErrInvalidArgument, err)
	}
	rc := c.eng.UpdateField(h, id, field, payload)
	runtime.KeepAlive(c)
	return rc == 1, nil
}

// Delete removes the document with the given id, reporting success with the
// same boolean mapping as UpdateField.
func (c *Collection) Delete(id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: id must not be empty", ErrInvalidArgument)
	}
	h, err := c.liveHandle()
	if err != nil {
		return false, err
	}
	rc := c.eng.Delete(h, id)
	runtime.KeepAlive(c)
	return rc == 1, nil
}

// Close frees the native handle. Further operations fail with
// ErrCollectionClosed. Calling Close again is a no-op.
func (c *Collection) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return nil
	}
	runtime.SetFinalizer(c, nil)
	c.eng.CloseCollection(c.handle)
	c.handle = 0
	return nil
}

// decodeDocs turns an engine result into documents. Both failure modes map to
// an empty slice: an absent result is the engine's "no data" signal, and a
// result that fails JSON parsing is discarded rather than surfaced, because
// read paths must never throw for data-shape reasons. The discard is recorded
// on the diagnostic channel so corruption stays observable.
func (c *Collection) decodeDocs(op, payload string, ok bool) []Document {
	if !ok {
		return []Document{}
	}
	var docs []Document
	if err := json.Unmarshal([]byte(payload), &docs); err != nil {
		c.decodeErrs.Add(1)
		c.log.Warn(context.Background(), "discarding unparseable engine result",
			"op", op,
			"collection", c.name,
			"error", err,
			logging.Redacted("payload"),
		)
		return []Document{}
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs
}
