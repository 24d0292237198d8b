package ruggy

import "github.com/ruggydb/ruggy-go/internal/native"

// Engine is the fixed call surface of the underlying storage engine. Handles
// are opaque addresses meaningful only when passed back to the same engine;
// zero is the universal invalid/absent sentinel, and each failing call signals
// it the way the C ABI does (zero handle, absent result, non-1 status).
//
// Implementations own all buffer lifetime on their side of the boundary: a
// string result returned to the wrapper is already decoded and released, so
// callers never see or free native memory. The cgo-backed default lives in
// internal/native; memengine and boltengine provide pure-Go implementations.
//
// Implementations must be safe for concurrent use: the pool shares one
// database handle across concurrent logical operations and relies on the
// engine's own locking for data access.
type Engine interface {
	// Open opens or creates the database rooted at path. Zero means failure.
	Open(path string) uintptr

	// CloseDatabase releases a database handle. Exactly one call per handle.
	CloseDatabase(db uintptr)

	// OpenCollection allocates a fresh handle for the named collection; a
	// later CloseCollection releases only that handle, not the collection's
	// data. Zero means failure.
	OpenCollection(db uintptr, name string) uintptr

	// CloseCollection releases a collection handle. Exactly one call per
	// handle.
	CloseCollection(col uintptr)

	// Insert stores a JSON object and returns its engine-assigned id.
	Insert(col uintptr, doc []byte) (id string, ok bool)

	// FindAll returns the whole collection as a JSON array.
	FindAll(col uintptr) (result string, ok bool)

	// Find returns documents whose field exactly matches value, as a JSON
	// array.
	Find(col uintptr, field, value string) (result string, ok bool)

	// FindWithOperator is Find with an engine-interpreted operator token; the
	// wrapper passes the token through verbatim.
	FindWithOperator(col uintptr, field, value, operator string) (result string, ok bool)

	// UpdateField sets field to the given JSON value on the document with the
	// given id. 1 means success; any other value is failure.
	UpdateField(col uintptr, id, field string, value []byte) int

	// Delete removes the document with the given id. Same status mapping as
	// UpdateField.
	Delete(col uintptr, id string) int
}

// NativeAvailable reports whether this binary was built with the native Ruggy
// engine linked in. When it returns false, Open with default Options fails
// with ErrNotBuilt and callers should supply a pure-Go Engine instead.
func NativeAvailable() bool { return native.Available() }

func defaultEngine() Engine { return native.NewEngine() }
