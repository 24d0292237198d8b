package ruggy

import (
	"errors"
	"fmt"
	"time"

	"github.com/ruggydb/ruggy-go/internal/native"
)

var (
	// ErrInvalidArgument indicates a required parameter was missing, empty,
	// or otherwise unusable. Raised synchronously at the violating call.
	ErrInvalidArgument = errors.New("ruggy: invalid argument")

	// ErrDatabaseClosed indicates an operation on a Database that has been
	// closed. Closed wrappers are terminal and never reopen.
	ErrDatabaseClosed = errors.New("ruggy: database is closed")

	// ErrCollectionClosed indicates an operation on a closed Collection.
	ErrCollectionClosed = errors.New("ruggy: collection is closed")

	// ErrPoolClosed indicates an operation on a closed Pool.
	ErrPoolClosed = errors.New("ruggy: pool is closed")

	// ErrInsertFailed indicates the engine refused a document without saying
	// why (its only failure signal for insert is an absent id).
	ErrInsertFailed = errors.New("ruggy: insert failed")

	// ErrNotBuilt reports that the binary was built without the native engine
	// and no alternative Engine was supplied.
	ErrNotBuilt = native.ErrNotBuilt
)

// OpenError reports that the engine returned no handle for a database path.
// The engine gives no reason, so the message enumerates the plausible ones
// without asserting which applies.
type OpenError struct {
	Path string
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("ruggy: open database at %q: engine returned no handle (the path may be invalid, unwritable, or the volume out of space)", e.Path)
}

// CollectionOpenError reports that the engine returned no handle for a named
// collection.
type CollectionOpenError struct {
	Name string
}

func (e *CollectionOpenError) Error() string {
	return fmt.Sprintf("ruggy: open collection %q: engine returned no handle", e.Name)
}

// ShutdownTimeoutError reports that CloseGracefully gave up waiting for
// in-flight operations. The pool is left open so the caller may retry or
// force Close.
type ShutdownTimeoutError struct {
	Active  int64
	Timeout time.Duration
}

func (e *ShutdownTimeoutError) Error() string {
	return fmt.Sprintf("ruggy: graceful shutdown timed out after %s with %d operation(s) still active", e.Timeout, e.Active)
}
