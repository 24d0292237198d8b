package ruggy

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/ruggydb/ruggy-go/pkg/ruggy/logging"
)

const (
	// DefaultShutdownTimeout bounds CloseGracefully when no timeout is given.
	DefaultShutdownTimeout = 5 * time.Second

	shutdownPollInterval = 10 * time.Millisecond
)

// PoolOptions configures a Pool.
type PoolOptions struct {
	// Eager opens the underlying database at construction instead of on
	// first use. Open failures then surface from NewPoolWithOptions.
	Eager bool

	// Engine and Logger are passed through to the pooled Database.
	Engine Engine
	Logger logging.Logger

	// MaxConcurrentOps caps the number of operations inside WithDatabase at
	// any moment. Zero means unlimited.
	MaxConcurrentOps int64

	// MaxOpsPerSecond rate-limits operation starts. Zero means unlimited.
	MaxOpsPerSecond float64
}

// Pool manages a single shared database connection. The connection opens
// lazily, is replaced transparently if it is found dead, and is handed to
// callers only for the duration of a WithDatabase or WithCollection call.
// Pool is safe for concurrent use.
type Pool struct {
	path string
	opts PoolOptions
	log  logging.Logger

	sem     *semaphore.Weighted
	limiter *rate.Limiter

	mu       sync.Mutex
	db       *Database
	closed   bool
	draining bool

	active atomic.Int64
	total  atomic.Int64
}

// PoolStats is a read-only snapshot of a Pool's counters.
type PoolStats struct {
	Path             string
	Connected        bool
	Closed           bool
	ActiveOperations int64
	TotalOperations  int64
	DecodeErrors     int64
}

// NewPool creates a pool over the database at path with default options.
// The connection is not opened until the first operation.
func NewPool(path string) (*Pool, error) {
	return NewPoolWithOptions(path, PoolOptions{})
}

// NewPoolWithOptions creates a pool over the database at path.
func NewPoolWithOptions(path string, opts PoolOptions) (*Pool, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path must not be empty", ErrInvalidArgument)
	}
	log := opts.Logger
	if log == nil {
		log = logging.New(nil)
	}
	p := &Pool{
		path: path,
		opts: opts,
		log:  log,
	}
	if opts.MaxConcurrentOps > 0 {
		p.sem = semaphore.NewWeighted(opts.MaxConcurrentOps)
	}
	if opts.MaxOpsPerSecond > 0 {
		burst := int(opts.MaxOpsPerSecond)
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(opts.MaxOpsPerSecond), burst)
	}
	if opts.Eager {
		p.mu.Lock()
		err := p.ensureConnectionLocked()
		p.mu.Unlock()
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Path returns the database path the pool was created for.
func (p *Pool) Path() string { return p.path }

// ensureConnectionLocked opens the connection if the pool has none, and
// replaces it if the one it holds has been closed behind the pool's back.
// Callers must hold p.mu.
func (p *Pool) ensureConnectionLocked() error {
	if p.closed || p.draining {
		return ErrPoolClosed
	}
	if p.db != nil && p.db.IsOpen() {
		return nil
	}
	if p.db != nil {
		p.log.Warn(context.Background(), "pooled connection was closed, reconnecting", "path", p.path)
		p.db = nil
	}
	db, err := OpenWithOptions(p.path, Options{Engine: p.opts.Engine, Logger: p.log})
	if err != nil {
		return err
	}
	p.db = db
	return nil
}

// checkout hands out the live connection and marks one operation active.
// The caller must decrement p.active when the operation finishes.
func (p *Pool) checkout() (*Database, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureConnectionLocked(); err != nil {
		return nil, err
	}
	p.active.Add(1)
	p.total.Add(1)
	return p.db, nil
}

// WithDatabase runs fn against the pooled connection. The connection is
// validated (and reopened if necessary) before fn runs, and the operation is
// counted in the pool's active set for the duration of the call.
func (p *Pool) WithDatabase(ctx context.Context, fn func(db *Database) error) error {
	if fn == nil {
		return fmt.Errorf("%w: operation must not be nil", ErrInvalidArgument)
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if p.sem != nil {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		defer p.sem.Release(1)
	}
	db, err := p.checkout()
	if err != nil {
		return err
	}
	defer p.active.Add(-1)
	return fn(db)
}

// WithCollection runs fn against the named collection of the pooled
// connection. The collection is opened for the call and closed afterwards.
func (p *Pool) WithCollection(ctx context.Context, name string, fn func(c *Collection) error) error {
	if fn == nil {
		return fmt.Errorf("%w: operation must not be nil", ErrInvalidArgument)
	}
	return p.WithDatabase(ctx, func(db *Database) error {
		return db.WithCollection(name, fn)
	})
}

// Close closes the pool immediately, without waiting for active operations.
// Idempotent; a closed Pool is terminal.
func (p *Pool) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.draining = false
	var err error
	if p.db != nil {
		err = p.db.Close()
		p.db = nil
	}
	p.log.Debug(context.Background(), "pool closed", "path", p.path)
	return err
}

// CloseGracefully refuses new operations, waits up to timeout for active
// operations to drain, then closes the pool. A non-positive timeout means
// DefaultShutdownTimeout. If the active count has not reached zero by the
// deadline the pool is left open, accepting operations again, and a
// *ShutdownTimeoutError is returned.
func (p *Pool) CloseGracefully(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.draining = true
	p.mu.Unlock()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(shutdownPollInterval)
	defer ticker.Stop()
	for p.active.Load() != 0 {
		if time.Now().After(deadline) {
			n := p.active.Load()
			if n == 0 {
				break
			}
			p.mu.Lock()
			p.draining = false
			p.mu.Unlock()
			p.log.Warn(context.Background(), "graceful shutdown timed out", "path", p.path, "active", n, "timeout", timeout)
			return &ShutdownTimeoutError{Active: n, Timeout: timeout}
		}
		<-ticker.C
	}
	return p.Close()
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := PoolStats{
		Path:             p.path,
		Closed:           p.closed,
		ActiveOperations: p.active.Load(),
		TotalOperations:  p.total.Load(),
	}
	if p.db != nil {
		s.Connected = p.db.IsOpen()
		s.DecodeErrors = p.db.Stats().DecodeErrors
	}
	return s
}
