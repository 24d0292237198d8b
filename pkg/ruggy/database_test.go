package ruggy_test

import (
	"errors"
	"testing"

	"github.com/ruggydb/ruggy-go/pkg/ruggy"
	"github.com/ruggydb/ruggy-go/pkg/ruggy/memengine"
)

func TestOpenValidation(t *testing.T) {
	if _, err := ruggy.OpenWithOptions("", ruggy.Options{Engine: memengine.New()}); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Fatalf("empty path: %v", err)
	}
}

func TestOpenFailure(t *testing.T) {
	eng := memengine.NewWithFaults(memengine.Faults{FailOpen: true})
	_, err := ruggy.OpenWithOptions("/data/test", ruggy.Options{Engine: eng})
	var oe *ruggy.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *OpenError, got %v", err)
	}
	if oe.Path != "/data/test" {
		t.Errorf("OpenError.Path = %q", oe.Path)
	}
}

func TestCollectionCaching(t *testing.T) {
	db := newTestDB(t, memengine.New())

	first, err := db.Collection("users")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	second, err := db.Collection("users")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	if first != second {
		t.Error("repeated lookups should return the cached wrapper")
	}

	other, err := db.CreateCollection("orders")
	if err != nil {
		t.Fatalf("createCollection: %v", err)
	}
	if other == first {
		t.Error("distinct names must not share a wrapper")
	}
	if got := db.Stats().CachedCollections; got != 2 {
		t.Errorf("cached collections = %d, want 2", got)
	}
}

func TestCollectionCacheEviction(t *testing.T) {
	db := newTestDB(t, memengine.New())

	stale := openUsers(t, db)
	if err := stale.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	fresh, err := db.Collection("users")
	if err != nil {
		t.Fatalf("collection after external close: %v", err)
	}
	if fresh == stale {
		t.Fatal("closed wrapper served from cache")
	}
	if !fresh.IsOpen() {
		t.Fatal("replacement wrapper is not open")
	}
	if _, err := fresh.Insert(ruggy.Document{"name": "John Doe"}); err != nil {
		t.Fatalf("insert through replacement: %v", err)
	}
}

func TestCollectionValidation(t *testing.T) {
	db := newTestDB(t, memengine.New())
	if _, err := db.Collection(""); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("empty name: %v", err)
	}
}

func TestCollectionOpenFailure(t *testing.T) {
	eng := memengine.New()
	db := newTestDB(t, eng)
	eng.SetFaults(memengine.Faults{FailCollections: true})

	_, err := db.Collection("users")
	var ce *ruggy.CollectionOpenError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CollectionOpenError, got %v", err)
	}
	if ce.Name != "users" {
		t.Errorf("CollectionOpenError.Name = %q", ce.Name)
	}
}

func TestCascadeClose(t *testing.T) {
	eng := memengine.New()
	db := newTestDB(t, eng)
	users := openUsers(t, db)
	orders, err := db.Collection("orders")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if db.IsOpen() {
		t.Error("database still open")
	}
	if users.IsOpen() || orders.IsOpen() {
		t.Error("cached collections must close with the database")
	}
	if _, err := users.FindAll(); !errors.Is(err, ruggy.ErrCollectionClosed) {
		t.Errorf("findAll after cascade close: %v", err)
	}
	if _, err := db.Collection("users"); !errors.Is(err, ruggy.ErrDatabaseClosed) {
		t.Errorf("collection on closed database: %v", err)
	}
	if n := eng.OpenHandles(); n != 0 {
		t.Errorf("engine reports %d leaked handles", n)
	}
}

func TestCloseIdempotent(t *testing.T) {
	db := newTestDB(t, memengine.New())
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestWithCollection(t *testing.T) {
	eng := memengine.New()
	db := newTestDB(t, eng)

	var seen *ruggy.Collection
	err := db.WithCollection("users", func(c *ruggy.Collection) error {
		seen = c
		_, err := c.Insert(ruggy.Document{"name": "John Doe"})
		return err
	})
	if err != nil {
		t.Fatalf("withCollection: %v", err)
	}
	if seen.IsOpen() {
		t.Error("scoped collection must be closed after the callback")
	}
	if got := db.Stats().CachedCollections; got != 0 {
		t.Errorf("cache holds %d entries after scoped use", got)
	}
	// Only the database handle should remain.
	if n := eng.OpenHandles(); n != 1 {
		t.Errorf("engine reports %d handles, want 1", n)
	}

	// The data is still there for the next use.
	err = db.WithCollection("users", func(c *ruggy.Collection) error {
		docs, err := c.FindAll()
		if err != nil {
			return err
		}
		if len(docs) != 1 {
			t.Errorf("scoped reuse sees %d docs", len(docs))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("second withCollection: %v", err)
	}
}

func TestWithCollectionPropagatesError(t *testing.T) {
	db := newTestDB(t, memengine.New())

	sentinel := errors.New("boom")
	err := db.WithCollection("users", func(c *ruggy.Collection) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("callback error not propagated: %v", err)
	}
	if err := db.WithCollection("users", nil); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("nil callback: %v", err)
	}
}

func TestWithDatabase(t *testing.T) {
	eng := memengine.New()

	var inner *ruggy.Database
	err := ruggy.WithDatabaseOptions("/data/test", ruggy.Options{Engine: eng}, func(db *ruggy.Database) error {
		inner = db
		return db.WithCollection("users", func(c *ruggy.Collection) error {
			_, err := c.Insert(ruggy.Document{"name": "Jane Doe"})
			return err
		})
	})
	if err != nil {
		t.Fatalf("withDatabase: %v", err)
	}
	if inner.IsOpen() {
		t.Error("database must be closed after the callback")
	}
	if n := eng.OpenHandles(); n != 0 {
		t.Errorf("engine reports %d leaked handles", n)
	}
}

func TestWithDatabaseOpenFailure(t *testing.T) {
	eng := memengine.NewWithFaults(memengine.Faults{FailOpen: true})
	err := ruggy.WithDatabaseOptions("/data/test", ruggy.Options{Engine: eng}, func(db *ruggy.Database) error {
		t.Fatal("callback must not run when open fails")
		return nil
	})
	var oe *ruggy.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *OpenError, got %v", err)
	}
}

func TestDatabaseStats(t *testing.T) {
	db := newTestDB(t, memengine.New())
	openUsers(t, db)

	stats := db.Stats()
	if stats.Path != "/data/test" {
		t.Errorf("stats path = %q", stats.Path)
	}
	if stats.CachedCollections != 1 {
		t.Errorf("cached collections = %d", stats.CachedCollections)
	}
	if stats.DecodeErrors != 0 {
		t.Errorf("decode errors = %d", stats.DecodeErrors)
	}
}
