package ruggy_test

import (
	"errors"
	"testing"

	"github.com/ruggydb/ruggy-go/pkg/ruggy"
	"github.com/ruggydb/ruggy-go/pkg/ruggy/memengine"
)

func newTestDB(t *testing.T, eng ruggy.Engine) *ruggy.Database {
	t.Helper()
	db, err := ruggy.OpenWithOptions("/data/test", ruggy.Options{Engine: eng})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func openUsers(t *testing.T, db *ruggy.Database) *ruggy.Collection {
	t.Helper()
	users, err := db.Collection("users")
	if err != nil {
		t.Fatalf("open collection: %v", err)
	}
	return users
}

func TestInsertAndFindAll(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)

	id, err := users.Insert(ruggy.Document{"name": "John Doe", "age": 30})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatal("insert returned empty id")
	}

	docs, err := users.FindAll()
	if err != nil {
		t.Fatalf("findAll: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("findAll returned %d docs, want 1", len(docs))
	}
	if docs[0].ID() != id {
		t.Errorf("document id %q, want %q", docs[0].ID(), id)
	}
	if docs[0]["name"] != "John Doe" {
		t.Errorf("name = %v", docs[0]["name"])
	}
}

func TestInsertValidation(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)

	if _, err := users.Insert(nil); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("nil document: %v", err)
	}
	if _, err := users.Insert(ruggy.Document{"ch": make(chan int)}); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("unencodable document: %v", err)
	}
}

func TestInsertEngineFailure(t *testing.T) {
	eng := memengine.New()
	db := newTestDB(t, eng)
	users := openUsers(t, db)

	eng.SetFaults(memengine.Faults{FailInserts: true})
	_, err := users.Insert(ruggy.Document{"name": "John Doe"})
	if !errors.Is(err, ruggy.ErrInsertFailed) {
		t.Fatalf("expected ErrInsertFailed, got %v", err)
	}
}

func TestFindExactMatch(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)

	mustInsert(t, users, ruggy.Document{"name": "John Doe", "age": 30})
	mustInsert(t, users, ruggy.Document{"name": "Jane Doe", "age": 25})

	docs, err := users.Find("name", "John Doe")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 1 || docs[0]["name"] != "John Doe" {
		t.Fatalf("find by name: %v", docs)
	}

	// Exact match applies to string fields only.
	docs, err = users.Find("age", 30)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("numeric field matched plain find: %v", docs)
	}

	docs, err = users.Find("name", "Nobody")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("no-match find should return empty non-nil slice, got %v", docs)
	}
}

func TestFindWithOperator(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)

	mustInsert(t, users, ruggy.Document{"name": "John Doe", "age": 30})
	mustInsert(t, users, ruggy.Document{"name": "Jane Doe", "age": 25})

	tests := []struct {
		field    string
		value    any
		operator string
		want     int
	}{
		{"name", "Doe", "contains", 2},
		{"name", "Doe", "like", 2},
		{"name", "John", "starts_with", 1},
		{"name", "Doe", "ends_with", 2},
		{"name", "John Doe", "=", 1},
		{"name", "John Doe", "eq", 1},
		{"age", 25, "=", 1},
		{"age", 25, "contains", 0},
		{"name", "Doe", "between", 0},
	}
	for _, tt := range tests {
		docs, err := users.FindWithOperator(tt.field, tt.value, tt.operator)
		if err != nil {
			t.Fatalf("findWithOperator(%q, %v, %q): %v", tt.field, tt.value, tt.operator, err)
		}
		if len(docs) != tt.want {
			t.Errorf("findWithOperator(%q, %v, %q) = %d docs, want %d", tt.field, tt.value, tt.operator, len(docs), tt.want)
		}
	}
}

func TestFindValidation(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)

	if _, err := users.Find("", "x"); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("empty field: %v", err)
	}
	if _, err := users.FindWithOperator("", "x", "="); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("empty field with operator: %v", err)
	}
	if _, err := users.FindWithOperator("name", "x", ""); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("empty operator: %v", err)
	}
}

func TestReadsSwallowEngineFailure(t *testing.T) {
	eng := memengine.New()
	db := newTestDB(t, eng)
	users := openUsers(t, db)
	mustInsert(t, users, ruggy.Document{"name": "John Doe"})

	eng.SetFaults(memengine.Faults{FailReads: true})

	docs, err := users.FindAll()
	if err != nil {
		t.Fatalf("findAll must not surface engine failure: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", docs)
	}
	if got := db.Stats().DecodeErrors; got != 0 {
		t.Errorf("engine failure should not count as decode error, counter = %d", got)
	}
}

func TestDecodeFailuresAreCounted(t *testing.T) {
	eng := memengine.New()
	db := newTestDB(t, eng)
	users := openUsers(t, db)
	mustInsert(t, users, ruggy.Document{"name": "John Doe"})

	eng.SetFaults(memengine.Faults{CorruptReads: true})

	docs, err := users.FindAll()
	if err != nil {
		t.Fatalf("findAll must not surface decode failure: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", docs)
	}
	if _, err := users.Find("name", "John Doe"); err != nil {
		t.Fatalf("find: %v", err)
	}
	if got := db.Stats().DecodeErrors; got != 2 {
		t.Errorf("decode error counter = %d, want 2", got)
	}
}

func TestUpdateField(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)
	id := mustInsert(t, users, ruggy.Document{"name": "John Doe", "age": 30})

	updated, err := users.UpdateField(id, "age", 31)
	if err != nil {
		t.Fatalf("updateField: %v", err)
	}
	if !updated {
		t.Fatal("updateField returned false for existing document")
	}

	docs, err := users.FindWithOperator("age", 31, "=")
	if err != nil {
		t.Fatalf("find updated: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("updated document not found: %v", docs)
	}

	updated, err = users.UpdateField("no-such-id", "age", 31)
	if err != nil {
		t.Fatalf("updateField unknown id: %v", err)
	}
	if updated {
		t.Error("updateField reported success for unknown id")
	}

	if _, err := users.UpdateField("", "age", 31); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("empty id: %v", err)
	}
	if _, err := users.UpdateField(id, "", 31); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("empty field: %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)
	id := mustInsert(t, users, ruggy.Document{"name": "John Doe"})
	mustInsert(t, users, ruggy.Document{"name": "Jane Doe"})

	deleted, err := users.Delete(id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("delete returned false for existing document")
	}

	deleted, err = users.Delete(id)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("second delete reported success")
	}

	docs, _ := users.FindAll()
	if len(docs) != 1 || docs[0]["name"] != "Jane Doe" {
		t.Fatalf("remaining docs: %v", docs)
	}

	if _, err := users.Delete(""); !errors.Is(err, ruggy.ErrInvalidArgument) {
		t.Errorf("empty id: %v", err)
	}
}

func TestCollectionCloseIdempotent(t *testing.T) {
	db := newTestDB(t, memengine.New())
	users := openUsers(t, db)

	if err := users.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := users.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if users.IsOpen() {
		t.Error("collection still open after close")
	}

	if _, err := users.Insert(ruggy.Document{"name": "x"}); !errors.Is(err, ruggy.ErrCollectionClosed) {
		t.Errorf("insert on closed collection: %v", err)
	}
	if _, err := users.FindAll(); !errors.Is(err, ruggy.ErrCollectionClosed) {
		t.Errorf("findAll on closed collection: %v", err)
	}
	if _, err := users.Delete("id"); !errors.Is(err, ruggy.ErrCollectionClosed) {
		t.Errorf("delete on closed collection: %v", err)
	}
}

func mustInsert(t *testing.T, c *ruggy.Collection, doc ruggy.Document) string {
	t.Helper()
	id, err := c.Insert(doc)
	if err != nil {
		t.Fatalf("insert %v: %v", doc, err)
	}
	return id
}
