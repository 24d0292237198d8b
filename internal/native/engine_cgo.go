//go:build cgo && !windows

package native

/*
#cgo LDFLAGS: -lruggy
#cgo linux LDFLAGS: -L/usr/local/lib
#cgo darwin LDFLAGS: -L/usr/local/lib

#include <stdint.h>
#include <stdlib.h>

typedef struct ruggy_database ruggy_database;
typedef struct ruggy_collection ruggy_collection;

extern ruggy_database* ruggy_open(const char* path);
extern void ruggy_db_free(ruggy_database* db);
extern ruggy_collection* ruggy_get_collection(ruggy_database* db, const char* name);
extern void ruggy_col_free(ruggy_collection* col);
extern char* ruggy_insert(ruggy_collection* col, const char* json);
extern char* ruggy_find_all(ruggy_collection* col);
extern char* ruggy_find(ruggy_collection* col, const char* field, const char* value);
extern char* ruggy_find_op(ruggy_collection* col, const char* field, const char* value, const char* op);
extern int32_t ruggy_update_field(ruggy_collection* col, const char* id, const char* field, const char* value_json);
extern int32_t ruggy_delete(ruggy_collection* col, const char* id);
extern void ruggy_str_free(char* s);
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// Available reports whether this build links the native Ruggy engine.
func Available() bool { return true }

// Engine issues calls against the linked libruggy C ABI. The zero value is
// ready to use; methods are safe for concurrent use because the engine does
// its own internal locking.
type Engine struct{}

// Handles originate in the native allocator and are never Go pointers, so the
// uintptr round trip below is stable across garbage collections.

func dbPtr(h uintptr) *C.ruggy_database { return (*C.ruggy_database)(unsafe.Pointer(h)) }
func colPtr(h uintptr) *C.ruggy_collection { return (*C.ruggy_collection)(unsafe.Pointer(h)) }
func charPtr(b []byte) *C.char { return (*C.char)(unsafe.Pointer(&b[0])) }

// takeString decodes a native string result and releases it. Every buffer the
// engine hands back is freed exactly once, here, and never touched afterward.
func takeString(s *C.char) (string, bool) {
	if s == nil {
		return "", false
	}
	out, ok := goString(unsafe.Pointer(s))
	C.ruggy_str_free(s)
	return out, ok
}

func (Engine) Open(path string) uintptr {
	p := cString(path)
	h := C.ruggy_open(charPtr(p))
	runtime.KeepAlive(p)
	return uintptr(unsafe.Pointer(h))
}

func (Engine) CloseDatabase(db uintptr) {
	if !validHandle(db) {
		return
	}
	C.ruggy_db_free(dbPtr(db))
}

func (Engine) OpenCollection(db uintptr, name string) uintptr {
	if !validHandle(db) {
		return 0
	}
	n := cString(name)
	h := C.ruggy_get_collection(dbPtr(db), charPtr(n))
	runtime.KeepAlive(n)
	return uintptr(unsafe.Pointer(h))
}

func (Engine) CloseCollection(col uintptr) {
	if !validHandle(col) {
		return
	}
	C.ruggy_col_free(colPtr(col))
}

func (Engine) Insert(col uintptr, doc []byte) (string, bool) {
	if !validHandle(col) {
		return "", false
	}
	j := cBytes(doc)
	id := C.ruggy_insert(colPtr(col), charPtr(j))
	runtime.KeepAlive(j)
	return takeString(id)
}

func (Engine) FindAll(col uintptr) (string, bool) {
	if !validHandle(col) {
		return "", false
	}
	return takeString(C.ruggy_find_all(colPtr(col)))
}

func (Engine) Find(col uintptr, field, value string) (string, bool) {
	if !validHandle(col) {
		return "", false
	}
	f, v := cString(field), cString(value)
	res := C.ruggy_find(colPtr(col), charPtr(f), charPtr(v))
	runtime.KeepAlive(f)
	runtime.KeepAlive(v)
	return takeString(res)
}

func (Engine) FindWithOperator(col uintptr, field, value, operator string) (string, bool) {
	if !validHandle(col) {
		return "", false
	}
	f, v, op := cString(field), cString(value), cString(operator)
	res := C.ruggy_find_op(colPtr(col), charPtr(f), charPtr(v), charPtr(op))
	runtime.KeepAlive(f)
	runtime.KeepAlive(v)
	runtime.KeepAlive(op)
	return takeString(res)
}

func (Engine) UpdateField(col uintptr, id, field string, value []byte) int {
	if !validHandle(col) {
		return 0
	}
	i, f, v := cString(id), cString(field), cBytes(value)
	rc := C.ruggy_update_field(colPtr(col), charPtr(i), charPtr(f), charPtr(v))
	runtime.KeepAlive(i)
	runtime.KeepAlive(f)
	runtime.KeepAlive(v)
	return int(rc)
}

func (Engine) Delete(col uintptr, id string) int {
	if !validHandle(col) {
		return 0
	}
	i := cString(id)
	rc := C.ruggy_delete(colPtr(col), charPtr(i))
	runtime.KeepAlive(i)
	return int(rc)
}
