//go:build !cgo || windows

package native

// Stub engine for non-cgo builds and Windows. It lets the package compile
// everywhere; callers detect the situation through Available and ErrNotBuilt
// rather than through individual call failures.

// Available reports whether this build links the native Ruggy engine.
func Available() bool { return false }

// Engine signals failure on every call, the way the native ABI would: zero
// handles and absent buffers.
type Engine struct{}

func (Engine) Open(string) uintptr { return 0 }

func (Engine) CloseDatabase(uintptr) {}

func (Engine) OpenCollection(uintptr, string) uintptr { return 0 }

func (Engine) CloseCollection(uintptr) {}

func (Engine) Insert(uintptr, []byte) (string, bool) { return "", false }

func (Engine) FindAll(uintptr) (string, bool) { return "", false }

func (Engine) Find(uintptr, string, string) (string, bool) { return "", false }

func (Engine) FindWithOperator(uintptr, string, string, string) (string, bool) { return "", false }

func (Engine) UpdateField(uintptr, string, string, []byte) int { return 0 }

func (Engine) Delete(uintptr, string) int { return 0 }
