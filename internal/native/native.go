package native

import "errors"

// ErrNotBuilt reports that the native Ruggy engine was not linked into the
// current binary. Callers can use this to fall back to a pure-Go engine.
var ErrNotBuilt = errors.New("ruggy/internal/native: native engine not built")

// NewEngine returns the engine backed by this build's native layer. On cgo
// builds it issues real calls against libruggy; otherwise every call reports
// failure the same way the native ABI does (zero handles, absent buffers).
func NewEngine() Engine { return Engine{} }
