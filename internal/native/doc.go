// Package native contains all cgo bindings to the Ruggy storage engine.
//
// # Design Principles
//
// 1. Isolation: ALL cgo and unsafe code lives in this package. No other
//    package may import "C" or "unsafe"; a policy test enforces this.
//
// 2. Minimal Surface: the engine's C ABI is ten functions and this package
//    wraps exactly those ten, nothing more.
//
// 3. Failure Signalling: the ABI has no error codes. Failure is a zero
//    handle, an absent buffer, or a non-1 status, and the Engine methods
//    surface those shapes unchanged; translating them into Go errors is the
//    wrapper layer's job.
//
// 4. Memory Management: every string buffer the engine returns is decoded and
//    then released with ruggy_str_free exactly once, inside this package.
//    Callers only ever see Go strings.
//
// 5. Bounded Decoding: native buffers are scanned for their NUL terminator up
//    to a 1 MiB bound. A missing terminator reads as an absent result, never
//    as an unbounded walk through memory.
//
// # Handles
//
// Engine objects are opaque handles (uintptr). They originate in the native
// allocator, are never Go pointers, and are meaningful only when passed back
// to the engine that issued them. Zero is the universal invalid handle.
//
// # Builds Without the Engine
//
// On builds without cgo (or on Windows) the package compiles a stub whose
// calls all fail the way the ABI does. Available reports which engine is
// active, and ErrNotBuilt is the error callers see when they rely on the
// default engine anyway.
package native
