package native

import (
	"bytes"
	"unsafe"
)

const (
	// maxDecodeBytes bounds how far goString will scan for a terminator. A
	// corrupt or non-terminated buffer must not trigger an unbounded read;
	// hitting the bound is a recoverable "absent" result, not a fatal error.
	maxDecodeBytes = 1 << 20

	// decodeChunkSize is a performance detail, not part of the contract.
	decodeChunkSize = 256
)

// cString returns the UTF-8 bytes of s followed by a single NUL terminator,
// ready to pass across the C boundary.
func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// cBytes is cString for byte payloads that are already UTF-8 (JSON documents).
func cBytes(p []byte) []byte {
	b := make([]byte, len(p)+1)
	copy(b, p)
	return b
}

// goString reads a NUL-terminated native buffer, scanning forward in fixed
// chunks until the terminator or maxDecodeBytes. It returns ok=false for a
// nil buffer or a missing terminator. The buffer is only read, never mutated
// or freed; releasing it is the caller's separate, explicit step.
func goString(p unsafe.Pointer) (string, bool) {
	if p == nil {
		return "", false
	}
	var out []byte
	for off := 0; off < maxDecodeBytes; off += decodeChunkSize {
		n := decodeChunkSize
		if rem := maxDecodeBytes - off; rem < n {
			n = rem
		}
		chunk := unsafe.Slice((*byte)(unsafe.Add(p, off)), n)
		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			out = append(out, chunk[:i]...)
			return string(out), true
		}
		out = append(out, chunk...)
	}
	return "", false
}

// validHandle reports whether a native handle refers to anything. The engine
// uses the zero address as its universal failure sentinel.
func validHandle(h uintptr) bool { return h != 0 }
