// Package ruggy exposes the Ruggy embedded document store to Go programs
// through safe, lifecycle-managed handles. The engine itself is an opaque
// native library reached through a fixed C ABI; this package owns everything
// on the host side of that boundary: handle wrapping, string marshalling,
// collection caching, and connection pooling with graceful shutdown.
//
// A Database wraps one native database handle and hands out cached Collection
// wrappers; a Pool keeps at most one Database alive across many logical
// operations. Alternative engines (memengine for tests, boltengine for
// cgo-free deployments) plug in through the Engine interface.
package ruggy
