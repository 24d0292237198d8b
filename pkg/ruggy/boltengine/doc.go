// Package boltengine provides a durable pure-Go storage engine backed by
// bbolt.
//
// Boltengine implements the ruggy.Engine interface for builds that cannot
// link the native library but still need data to survive the process. The
// database path names a directory; documents live in a single bbolt file
// inside it, one bucket per collection, keyed by a monotonic sequence so
// listings preserve insertion order.
//
// Open handles to the same path share one bbolt file handle; the file is
// released when the last database handle is closed.
//
//	eng := boltengine.New()
//	db, err := ruggy.OpenWithOptions("/data/app", ruggy.Options{Engine: eng})
//
// Query semantics match the native engine: plain find compares string fields
// only, operator find adds substring and prefix/suffix matching, and numeric
// fields participate in equality by their decimal representation.
package boltengine
