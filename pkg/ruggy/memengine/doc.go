// Package memengine provides an in-memory storage engine for testing and examples.
//
// Memengine implements the ruggy.Engine interface using plain Go maps and
// slices, allowing wrapper tests and examples to run without the native
// library linked in. Stores are keyed by path and survive database closes,
// so a reopen of the same path sees the same data, mimicking on-disk
// persistence within a single process.
//
// # Features
//
//   - Full Engine surface (open, collections, insert, find, update, delete)
//   - Insertion-order document listing, matching the native engine
//   - Per-call collection handles, matching the native engine
//   - Fault injection for exercising wrapper failure paths
//   - Handle leak accounting via OpenHandles
//
// # Usage
//
//	eng := memengine.New()
//	db, err := ruggy.OpenWithOptions("/data/app", ruggy.Options{Engine: eng})
//
// # Fault Injection
//
// Faults selects failure modes; inject them at construction or flip them
// mid-test:
//
//	eng := memengine.NewWithFaults(memengine.Faults{FailOpen: true})
//
//	eng := memengine.New()
//	// ... populate ...
//	eng.SetFaults(memengine.Faults{CorruptReads: true})
//
// # Limitations
//
// Memengine is designed for testing and examples only. Nothing is written to
// disk, and data does not survive the process. For durable storage use the
// native engine or boltengine.
package memengine
