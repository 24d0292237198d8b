// Package logging provides a minimal logging facade for the ruggy wrapper.
//
// This package defines a Logger interface that wraps a subset of the standard
// library's log/slog functionality. The interface is intentionally small to
// allow applications to provide custom implementations for testing, redaction,
// or integration with existing logging systems.
//
// # Logger Interface
//
// The Logger interface provides context-aware logging methods:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Default Implementation
//
// The package provides a default slog-backed implementation:
//
//	import (
//	    "log/slog"
//	    "github.com/ruggydb/ruggy-go/pkg/ruggy/logging"
//	)
//
//	// Use default logger (slog.Default())
//	logger := logging.New(nil)
//
//	// Use custom slog.Logger
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	customLogger := logging.New(slog.New(handler))
//
// # The Diagnostic Channel
//
// The wrapper's read paths deliberately swallow malformed engine output and
// substitute empty results, so a corrupted store never surfaces as a read
// error. This facade is the channel those paths report through; applications
// that care about engine corruption should install a real handler here rather
// than rely on read-path return values:
//
//	logger := logging.New(nil)
//	db, err := ruggy.OpenWithOptions("./data", ruggy.Options{Logger: logger})
//
// # Redaction Support
//
// Documents routinely carry user data, so wrapper diagnostics never include
// document bodies. The package provides utilities to mark the omission:
//
//	// Mark an attribute as redacted
//	logger.Warn(ctx, "discarding unparseable engine result",
//	    "collection", name,
//	    logging.Redacted("payload"),
//	)
//	// Logs: payload="[redacted]"
//
//	// Get the redaction placeholder
//	placeholder := logging.Placeholder() // Returns "[redacted]"
//
// # Custom Implementations
//
// Applications can provide custom Logger implementations:
//
//	type customLogger struct {
//	    // ... your fields
//	}
//
//	func (l *customLogger) Debug(ctx context.Context, msg string, args ...any) {
//	    // Custom debug logic
//	}
//	// ... implement other methods
//
//	db, err := ruggy.OpenWithOptions("./data", ruggy.Options{
//	    Logger: &customLogger{},
//	})
package logging
