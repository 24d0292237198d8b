// Package internalcheck provides internal validation and testing utilities.
//
// This package contains structural policy tests for the ruggy-go module. It
// is not intended for external use and the API may change without notice.
//
// # Internal Use Only
//
// This package is part of the internal implementation and should not be
// imported by applications using the ruggy library. Use the public API
// provided by pkg/ruggy and its subpackages instead.
package internalcheck
