// Package monitoring provides Prometheus metrics for the editing
// engine: HTTP traffic, operations applied and skipped, undo/redo
// activity, interpretation outcomes per strategy, blueprint imports,
// and persistence attempts.
//
// All Record helpers are nil-receiver safe so components can run
// without a collector in tests.
package monitoring
