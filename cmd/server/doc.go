// Package main is the entry point for the AppCanvas editing engine.
//
// The engine serves a screen-builder document model over REST and
// WebSocket: typed mutations with undo/redo, blueprint import,
// free-text commands interpreted remotely or by local rules, and
// compressed persistence between runs.
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional TOML file via ENGINE_CONFIG
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: save the document and shut down
package main
