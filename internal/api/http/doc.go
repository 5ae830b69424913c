// Package http exposes the editing engine over a REST surface: the
// document and its operations, undo/redo, selection, free-text
// commands, blueprint import, export, and persistence.
package http
