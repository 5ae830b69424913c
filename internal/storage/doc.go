// Package storage persists the editing document between runs.
//
// The working document and named snapshots are written as
// gzip-compressed JSON under a configurable root directory. Writes are
// atomic (temp file plus rename) so an interrupted save leaves the
// previous file intact.
package storage
