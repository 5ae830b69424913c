// Package session owns the interactive editing state: the live
// document, the selection, the active screen, and the undo/redo
// history behind them. Apply is the single funnel every mutation
// source goes through, which is where batching, property
// canonicalization, and history snapshots happen exactly once.
package session
