// Package types provides shared data structures for the editing engine.
//
// This package defines the document model used across all engine
// components, ensuring one vocabulary for screens, nodes, and edits.
//
// Core Types:
//   - Screen: One page of the app, owning an ordered node list
//   - Node: One element in a screen's tree (kind + props + children)
//   - Kind: Closed catalog of component types
//   - Props: Open property bag keyed by canonical property names
//   - Operation: Atomic, typed description of one edit
//   - Navigation: Tab configuration derived from blueprint import
//
// Operations reference nodes by id only. They are produced by direct
// UI actions, by the command interpreter, or by blueprint import, and
// are routed through a single applier funnel.
//
// Example Usage:
//
//	op := types.AddOp(types.KindButton, types.Props{"text": "Join"}, screenID)
package types
