// Package tree provides the document model and mutation API for the
// component tree editing engine.
//
// A Document is an ordered list of screens, each owning a tree of
// component nodes. All structural change goes through the Document
// methods, which preserve the model invariants:
//   - node ids are unique across the whole document
//   - children exist only on container-classified kinds
//   - deletes cascade to descendants
//   - the document always retains at least one screen
//
// Key Components:
//   - Document: screens plus mutation methods (AddNode, UpdateNodeProps,
//     DeleteNode, ReorderScreenChildren, AddScreen, DeleteScreen)
//   - Defaults: total default-property table per component kind
//
// Example Usage:
//
//	doc := tree.New()
//	nodeID, _ := doc.AddNode(doc.Home().ID, types.KindButton, types.Props{"text": "Join"})
package tree
