package tree

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/appcanvas/engine/internal/shared/id"
	"github.com/appcanvas/engine/internal/shared/types"
)

// Document is the multi-screen document and the only legal way to
// change it. Mutations run in place; callers that need time travel
// snapshot the document before mutating (see the history manager).
//
// The document has a single writer per editing session, so Document
// itself carries no locking.
type Document struct {
	Screens []*types.Screen `json:"screens"`
}

// New creates a document seeded with one empty home screen, used when
// a new session has no prior state.
func New() *Document {
	return &Document{
		Screens: []*types.Screen{
			{
				ID:     id.NewScreenID().String(),
				Name:   "Home",
				Icon:   "🏠",
				IsHome: true,
				Nodes:  []*types.Node{},
			},
		},
	}
}

// FromScreens wraps a loaded screen list. An empty list falls back to
// the seed document so the at-least-one-screen invariant holds.
func FromScreens(screens []*types.Screen) *Document {
	if len(screens) == 0 {
		return New()
	}
	return &Document{Screens: screens}
}

// Clone deep-copies the document via a sonic round trip. Used for
// history snapshots and persisted patches.
func (d *Document) Clone() *Document {
	data, err := sonic.Marshal(d)
	if err != nil {
		// The document is plain JSON-able data; a marshal failure
		// means a programming error upstream.
		panic(fmt.Sprintf("document clone: %v", err))
	}
	var out Document
	if err := sonic.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("document clone: %v", err))
	}
	if out.Screens == nil {
		out.Screens = []*types.Screen{}
	}
	return &out
}

// Screen resolves a screen by id.
func (d *Document) Screen(screenID string) (*types.Screen, bool) {
	for _, s := range d.Screens {
		if s.ID == screenID {
			return s, true
		}
	}
	return nil, false
}

// Home returns the screen flagged is-home, falling back to the first
// screen when none is flagged. The flag is advisory, not an invariant.
func (d *Document) Home() *types.Screen {
	for _, s := range d.Screens {
		if s.IsHome {
			return s
		}
	}
	return d.Screens[0]
}

// AddScreen appends a screen and returns its id.
func (d *Document) AddScreen(name, icon string) string {
	if name == "" {
		name = fmt.Sprintf("Screen %d", len(d.Screens)+1)
	}
	s := &types.Screen{
		ID:    id.NewScreenID().String(),
		Name:  name,
		Icon:  icon,
		Nodes: []*types.Node{},
	}
	d.Screens = append(d.Screens, s)
	return s.ID
}

// DeleteScreen removes a screen. It returns false and performs no
// mutation when the screen is unknown or when deleting it would leave
// the document with zero screens.
func (d *Document) DeleteScreen(screenID string) bool {
	if len(d.Screens) <= 1 {
		return false
	}
	for i, s := range d.Screens {
		if s.ID == screenID {
			d.Screens = append(d.Screens[:i], d.Screens[i+1:]...)
			return true
		}
	}
	return false
}

// AddNode constructs a node with a fresh document-unique id and the
// kind's defaults merged with overrides, appends it as the last
// top-level child of the target screen, and returns the new id.
//
// Fails silently (empty id, false) when the screen does not resolve or
// the kind is outside the catalog.
func (d *Document) AddNode(screenID string, kind types.Kind, overrides types.Props) (string, bool) {
	screen, ok := d.Screen(screenID)
	if !ok {
		return "", false
	}
	props, ok := Defaults(kind)
	if !ok {
		return "", false
	}
	for k, v := range overrides {
		props[k] = v
	}
	node := &types.Node{
		ID:    id.NewNodeID().String(),
		Kind:  kind,
		Props: props,
	}
	screen.Nodes = append(screen.Nodes, node)
	return node.ID, true
}

// FindNode locates a node anywhere in the document, depth-first.
func (d *Document) FindNode(nodeID string) (*types.Node, bool) {
	for _, s := range d.Screens {
		if n := findIn(s.Nodes, nodeID); n != nil {
			return n, true
		}
	}
	return nil, false
}

func findIn(nodes []*types.Node, nodeID string) *types.Node {
	for _, n := range nodes {
		if n.ID == nodeID {
			return n
		}
		if found := findIn(n.Children, nodeID); found != nil {
			return found
		}
	}
	return nil
}

// UpdateNodeProps shallow-merges partial into the node's property bag;
// keys absent from partial are preserved. Returns false without
// mutating when the id is not found.
func (d *Document) UpdateNodeProps(nodeID string, partial types.Props) bool {
	node, ok := d.FindNode(nodeID)
	if !ok {
		return false
	}
	if node.Props == nil {
		node.Props = types.Props{}
	}
	for k, v := range partial {
		node.Props[k] = v
	}
	return true
}

// DeleteNode removes the node and all of its descendants from wherever
// it lives. Selection tracking is the caller's concern. Returns false
// when the id is not found.
func (d *Document) DeleteNode(nodeID string) bool {
	for _, s := range d.Screens {
		if pruned, removed := prune(s.Nodes, nodeID); removed {
			s.Nodes = pruned
			return true
		}
	}
	return false
}

func prune(nodes []*types.Node, nodeID string) ([]*types.Node, bool) {
	for i, n := range nodes {
		if n.ID == nodeID {
			return append(nodes[:i], nodes[i+1:]...), true
		}
		if pruned, removed := prune(n.Children, nodeID); removed {
			n.Children = pruned
			return nodes, true
		}
	}
	return nodes, false
}

// ReorderScreenChildren replaces a screen's top-level child order.
// Ids in order are placed first in the given sequence; nodes the order
// omits keep their relative position after them; unknown ids are
// dropped. Nested children are not reorderable through this surface.
// Returns false when the screen is not found.
func (d *Document) ReorderScreenChildren(screenID string, order []string) bool {
	screen, ok := d.Screen(screenID)
	if !ok {
		return false
	}
	byID := make(map[string]*types.Node, len(screen.Nodes))
	for _, n := range screen.Nodes {
		byID[n.ID] = n
	}

	next := make([]*types.Node, 0, len(screen.Nodes))
	placed := make(map[string]bool, len(order))
	for _, nodeID := range order {
		if n, ok := byID[nodeID]; ok && !placed[nodeID] {
			next = append(next, n)
			placed[nodeID] = true
		}
	}
	for _, n := range screen.Nodes {
		if !placed[n.ID] {
			next = append(next, n)
		}
	}
	screen.Nodes = next
	return true
}

// NodeIDs returns every node id in the document, depth-first in screen
// order. Used by invariant checks and tests.
func (d *Document) NodeIDs() []string {
	var ids []string
	var walk func(nodes []*types.Node)
	walk = func(nodes []*types.Node) {
		for _, n := range nodes {
			ids = append(ids, n.ID)
			walk(n.Children)
		}
	}
	for _, s := range d.Screens {
		walk(s.Nodes)
	}
	return ids
}
