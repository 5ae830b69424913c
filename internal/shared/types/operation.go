package types

// OpKind tags an Operation variant. Unknown tags are preserved through
// decoding so the applier can skip them individually instead of failing
// a whole batch.
type OpKind string

const (
	OpAdd            OpKind = "add"
	OpUpdateByID     OpKind = "update_props"
	OpUpdateSelected OpKind = "update_selected"
	OpDeleteSelected OpKind = "delete_selected"
	OpDeleteByID     OpKind = "delete"
	OpReorder        OpKind = "reorder"
)

// Operation describes one atomic edit to the document. Operations are
// immutable data: they reference nodes by id only and never hold live
// tree pointers, so a stale operation resolves to a no-op rather than
// a dangling reference.
type Operation struct {
	Op OpKind `json:"op"`

	// Add
	Kind     Kind   `json:"kind,omitempty"`
	ScreenID string `json:"screen_id,omitempty"`

	// Add (initial overrides) and both update variants (partial merge)
	Props Props `json:"props,omitempty"`

	// UpdateByID / DeleteByID
	NodeID string `json:"node_id,omitempty"`

	// Reorder (new top-level sibling order for ScreenID)
	Order []string `json:"order,omitempty"`
}

// AddOp builds an add operation targeting a screen.
func AddOp(kind Kind, props Props, screenID string) Operation {
	return Operation{Op: OpAdd, Kind: kind, Props: props, ScreenID: screenID}
}

// UpdateByIDOp builds a property merge against a known node id.
func UpdateByIDOp(nodeID string, props Props) Operation {
	return Operation{Op: OpUpdateByID, NodeID: nodeID, Props: props}
}

// UpdateSelectedOp builds a property merge resolved against the
// session's selection at apply time.
func UpdateSelectedOp(props Props) Operation {
	return Operation{Op: OpUpdateSelected, Props: props}
}

// DeleteSelectedOp builds a delete of the current selection.
func DeleteSelectedOp() Operation {
	return Operation{Op: OpDeleteSelected}
}

// DeleteByIDOp builds a delete of a known node id.
func DeleteByIDOp(nodeID string) Operation {
	return Operation{Op: OpDeleteByID, NodeID: nodeID}
}

// ReorderOp builds a top-level sibling reorder for a screen.
func ReorderOp(screenID string, order []string) Operation {
	return Operation{Op: OpReorder, ScreenID: screenID, Order: order}
}
