package session

import (
	"go.uber.org/zap"

	"github.com/appcanvas/engine/internal/domain/interpret"
	"github.com/appcanvas/engine/internal/shared/types"
)

// Apply runs a batch of operations against the document. Every mutation
// source (direct edits, blueprint patches, interpreted commands, remote
// assistant replies) funnels through here, so this is the one place
// where property keys are canonicalized and history is recorded.
//
// The whole batch is one undo step: a single pre-batch snapshot is
// recorded, and only when at least one operation applied. Unknown or
// inapplicable operations are skipped, never fatal.
func (s *Session) Apply(ops []types.Operation) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pre := s.doc.Clone()
	applied := 0
	for _, op := range ops {
		if s.applyOne(op) {
			applied++
			s.metrics.RecordOperation(string(op.Op))
		} else {
			s.metrics.RecordSkipped()
			s.logger.Debug("operation skipped",
				zap.String("op", string(op.Op)),
				zap.String("node_id", op.NodeID))
		}
	}
	if applied > 0 {
		s.history.RecordSnapshot(pre)
	}
	return applied
}

func (s *Session) applyOne(op types.Operation) bool {
	switch op.Op {
	case types.OpAdd:
		return s.applyAdd(op)

	case types.OpUpdateByID:
		return s.updateNode(op.NodeID, op.Props)

	case types.OpUpdateSelected:
		// Selection resolves at apply time, not interpretation time.
		if s.selection == "" {
			return false
		}
		return s.updateNode(s.selection, op.Props)

	case types.OpDeleteSelected:
		if s.selection == "" {
			return false
		}
		if !s.doc.DeleteNode(s.selection) {
			return false
		}
		s.selection = ""
		return true

	case types.OpDeleteByID:
		if !s.doc.DeleteNode(op.NodeID) {
			return false
		}
		if s.selection == op.NodeID {
			s.selection = ""
		}
		return true

	case types.OpReorder:
		screenID := op.ScreenID
		if screenID == "" {
			screenID = s.active
		}
		return s.doc.ReorderScreenChildren(screenID, op.Order)

	default:
		return false
	}
}

func (s *Session) applyAdd(op types.Operation) bool {
	screenID := op.ScreenID
	if screenID == "" {
		screenID = s.active
	}
	props := interpret.CanonicalProps(op.Kind, op.Props)
	nodeID, ok := s.doc.AddNode(screenID, op.Kind, props)
	if !ok {
		return false
	}
	// A newly added component becomes the selection so a follow-up
	// "make it blue" lands on it.
	s.selection = nodeID
	return true
}

func (s *Session) updateNode(nodeID string, props types.Props) bool {
	node, ok := s.doc.FindNode(nodeID)
	if !ok {
		return false
	}
	return s.doc.UpdateNodeProps(nodeID, interpret.CanonicalProps(node.Kind, props))
}
