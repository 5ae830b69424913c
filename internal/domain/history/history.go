package history

import (
	"github.com/appcanvas/engine/internal/domain/tree"
)

// DefaultLimit bounds the past stack; the oldest snapshot is dropped
// on overflow.
const DefaultLimit = 100

// Manager gives interactive mutations time-travel semantics without
// pushing history bookkeeping into the mutation API. It exclusively
// owns the past and future stacks.
//
// The editing session is single-writer, so Manager carries no locking.
type Manager struct {
	past      []*tree.Document
	future    []*tree.Document
	limit     int
	traveling bool
}

// NewManager creates a history manager with the given stack limit;
// limit <= 0 falls back to DefaultLimit.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Record pushes a deep copy of the pre-mutation document onto the past
// stack and clears the future stack. Called immediately before any
// interactive mutation commits. Suppressed while time-traveling so an
// undo is never recorded as a new undoable action.
func (m *Manager) Record(current *tree.Document) {
	if m.traveling {
		return
	}
	m.RecordSnapshot(current.Clone())
}

// RecordSnapshot pushes an already-cloned snapshot. Used by the applier
// which clones before running a batch.
func (m *Manager) RecordSnapshot(snapshot *tree.Document) {
	if m.traveling {
		return
	}
	m.past = append(m.past, snapshot)
	if len(m.past) > m.limit {
		m.past = m.past[1:]
	}
	m.future = m.future[:0]
}

// Undo pops the most recent past snapshot, pushes the current document
// onto the future stack, and returns the snapshot to restore. Returns
// false when the past stack is empty.
func (m *Manager) Undo(current *tree.Document) (*tree.Document, bool) {
	if len(m.past) == 0 {
		return nil, false
	}
	m.traveling = true
	defer func() { m.traveling = false }()

	snapshot := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append(m.future, current.Clone())
	return snapshot, true
}

// Redo is the symmetric operation consuming the future stack.
func (m *Manager) Redo(current *tree.Document) (*tree.Document, bool) {
	if len(m.future) == 0 {
		return nil, false
	}
	m.traveling = true
	defer func() { m.traveling = false }()

	snapshot := m.future[len(m.future)-1]
	m.future = m.future[:len(m.future)-1]
	m.past = append(m.past, current.Clone())
	return snapshot, true
}

// Reset drops both stacks. Bulk replacements of the whole document
// (blueprint import, initial load) reset rather than record: there is
// no meaningful undo back through a bulk boundary.
func (m *Manager) Reset() {
	m.past = m.past[:0]
	m.future = m.future[:0]
}

// CanUndo reports whether the past stack is non-empty.
func (m *Manager) CanUndo() bool { return len(m.past) > 0 }

// CanRedo reports whether the future stack is non-empty.
func (m *Manager) CanRedo() bool { return len(m.future) > 0 }

// Depth returns the current past-stack depth.
func (m *Manager) Depth() int { return len(m.past) }
