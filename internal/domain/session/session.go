package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/appcanvas/engine/internal/domain/history"
	"github.com/appcanvas/engine/internal/domain/interpret"
	"github.com/appcanvas/engine/internal/domain/tree"
	"github.com/appcanvas/engine/internal/infrastructure/logging"
	"github.com/appcanvas/engine/internal/infrastructure/monitoring"
	"github.com/appcanvas/engine/internal/shared/types"
)

// Session is the editing session: it owns the document, the selection,
// and the history stacks as one explicit value. The engine assumes a
// single writer per session; the mutex only serializes the HTTP and
// WebSocket surfaces onto that single-writer model.
type Session struct {
	mu sync.Mutex

	doc       *tree.Document
	history   *history.Manager
	selection string
	active    string

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates a session over an existing document. The active screen
// starts at the document's home screen.
func New(doc *tree.Document) *Session {
	return &Session{
		doc:     doc,
		history: history.NewManager(history.DefaultLimit),
		active:  doc.Home().ID,
		logger:  logging.NewNop(),
	}
}

// WithLogger attaches a logger.
func (s *Session) WithLogger(logger *logging.Logger) *Session {
	s.logger = logger.Named("session")
	return s
}

// WithMetrics attaches a metrics collector.
func (s *Session) WithMetrics(metrics *monitoring.Metrics) *Session {
	s.metrics = metrics
	return s
}

// Document returns a deep copy of the current document for read-only
// consumers such as rendering and export.
func (s *Session) Document() *tree.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Selection returns the selected node id, or false when nothing is
// selected.
func (s *Session) Selection() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == "" {
		return "", false
	}
	return s.selection, true
}

// Select sets the selection; it fails when the node does not exist.
func (s *Session) Select(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.FindNode(nodeID); !ok {
		return false
	}
	s.selection = nodeID
	return true
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = ""
}

// ActiveScreenID returns the screen edits currently target.
func (s *Session) ActiveScreenID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetActiveScreen switches the editing target; it fails when the
// screen does not exist.
func (s *Session) SetActiveScreen(screenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.Screen(screenID); !ok {
		return false
	}
	s.active = screenID
	return true
}

// AddScreen appends a screen as an undoable edit and returns its id.
func (s *Session) AddScreen(name, icon string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Record(s.doc)
	screenID := s.doc.AddScreen(name, icon)
	s.logger.Info("screen added", zap.String("screen_id", screenID))
	return screenID
}

// DeleteScreen removes a screen as an undoable edit. It returns false
// with no mutation recorded when the screen is unknown or is the last
// one in the document.
func (s *Session) DeleteScreen(screenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pre := s.doc.Clone()
	if !s.doc.DeleteScreen(screenID) {
		return false
	}
	s.history.RecordSnapshot(pre)

	if s.active == screenID {
		s.active = s.doc.Home().ID
	}
	if s.selection != "" {
		if _, ok := s.doc.FindNode(s.selection); !ok {
			s.selection = ""
		}
	}
	s.logger.Info("screen deleted", zap.String("screen_id", screenID))
	return true
}

// Undo restores the most recent snapshot. The selection is cleared
// because it may reference a node that no longer exists.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, ok := s.history.Undo(s.doc)
	if !ok {
		return false
	}
	s.doc = restored
	s.afterTimeTravel()
	s.metrics.RecordUndo(s.history.Depth())
	return true
}

// Redo restores the most recently undone snapshot.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, ok := s.history.Redo(s.doc)
	if !ok {
		return false
	}
	s.doc = restored
	s.afterTimeTravel()
	s.metrics.RecordRedo(s.history.Depth())
	return true
}

// CanUndo reports whether an undo snapshot exists.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo snapshot exists.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

func (s *Session) afterTimeTravel() {
	s.selection = ""
	if _, ok := s.doc.Screen(s.active); !ok {
		s.active = s.doc.Home().ID
	}
}

// ReplaceAll swaps in a whole new document (blueprint import, initial
// load) and resets history: there is no undo back through a bulk
// replacement boundary.
func (s *Session) ReplaceAll(screens []*types.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = tree.FromScreens(screens)
	s.history.Reset()
	s.selection = ""
	s.active = s.doc.Home().ID
	s.logger.Info("document replaced", zap.Int("screens", len(s.doc.Screens)))
}

// InterpretContext assembles the bounded editing context sent with a
// prompt: the active screen, the selected node, and app hints. The
// context holds a snapshot, not live tree pointers; interpretation
// runs outside the session lock.
func (s *Session) InterpretContext(appName, industry string) interpret.Context {
	s.mu.Lock()
	doc := s.doc.Clone()
	active := s.active
	selection := s.selection
	s.mu.Unlock()

	ec := interpret.Context{AppName: appName, Industry: industry}
	if screen, ok := doc.Screen(active); ok {
		ec.Screen = screen
	}
	if selection != "" {
		if node, ok := doc.FindNode(selection); ok {
			ec.Selected = node
		}
	}
	return ec
}
