package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/appcanvas/engine/internal/domain/blueprint"
	"github.com/appcanvas/engine/internal/domain/interpret"
	"github.com/appcanvas/engine/internal/domain/session"
	"github.com/appcanvas/engine/internal/infrastructure/logging"
	"github.com/appcanvas/engine/internal/infrastructure/monitoring"
	"github.com/appcanvas/engine/internal/shared/types"
	"github.com/appcanvas/engine/internal/storage"
)

// Version reported by the info endpoint.
const Version = "0.3.0"

// maxBodyBytes bounds blueprint and operation payloads.
const maxBodyBytes = 1 << 20

// Handlers contains all HTTP handlers.
type Handlers struct {
	session     *session.Session
	interpreter interpret.Interpreter
	store       storage.Store
	appName     string
	industry    string
	logger      *logging.Logger
	metrics     *monitoring.Metrics
}

// NewHandlers creates a new handler set. store may be nil when
// persistence is disabled.
func NewHandlers(
	sess *session.Session,
	interpreter interpret.Interpreter,
	store storage.Store,
	appName, industry string,
	logger *logging.Logger,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		session:     sess,
		interpreter: interpreter,
		store:       store,
		appName:     appName,
		industry:    industry,
		logger:      logger.Named("api"),
		metrics:     metrics,
	}
}

// Root handles the service info endpoint.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "AppCanvas Engine",
		"version": Version,
	})
}

// Health handles detailed health check.
func (h *Handlers) Health(c *gin.Context) {
	doc := h.session.Document()
	nodes := 0
	for _, s := range doc.Screens {
		nodes += countNodes(s.Nodes)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"screens":     len(doc.Screens),
		"nodes":       nodes,
		"persistence": gin.H{"enabled": h.store != nil},
	})
}

func countNodes(nodes []*types.Node) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countNodes(node.Children)
	}
	return n
}

// GetDocument returns the full document plus editing state.
func (h *Handlers) GetDocument(c *gin.Context) {
	doc := h.session.Document()
	selected, _ := h.session.Selection()

	c.JSON(http.StatusOK, gin.H{
		"screens":       doc.Screens,
		"selected_id":   selected,
		"active_screen": h.session.ActiveScreenID(),
		"can_undo":      h.session.CanUndo(),
		"can_redo":      h.session.CanRedo(),
	})
}

// ApplyOperations applies a batch of typed operations as one undo step.
func (h *Handlers) ApplyOperations(c *gin.Context) {
	var req struct {
		Operations []types.Operation `json:"operations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied := h.session.Apply(req.Operations)
	c.JSON(http.StatusOK, gin.H{
		"applied": applied,
		"skipped": len(req.Operations) - applied,
	})
}

// Undo restores the previous snapshot.
func (h *Handlers) Undo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  h.session.Undo(),
		"can_undo": h.session.CanUndo(),
		"can_redo": h.session.CanRedo(),
	})
}

// Redo restores the most recently undone snapshot.
func (h *Handlers) Redo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  h.session.Redo(),
		"can_undo": h.session.CanUndo(),
		"can_redo": h.session.CanRedo(),
	})
}

// AddScreen appends a screen.
func (h *Handlers) AddScreen(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	screenID := h.session.AddScreen(req.Name, req.Icon)
	c.JSON(http.StatusCreated, gin.H{"screen_id": screenID})
}

// DeleteScreen removes a screen; the last one is protected.
func (h *Handlers) DeleteScreen(c *gin.Context) {
	screenID := c.Param("id")
	if !h.session.DeleteScreen(screenID) {
		c.JSON(http.StatusConflict, gin.H{"error": "screen not found or is the last screen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ActivateScreen switches the editing target.
func (h *Handlers) ActivateScreen(c *gin.Context) {
	screenID := c.Param("id")
	if !h.session.SetActiveScreen(screenID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "screen not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_screen": screenID})
}

// ReorderScreen rearranges a screen's top-level children.
func (h *Handlers) ReorderScreen(c *gin.Context) {
	screenID := c.Param("id")
	var req struct {
		Order []string `json:"order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied := h.session.Apply([]types.Operation{types.ReorderOp(screenID, req.Order)})
	if applied == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "screen not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateNode shallow-merges properties into one node.
func (h *Handlers) UpdateNode(c *gin.Context) {
	nodeID := c.Param("id")
	var props types.Props
	if err := c.ShouldBindJSON(&props); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied := h.session.Apply([]types.Operation{types.UpdateByIDOp(nodeID, props)})
	if applied == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteNode removes a node and its subtree.
func (h *Handlers) DeleteNode(c *gin.Context) {
	nodeID := c.Param("id")
	applied := h.session.Apply([]types.Operation{types.DeleteByIDOp(nodeID)})
	if applied == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetSelection selects a node.
func (h *Handlers) SetSelection(c *gin.Context) {
	var req struct {
		NodeID string `json:"node_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.session.Select(req.NodeID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected_id": req.NodeID})
}

// ClearSelection drops the selection.
func (h *Handlers) ClearSelection(c *gin.Context) {
	h.session.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Command interprets a free-text instruction and applies the result.
func (h *Handlers) Command(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ec := h.session.InterpretContext(h.appName, h.industry)
	reply, err := h.interpreter.Interpret(c.Request.Context(), req.Prompt, ec)
	if err != nil {
		h.logger.Error("interpretation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not interpret the instruction"})
		return
	}

	applied := h.session.Apply(reply.Operations)
	c.JSON(http.StatusOK, gin.H{
		"message":    reply.Message,
		"applied":    applied,
		"operations": reply.Operations,
	})
}

// ImportBlueprint parses a blueprint document and replaces the whole
// canvas with it. History is reset: there is no undo back across an
// import.
func (h *Handlers) ImportBlueprint(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	result, err := blueprint.Import(raw)
	if err != nil {
		h.metrics.RecordImport("rejected")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.session.ReplaceAll(result.Screens)
	h.metrics.RecordImport("ok")
	h.logger.Info("blueprint imported", zap.Int("screens", len(result.Screens)))

	if h.store != nil {
		if err := h.store.Save(&storage.Persisted{Screens: result.Screens}); err != nil {
			h.logger.Error("post-import save failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"screens":    len(result.Screens),
		"navigation": result.Navigation,
	})
}

// Save persists the working document.
func (h *Handlers) Save(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence disabled"})
		return
	}

	doc := h.session.Document()
	if err := h.store.Save(&storage.Persisted{Screens: doc.Screens}); err != nil {
		h.metrics.RecordSave("error")
		h.logger.Error("save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	h.metrics.RecordSave("ok")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SaveSnapshot stores a named snapshot of the current document.
func (h *Handlers) SaveSnapshot(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence disabled"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := h.session.Document()
	info, err := h.store.SaveSnapshot(req.Name, &storage.Persisted{Screens: doc.Screens})
	if err != nil {
		h.logger.Error("snapshot save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "snapshot save failed"})
		return
	}
	c.JSON(http.StatusCreated, info)
}

// ListSnapshots lists stored snapshots, newest first.
func (h *Handlers) ListSnapshots(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence disabled"})
		return
	}

	infos, err := h.store.ListSnapshots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": infos})
}

// RestoreSnapshot replaces the document with a stored snapshot.
func (h *Handlers) RestoreSnapshot(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence disabled"})
		return
	}

	doc, err := h.store.LoadSnapshot(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.session.ReplaceAll(doc.Screens)
	c.JSON(http.StatusOK, gin.H{"success": true, "screens": len(doc.Screens)})
}

// DeleteSnapshot removes a stored snapshot.
func (h *Handlers) DeleteSnapshot(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence disabled"})
		return
	}

	if err := h.store.DeleteSnapshot(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Export serializes the document, one screen, or the selection.
// Query params: scope=document|screen|selection, format=json|yaml,
// screen_id when scope=screen.
func (h *Handlers) Export(c *gin.Context) {
	format, err := session.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var payload []byte
	switch scope := c.DefaultQuery("scope", "document"); scope {
	case "document":
		payload, err = h.session.ExportDocument(format)
	case "screen":
		payload, err = h.session.ExportScreen(c.Query("screen_id"), format)
	case "selection":
		payload, err = h.session.ExportSelection(format)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown export scope"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	contentType := "application/json"
	if format == session.FormatYAML {
		contentType = "application/yaml"
	}
	c.Data(http.StatusOK, contentType, payload)
}
