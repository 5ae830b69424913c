package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/appcanvas/engine/internal/domain/interpret"
	"github.com/appcanvas/engine/internal/domain/session"
	"github.com/appcanvas/engine/internal/infrastructure/logging"
	"github.com/appcanvas/engine/internal/infrastructure/monitoring"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Message is the client-to-server frame.
type Message struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt,omitempty"`
}

// Handler manages WebSocket connections for the live command bar.
type Handler struct {
	session     *session.Session
	interpreter interpret.Interpreter
	appName     string
	industry    string
	logger      *logging.Logger
	metrics     *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler.
func NewHandler(sess *session.Session, interpreter interpret.Interpreter, appName, industry string, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	return &Handler{
		session:     sess,
		interpreter: interpreter,
		appName:     appName,
		industry:    industry,
		logger:      logger.Named("ws"),
		metrics:     metrics,
	}
}

// HandleConnection handles WebSocket upgrade and messages. Commands on
// one connection run serially; a command arriving while the previous
// one is still interpreting gets a busy reply instead of queueing.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log := h.logger.With(zap.String("conn_id", connID))
	log.Info("connection opened")
	defer log.Info("connection closed")

	h.metrics.RecordWSConnect()
	defer h.metrics.RecordWSDisconnect()

	reqCtx := c.Request.Context()

	h.send(conn, gin.H{
		"type":    "system",
		"message": "Connected to AppCanvas Engine",
	})

	busy := make(chan struct{}, 1)
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case "command":
			select {
			case busy <- struct{}{}:
			default:
				h.send(conn, gin.H{"type": "busy", "message": "A command is still running"})
				continue
			}
			h.handleCommand(reqCtx, conn, msg)
			<-busy

		case "ping":
			h.send(conn, gin.H{"type": "pong"})

		default:
			h.send(conn, gin.H{"type": "error", "message": "unknown message type"})
		}

		// Stop processing when the request context is gone.
		select {
		case <-reqCtx.Done():
			return
		default:
		}
	}
}

func (h *Handler) handleCommand(ctx context.Context, conn *websocket.Conn, msg Message) {
	if msg.Prompt == "" {
		h.send(conn, gin.H{"type": "error", "message": "empty prompt"})
		return
	}

	ec := h.session.InterpretContext(h.appName, h.industry)
	reply, err := h.interpreter.Interpret(ctx, msg.Prompt, ec)
	if err != nil {
		h.send(conn, gin.H{"type": "error", "message": "could not interpret the instruction"})
		return
	}

	applied := h.session.Apply(reply.Operations)
	h.send(conn, gin.H{
		"type":    "result",
		"message": reply.Message,
		"applied": applied,
	})
	h.sendDocument(conn)
}

// sendDocument pushes the post-command document so the canvas can
// re-render without a follow-up fetch.
func (h *Handler) sendDocument(conn *websocket.Conn) {
	doc := h.session.Document()
	selected, _ := h.session.Selection()
	h.send(conn, gin.H{
		"type":          "document",
		"screens":       doc.Screens,
		"selected_id":   selected,
		"active_screen": h.session.ActiveScreenID(),
		"can_undo":      h.session.CanUndo(),
		"can_redo":      h.session.CanRedo(),
	})
}

func (h *Handler) send(conn *websocket.Conn, payload gin.H) {
	if err := conn.WriteJSON(payload); err != nil {
		h.logger.Warn("websocket write failed", zap.Error(err))
	}
}
