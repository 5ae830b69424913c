package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/appcanvas/engine/internal/api/middleware"
	"github.com/appcanvas/engine/internal/infrastructure/logging"
	"github.com/appcanvas/engine/internal/infrastructure/monitoring"
)

// RouterConfig carries the cross-cutting options the router wires.
type RouterConfig struct {
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	RateLimit *middleware.RateLimitConfig
}

// NewRouter builds the gin engine with all routes and middleware.
// ws, when non-nil, is mounted at /ws.
func NewRouter(h *Handlers, ws gin.HandlerFunc, cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogger(cfg.Logger))
	}
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit != nil {
		r.Use(middleware.RateLimit(*cfg.RateLimit))
	}
	if cfg.Metrics != nil {
		r.Use(monitoring.Middleware(cfg.Metrics))
	}

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/document", h.GetDocument)
	r.POST("/operations", h.ApplyOperations)
	r.POST("/undo", h.Undo)
	r.POST("/redo", h.Redo)

	screens := r.Group("/screens")
	{
		screens.POST("", h.AddScreen)
		screens.DELETE("/:id", h.DeleteScreen)
		screens.POST("/:id/activate", h.ActivateScreen)
		screens.POST("/:id/reorder", h.ReorderScreen)
	}

	nodes := r.Group("/nodes")
	{
		nodes.PATCH("/:id", h.UpdateNode)
		nodes.DELETE("/:id", h.DeleteNode)
	}

	r.PUT("/selection", h.SetSelection)
	r.DELETE("/selection", h.ClearSelection)

	r.POST("/command", h.Command)
	r.POST("/blueprint/import", h.ImportBlueprint)
	r.GET("/export", h.Export)

	r.POST("/save", h.Save)
	snapshots := r.Group("/snapshots")
	{
		snapshots.POST("", h.SaveSnapshot)
		snapshots.GET("", h.ListSnapshots)
		snapshots.POST("/:id/restore", h.RestoreSnapshot)
		snapshots.DELETE("/:id", h.DeleteSnapshot)
	}

	if ws != nil {
		r.GET("/ws", ws)
	}

	return r
}
