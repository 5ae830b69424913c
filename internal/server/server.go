package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apihttp "github.com/appcanvas/engine/internal/api/http"
	"github.com/appcanvas/engine/internal/api/middleware"
	"github.com/appcanvas/engine/internal/api/ws"
	"github.com/appcanvas/engine/internal/domain/interpret"
	"github.com/appcanvas/engine/internal/domain/session"
	"github.com/appcanvas/engine/internal/domain/tree"
	"github.com/appcanvas/engine/internal/infrastructure/config"
	"github.com/appcanvas/engine/internal/infrastructure/logging"
	"github.com/appcanvas/engine/internal/infrastructure/monitoring"
	"github.com/appcanvas/engine/internal/storage"
)

// Server wires the editing engine together: configuration, logging,
// metrics, persistence, the session, the interpreter strategies, and
// the HTTP plus WebSocket surfaces.
type Server struct {
	httpServer *http.Server
	session    *session.Session
	store      storage.Store
	logger     *logging.Logger
}

// New builds a fully wired server from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	var err error
	if cfg.Logging.Development {
		logger, err = logging.New(logging.DevelopmentConfig())
	} else {
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: false,
			OutputPaths: []string{"stdout"},
		})
	}
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()

	store, err := storage.NewFileStore(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	doc, err := loadDocument(store, logger)
	if err != nil {
		return nil, err
	}

	sess := session.New(doc).WithLogger(logger).WithMetrics(metrics)

	var remote interpret.Interpreter
	if cfg.Assistant.URL != "" {
		remote = interpret.NewRemote(interpret.RemoteConfig{
			URL:          cfg.Assistant.URL,
			Timeout:      cfg.Assistant.Timeout,
			ContextNodes: cfg.Assistant.ContextNodes,
		})
		logger.Info("remote interpreter enabled", zap.String("url", cfg.Assistant.URL))
	}
	selector := interpret.NewSelector(remote, interpret.NewRules()).WithMetrics(metrics)

	handlers := apihttp.NewHandlers(sess, selector, store,
		cfg.Assistant.AppName, cfg.Assistant.Industry, logger, metrics)
	wsHandler := ws.NewHandler(sess, selector,
		cfg.Assistant.AppName, cfg.Assistant.Industry, logger, metrics)

	routerCfg := apihttp.RouterConfig{Logger: logger, Metrics: metrics}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = &middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}
	}
	router := apihttp.NewRouter(handlers, wsHandler.HandleConnection, routerCfg)

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
		session: sess,
		store:   store,
		logger:  logger,
	}, nil
}

func loadDocument(store storage.Store, logger *logging.Logger) (*tree.Document, error) {
	persisted, err := store.Load()
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		logger.Info("no saved document, starting fresh")
		return tree.New(), nil
	}
	logger.Info("loaded saved document",
		zap.Int("screens", len(persisted.Screens)),
		zap.String("saved_at", persisted.SavedAt))
	return tree.FromScreens(persisted.Screens), nil
}

// Run starts serving and blocks until the listener fails or Shutdown
// is called.
func (s *Server) Run() error {
	s.logger.Info("engine listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener and persists the working document so a
// restart resumes where editing left off.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("http shutdown failed", zap.Error(err))
	}

	doc := s.session.Document()
	if err := s.store.Save(&storage.Persisted{Screens: doc.Screens}); err != nil {
		s.logger.Error("final save failed", zap.Error(err))
		return err
	}
	s.logger.Info("document saved on shutdown")
	_ = s.logger.Sync()
	return nil
}
