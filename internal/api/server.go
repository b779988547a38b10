package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the HTTP server, the data directory watcher and the
// websocket hub it feeds.
type Server struct {
	httpServer *http.Server
	watcher    *FileWatcher
	wsHub      *WebSocketHub
	logger     *zap.Logger
}

// NewRouter wires the Gin engine with middlewares and routes. A nil hub
// leaves out the websocket route.
func NewRouter(handler *Handler, hub *WebSocketHub, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLogger(logger))
	r.Use(cors())

	handler.RegisterRoutes(r)
	if hub != nil {
		r.GET("/api/v1/ws", hub.ServeWS)
	}
	return r
}

// NewServer creates a server on port. If dataDir is empty, file watching
// is disabled.
func NewServer(handler *Handler, port int, dataDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		watcher *FileWatcher
		wsHub   *WebSocketHub
	)
	if dataDir != "" {
		wsHub = NewWebSocketHub(logger.Named("ws"))

		var err error
		watcher, err = NewFileWatcher(dataDir, logger.Named("watcher"))
		if err != nil {
			logger.Warn("failed to create file watcher", zap.Error(err))
		} else {
			watcher.Subscribe(wsHub)
		}
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      NewRouter(handler, wsHub, logger.Named("http")),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
		logger:  logger,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown, which
// is not reported as an error.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.logger.Warn("failed to start file watcher", zap.Error(err))
		}
	}

	s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("failed to stop file watcher", zap.Error(err))
		}
	}
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
