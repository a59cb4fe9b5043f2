// Package server exposes one engine over HTTP with gin.
//
// The facade forwards each request to the engine under a mutex and
// serialises the committed state; it holds no rules of its own.
//
// Routes:
//
//	POST /v1/connections           - draw one connection (two calls make a pair)
//	POST /v1/pairs                 - submit a complete pair
//	POST /v1/undo                  - undo the last committed action
//	POST /v1/reset                 - clear the board
//	POST /v1/level                 - change the level used by /v1/connections
//	GET  /v1/board                 - committed board state
//	GET  /v1/levels                - level catalogue in prerequisite order
//	GET  /v1/boards                - saved board names
//	POST /v1/boards/:name          - save the board
//	POST /v1/boards/:name/restore  - replace the board with a saved one
//	GET  /health                   - liveness
//	GET  /metrics                  - Prometheus metrics
package server

import (
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/tworow/engine"
	"github.com/katalvlaran/tworow/store"
)

// Handlers serves one engine.
type Handlers struct {
	mu     sync.Mutex
	eng    *engine.Engine
	boards *store.Store
	logger *slog.Logger
}

// NewHandlers wraps eng. boards may be nil, which disables the /v1/boards
// routes.
func NewHandlers(eng *engine.Engine, boards *store.Store, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handlers{eng: eng, boards: boards, logger: logger}
}

// RegisterRoutes mounts every route on r.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", h.HandleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/connections", h.HandleConnect)
		v1.POST("/pairs", h.HandleSubmitPair)
		v1.POST("/undo", h.HandleUndo)
		v1.POST("/reset", h.HandleReset)
		v1.POST("/level", h.HandleSetLevel)
		v1.GET("/board", h.HandleBoard)
		v1.GET("/levels", h.HandleLevels)

		if h.boards != nil {
			v1.GET("/boards", h.HandleListBoards)
			v1.POST("/boards/:name", h.HandleSaveBoard)
			v1.POST("/boards/:name/restore", h.HandleRestoreBoard)
		}
	}
}

// NewRouter returns a gin engine with recovery and every route mounted.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, h)

	return r
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)

	return requestID
}
