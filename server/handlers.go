package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/colorgroup"
	"github.com/katalvlaran/tworow/history"
	"github.com/katalvlaran/tworow/levels"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/store"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ConnectRequest names the two endpoints of one connection, in any order.
type ConnectRequest struct {
	A string `json:"a" binding:"required"`
	B string `json:"b" binding:"required"`
}

// PairRequest is a complete pair. An empty Level uses the engine's level.
type PairRequest struct {
	Level  string           `json:"level"`
	First  board.Connection `json:"first"`
	Second board.Connection `json:"second"`
}

// LevelRequest selects a level.
type LevelRequest struct {
	Level string `json:"level" binding:"required"`
}

// BoardResponse is the committed board.
type BoardResponse struct {
	Level       string             `json:"level"`
	Rows        history.RowCounts  `json:"rows"`
	Connections []board.Connection `json:"connections"`
	Pairs       []board.Pair       `json:"pairs"`
	Pending     *board.Connection  `json:"pending,omitempty"`
	Groups      []colorgroup.Group `json:"groups"`
	Orientation orientation.Maps   `json:"orientation"`
	PatternLog  *patternlog.Log    `json:"patternLog"`
	History     int                `json:"history"`
}

// LevelsResponse lists the catalogue.
type LevelsResponse struct {
	Current string         `json:"current"`
	Order   []string       `json:"order"`
	Levels  []levels.Level `json:"levels"`
}

// writeError maps contract errors to 400, missing boards to 404 and
// everything else to 500.
func (h *Handlers) writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	case board.IsContract(err), errors.Is(err, store.ErrInvalidName):
		logger.Warn("Request refused", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "CONTRACT"})
	default:
		logger.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "INTERNAL"})
	}
}

func badRequest(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Invalid request body", "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleConnect handles POST /v1/connections.
//
// Response:
//
//	200 OK: engine.TurnResult (ok=false for a rejected pair)
//	400 Bad Request: malformed body or contract error
func (h *Handlers) HandleConnect(c *gin.Context) {
	logger := h.logger.With("request_id", getOrCreateRequestID(c), "handler", "HandleConnect")

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	a, err := board.ParseVertex(req.A)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	b, err := board.ParseVertex(req.B)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	res, err := h.eng.Connect(c.Request.Context(), a, b)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleSubmitPair handles POST /v1/pairs.
//
// Response:
//
//	200 OK: engine.TurnResult (ok=false for a rejected pair)
//	400 Bad Request: malformed body or contract error
func (h *Handlers) HandleSubmitPair(c *gin.Context) {
	logger := h.logger.With("request_id", getOrCreateRequestID(c), "handler", "HandleSubmitPair")

	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	level := req.Level
	if level == "" {
		level = h.eng.Level()
	}
	res, err := h.eng.SubmitPair(c.Request.Context(), board.Pair{First: req.First, Second: req.Second}, level)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleUndo handles POST /v1/undo.
func (h *Handlers) HandleUndo(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	undone := h.eng.Undo(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"undone": undone, "history": h.eng.HistoryLen()})
}

// HandleReset handles POST /v1/reset.
func (h *Handlers) HandleReset(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.eng.Reset(c.Request.Context())
	c.JSON(http.StatusOK, h.boardLocked())
}

// HandleSetLevel handles POST /v1/level.
func (h *Handlers) HandleSetLevel(c *gin.Context) {
	logger := h.logger.With("request_id", getOrCreateRequestID(c), "handler", "HandleSetLevel")

	var req LevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.eng.SetLevel(req.Level); err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"level": h.eng.Level()})
}

// HandleBoard handles GET /v1/board.
func (h *Handlers) HandleBoard(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, h.boardLocked())
}

func (h *Handlers) boardLocked() BoardResponse {
	return BoardResponse{
		Level:       h.eng.Level(),
		Rows:        h.eng.RowCounts(),
		Connections: h.eng.Connections(),
		Pairs:       h.eng.Pairs(),
		Pending:     h.eng.Pending(),
		Groups:      h.eng.Groups(),
		Orientation: h.eng.Orientations(),
		PatternLog:  h.eng.PatternLog(),
		History:     h.eng.HistoryLen(),
	}
}

// HandleLevels handles GET /v1/levels.
func (h *Handlers) HandleLevels(c *gin.Context) {
	logger := h.logger.With("request_id", getOrCreateRequestID(c), "handler", "HandleLevels")

	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.eng.Policy()
	order, err := p.Order()
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, LevelsResponse{Current: h.eng.Level(), Order: order, Levels: p.Levels()})
}

// HandleListBoards handles GET /v1/boards.
func (h *Handlers) HandleListBoards(c *gin.Context) {
	logger := h.logger.With("request_id", getOrCreateRequestID(c), "handler", "HandleListBoards")

	names, err := h.boards.List(c.Request.Context())
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"boards": names})
}

// HandleSaveBoard handles POST /v1/boards/:name.
func (h *Handlers) HandleSaveBoard(c *gin.Context) {
	logger := h.logger.With("request_id", getOrCreateRequestID(c), "handler", "HandleSaveBoard")
	name := c.Param("name")

	h.mu.Lock()
	b := store.Board{Name: name, Level: h.eng.Level(), Snapshot: h.eng.Snapshot()}
	h.mu.Unlock()

	if err := h.boards.Save(c.Request.Context(), b); err != nil {
		h.writeError(c, logger, err)
		return
	}
	logger.Info("Board saved", "name", name, "pairs", len(b.Snapshot.Pairs))
	c.JSON(http.StatusCreated, gin.H{"name": name})
}

// HandleRestoreBoard handles POST /v1/boards/:name/restore.
func (h *Handlers) HandleRestoreBoard(c *gin.Context) {
	logger := h.logger.With("request_id", getOrCreateRequestID(c), "handler", "HandleRestoreBoard")

	b, err := h.boards.Load(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, logger, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err = h.eng.Restore(c.Request.Context(), b.Snapshot); err != nil {
		h.writeError(c, logger, err)
		return
	}
	if b.Level != "" {
		if err = h.eng.SetLevel(b.Level); err != nil {
			h.writeError(c, logger, err)
			return
		}
	}
	c.JSON(http.StatusOK, h.boardLocked())
}
