package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/service"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/logger"
)

// QueueHandler exposes the matchmaking queue over HTTP.
type QueueHandler struct {
	svc *service.MatchmakingService
}

func NewQueueHandler(svc *service.MatchmakingService) *QueueHandler {
	return &QueueHandler{svc: svc}
}

type joinQueueRequest struct {
	TeamID string `json:"teamId" binding:"required"`
}

// JoinQueue puts the authenticated player into the queue with the given
// team. Joining while already queued resets the wait clock.
func (h *QueueHandler) JoinQueue(c *gin.Context) {
	playerID := c.GetString("playerId")

	var req joinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "teamId is required"})
		return
	}

	entry, err := h.svc.JoinQueue(c.Request.Context(), playerID, req.TeamID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// LeaveQueue removes the player's waiting entry.
func (h *QueueHandler) LeaveQueue(c *gin.Context) {
	playerID := c.GetString("playerId")

	if err := h.svc.LeaveQueue(c.Request.Context(), playerID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"left": true})
}

// FindMatch runs one matching attempt. A null match means no compatible
// opponent was available; clients poll again.
func (h *QueueHandler) FindMatch(c *gin.Context) {
	playerID := c.GetString("playerId")

	result, err := h.svc.FindMatch(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": result})
}

// GetEntry returns the player's latest queue entry, null when the
// player never queued.
func (h *QueueHandler) GetEntry(c *gin.Context) {
	playerID := c.GetString("playerId")

	entry, err := h.svc.GetEntry(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// GetStats reports waiting-pool aggregates. Public endpoint.
func (h *QueueHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Cleanup triggers an on-demand expiry sweep. The janitor runs the same
// sweep on a timer; both are idempotent.
func (h *QueueHandler) Cleanup(c *gin.Context) {
	count, err := h.svc.CleanupExpired(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": count})
}

func (h *QueueHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrTeamDataMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrBattleUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "battle service unavailable"})

	default:
		logger.Error("Queue request failed",
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
