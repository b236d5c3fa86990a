package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/websocket"
)

// WebSocketHandler upgrades authenticated connections onto the hub.
type WebSocketHandler struct {
	hub *websocket.Hub
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	playerID, exists := c.Get("playerId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	websocket.ServeWs(h.hub, c.Writer, c.Request, playerID.(string))
}
