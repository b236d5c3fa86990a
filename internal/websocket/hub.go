package websocket

import (
	"sync"

	"github.com/Llayon/fantasy-autobattler-sub008/pkg/logger"
)

// Hub tracks one connection per player and routes outbound messages.
type Hub struct {
	// playerID -> *Client
	clients map[string]*Client
	mu      sync.RWMutex

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
}

// Message is the envelope written to clients.
type Message struct {
	PlayerID string      `json:"-"` // recipient; empty means everyone
	Type     string      `json:"type"`
	Payload  interface{} `json:"payload"`
}

// MatchFoundMessage tells a queued player their battle has started.
type MatchFoundMessage struct {
	BattleID   string `json:"battleId"`
	OpponentID string `json:"opponentId"`
	RatingDiff int    `json:"ratingDiff"`
}

// QueueUpdateMessage carries waiting-pool changes to subscribed clients.
type QueueUpdateMessage struct {
	WaitingCount int `json:"waitingCount"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A player reconnecting replaces their previous connection.
	if old, exists := h.clients[client.playerID]; exists {
		close(old.send)
		logger.Info("Replaced existing WebSocket connection", "playerId", client.playerID)
	}

	h.clients[client.playerID] = client
	logger.Info("WebSocket client registered",
		"playerId", client.playerID,
		"totalClients", len(h.clients),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, exists := h.clients[client.playerID]; exists && current == client {
		delete(h.clients, client.playerID)
		close(client.send)
		logger.Info("WebSocket client unregistered",
			"playerId", client.playerID,
			"totalClients", len(h.clients),
		)
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if message.PlayerID == "" {
		for _, client := range h.clients {
			select {
			case client.send <- message:
			default:
				logger.Warn("Client send channel full, unregistering", "playerId", client.playerID)
				go func(c *Client) {
					h.unregister <- c
				}(client)
			}
		}
		return
	}

	if client, exists := h.clients[message.PlayerID]; exists {
		select {
		case client.send <- message:
		default:
			logger.Warn("Client send channel full", "playerId", message.PlayerID)
		}
	}
}

// SendToPlayer queues a message for one player. No-op when the player
// has no live connection.
func (h *Hub) SendToPlayer(playerID string, msgType string, payload interface{}) {
	h.broadcast <- &Message{
		PlayerID: playerID,
		Type:     msgType,
		Payload:  payload,
	}
}

// Broadcast queues a message for every connected player.
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	h.broadcast <- &Message{
		Type:    msgType,
		Payload: payload,
	}
}

// NotifyMatchFound pushes a match_found event. Delivery is best-effort;
// the queue entry endpoint remains the source of truth.
func (h *Hub) NotifyMatchFound(playerID, battleID, opponentID string, ratingDiff int) {
	h.SendToPlayer(playerID, "match_found", MatchFoundMessage{
		BattleID:   battleID,
		OpponentID: opponentID,
		RatingDiff: ratingDiff,
	})
}
