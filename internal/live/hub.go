// Package live pushes recomputed box scores to WebSocket subscribers.
// Each client watches one game; every mutation touching that game's log
// triggers a broadcast of the fresh stats table.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

const sendBuffer = 8

// Client represents a single WebSocket subscriber watching one game.
type Client struct {
	ID     string
	GameID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// NewClient builds a client with a buffered send channel.
func NewClient(id, gameID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:     id,
		GameID: gameID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
	}
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection until the context ends or the channel closes.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub manages per-game subscriber sets.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[string]*Client
	logger  *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[string]*Client),
		logger:  logger,
	}
}

// Register adds a client to its game's subscriber set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.GameID]
	if !ok {
		set = make(map[string]*Client)
		h.clients[c.GameID] = set
	}
	set[c.ID] = c
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(gameID, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[gameID]
	if !ok {
		return
	}
	if c, ok := set[clientID]; ok {
		close(c.Send)
		delete(set, clientID)
	}
	if len(set) == 0 {
		delete(h.clients, gameID)
	}
}

// Subscribers returns the number of clients watching a game.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[gameID])
}

// Broadcast sends payload to every client watching gameID. Sends are
// non-blocking: a client with a full channel misses the update rather
// than stalling the mutation path. Returns the number of deliveries.
func (h *Hub) Broadcast(gameID string, payload any) int {
	data, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("live payload marshal failed", "err", err)
		}
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for _, c := range h.clients[gameID] {
		select {
		case c.Send <- data:
			delivered++
		default:
			// slow client, skip this update
		}
	}
	return delivered
}
