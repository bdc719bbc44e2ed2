package handlers

import (
	"net/http"

	"github.com/coder/websocket"

	"flagstat-service/internal/live"
	"flagstat-service/internal/stats"
)

// liveFeed upgrades the connection and streams box-score updates for one
// game until the client disconnects. The current box score is pushed
// immediately on subscribe.
func (h *Handler) liveFeed(w http.ResponseWriter, r *http.Request, gameID string) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.hub == nil {
		writeError(w, r, http.StatusServiceUnavailable, "live feed not configured", h.logger)
		return
	}
	game, ok := h.store.Game(gameID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("websocket accept failed", "err", err)
		}
		return
	}

	client := live.NewClient(h.newID(), gameID, conn)
	h.hub.Register(client)
	defer h.hub.Unregister(gameID, client.ID)

	ctx := r.Context()
	go client.WritePump(ctx)

	// Initial snapshot so subscribers render before the next mutation.
	h.hub.Broadcast(gameID, stats.BuildBoxScore(game, h.store.Players()))

	// Clients never send payloads; reading only detects disconnect.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}
