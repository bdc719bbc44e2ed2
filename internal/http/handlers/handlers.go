package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flagstat-service/internal/domain"
	"flagstat-service/internal/id"
	"flagstat-service/internal/live"
	"flagstat-service/internal/metrics"
	"flagstat-service/internal/store"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the store boundary.
type Handler struct {
	store    *store.MemoryStore
	hub      *live.Hub
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      nowFunc
	newID    func() string
}

// NewHandler constructs a Handler with defaults.
func NewHandler(st *store.MemoryStore, hub *live.Hub, recorder *metrics.Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		store:    st,
		hub:      hub,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
		newID:    id.New,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "store not configured", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Players lists the roster or adds a player.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Players(), h.logger)
	case http.MethodPost:
		h.addPlayer(w, r)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) addPlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Jersey   string `json:"jersey"`
		Position string `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required", h.logger)
		return
	}

	player := domain.Player{
		ID:       h.newID(),
		Name:     strings.TrimSpace(req.Name),
		Jersey:   req.Jersey,
		Position: req.Position,
	}
	if err := h.store.AddPlayer(player); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, player, h.logger)
}

// PlayerByID updates or removes a single roster entry.
func (h *Handler) PlayerByID(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(r.URL.Path, "/players/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}

	switch r.Method {
	case http.MethodGet:
		player, ok := h.store.Player(playerID)
		if !ok {
			writeError(w, r, http.StatusNotFound, "player not found", h.logger)
			return
		}
		writeJSON(w, http.StatusOK, player, h.logger)
	case http.MethodPut:
		h.updatePlayer(w, r, playerID)
	case http.MethodDelete:
		if err := h.store.RemovePlayer(playerID); err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) updatePlayer(w http.ResponseWriter, r *http.Request, playerID string) {
	var req struct {
		Name     *string `json:"name"`
		Jersey   *string `json:"jersey"`
		Position *string `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name cannot be empty", h.logger)
		return
	}

	upd := store.PlayerUpdate{Name: req.Name, Jersey: req.Jersey, Position: req.Position}
	if err := h.store.UpdatePlayer(playerID, upd); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	player, _ := h.store.Player(playerID)
	writeJSON(w, http.StatusOK, player, h.logger)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrPlayerNotFound),
		errors.Is(err, store.ErrGameNotFound),
		errors.Is(err, store.ErrEventNotFound):
		writeError(w, r, http.StatusNotFound, err.Error(), h.logger)
	case errors.Is(err, store.ErrPlayerExists),
		errors.Is(err, store.ErrGameExists),
		errors.Is(err, store.ErrEventNotAllowed):
		writeError(w, r, http.StatusConflict, err.Error(), h.logger)
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error", h.logger)
	}
}

// pathID extracts a single trailing id segment after prefix.
func pathID(path, prefix string) (string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	decoded, err := url.PathUnescape(rest)
	if err != nil || decoded == "" || strings.ContainsAny(decoded, " \t/") {
		return "", false
	}
	return decoded, true
}
