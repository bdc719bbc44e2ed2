package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flagstat-service/internal/domain"
	"flagstat-service/internal/rules"
	"flagstat-service/internal/stats"
	"flagstat-service/internal/timeutil"
)

// Games lists the game collection or creates a game.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Games(), h.logger)
	case http.MethodPost:
		h.addGame(w, r)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) addGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Opponent string         `json:"opponent"`
		Date     string         `json:"date"`
		RuleSet  domain.RuleSet `json:"ruleSet"`
		Notes    string         `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Opponent) == "" {
		writeError(w, r, http.StatusBadRequest, "opponent is required", h.logger)
		return
	}
	if req.Date == "" {
		req.Date = timeutil.FormatDate(h.now())
	} else if !timeutil.ValidDate(req.Date) {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}
	if req.RuleSet == "" {
		req.RuleSet = rules.DefaultRuleSet
	} else if !rules.Valid(req.RuleSet) {
		writeError(w, r, http.StatusBadRequest, "unknown ruleSet", h.logger)
		return
	}

	game := domain.Game{
		ID:       h.newID(),
		Opponent: strings.TrimSpace(req.Opponent),
		Date:     req.Date,
		RuleSet:  req.RuleSet,
		Notes:    req.Notes,
		Events:   []domain.StatEvent{},
	}
	if err := h.store.AddGame(game); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, game, h.logger)
}

// GameSubtree routes /games/{id} and its nested resources.
func (h *Handler) GameSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/games/")
	if rest == "" {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	parts := strings.Split(rest, "/")
	gameID, err := url.PathUnescape(parts[0])
	if err != nil || gameID == "" {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	switch {
	case len(parts) == 1:
		h.gameByID(w, r, gameID)
	case parts[1] == "events" && len(parts) == 2:
		h.gameEvents(w, r, gameID)
	case parts[1] == "events" && len(parts) == 3:
		h.gameEventByID(w, r, gameID, parts[2])
	case parts[1] == "boxscore" && len(parts) == 2:
		h.boxScore(w, r, gameID)
	case parts[1] == "live" && len(parts) == 2:
		h.liveFeed(w, r, gameID)
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

func (h *Handler) gameByID(w http.ResponseWriter, r *http.Request, gameID string) {
	switch r.Method {
	case http.MethodGet:
		game, ok := h.store.Game(gameID)
		if !ok {
			writeError(w, r, http.StatusNotFound, "game not found", h.logger)
			return
		}
		writeJSON(w, http.StatusOK, game, h.logger)
	case http.MethodDelete:
		if err := h.store.RemoveGame(gameID); err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) gameEvents(w http.ResponseWriter, r *http.Request, gameID string) {
	switch r.Method {
	case http.MethodGet:
		game, ok := h.store.Game(gameID)
		if !ok {
			writeError(w, r, http.StatusNotFound, "game not found", h.logger)
			return
		}
		// Latest first is display order only; aggregation never depends on it.
		events := make([]domain.StatEvent, len(game.Events))
		for i, ev := range game.Events {
			events[len(game.Events)-1-i] = ev
		}
		writeJSON(w, http.StatusOK, events, h.logger)
	case http.MethodPost:
		h.appendEvent(w, r, gameID)
	case http.MethodDelete:
		if err := h.store.ClearEvents(gameID); err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) appendEvent(w http.ResponseWriter, r *http.Request, gameID string) {
	var req struct {
		Type       domain.EventType `json:"type"`
		PlayerID   string           `json:"playerId"`
		ReceiverID string           `json:"receiverId"`
		Yards      int              `json:"yards"`
		Note       string           `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if !domain.KnownEventType(req.Type) {
		writeError(w, r, http.StatusBadRequest, "unknown event type", h.logger)
		return
	}
	if req.PlayerID == "" {
		writeError(w, r, http.StatusBadRequest, "playerId is required", h.logger)
		return
	}

	ev := domain.StatEvent{
		ID:         h.newID(),
		Timestamp:  h.now().UTC(),
		Type:       req.Type,
		PlayerID:   req.PlayerID,
		ReceiverID: req.ReceiverID,
		Yards:      req.Yards,
		Note:       req.Note,
	}
	if err := h.store.AppendEvent(gameID, ev); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev, h.logger)
}

func (h *Handler) gameEventByID(w http.ResponseWriter, r *http.Request, gameID, rawEventID string) {
	eventID, err := url.PathUnescape(rawEventID)
	if err != nil || eventID == "" {
		writeError(w, r, http.StatusBadRequest, "invalid event id", h.logger)
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := h.store.RemoveEvent(gameID, eventID); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) boxScore(w http.ResponseWriter, r *http.Request, gameID string) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	game, ok := h.store.Game(gameID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}

	start := time.Now()
	score := stats.BuildBoxScore(game, h.store.Players())
	if h.recorder != nil {
		h.recorder.RecordAggregation(time.Since(start), len(game.Events))
	}

	logger := loggerFromContext(r, h.logger)
	if logger != nil {
		logger.Info("served box score", "game_id", gameID, "count", len(score.Lines))
	}
	writeJSON(w, http.StatusOK, score, h.logger)
}
