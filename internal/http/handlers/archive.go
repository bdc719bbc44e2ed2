package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"flagstat-service/internal/archive"
)

// Export serves the full persisted document, human-readable.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	doc := archive.FromState(h.store.Snapshot())
	data, err := archive.Encode(doc)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "encode failed", h.logger)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="flagstat-export.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil && h.logger != nil {
		h.logger.Error("failed to write export", "err", err)
	}
}

// Import replaces the whole store with a decoded document. The decoder
// never fails; whatever it recovered becomes the new state, and the
// response carries the per-field defaulting report.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read body", h.logger)
		return
	}

	doc, report := archive.Decode(data)
	h.store.Replace(doc.ToState())

	logger := loggerFromContext(r, h.logger)
	if logger != nil {
		for _, entry := range report {
			logger.Warn("import recovered field", "detail", entry)
		}
		logger.Info("imported document",
			"players", len(doc.Players),
			"games", len(doc.Games),
			"recovered", len(report),
		)
	}

	resp := struct {
		Players   int            `json:"players"`
		Games     int            `json:"games"`
		Recovered archive.Report `json:"recovered,omitempty"`
	}{
		Players:   len(doc.Players),
		Games:     len(doc.Games),
		Recovered: report,
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// SelectedGame records the transient UI selection.
func (h *Handler) SelectedGame(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{"selectedGameId": h.store.SelectedGameID()}, h.logger)
	case http.MethodPut:
		var req struct {
			GameID string `json:"gameId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
			return
		}
		if err := h.store.SelectGame(req.GameID); err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"selectedGameId": req.GameID}, h.logger)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}
