// Package http wires the service routes.
package http

import (
	nethttp "net/http"

	"flagstat-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/players", handler.Players)
	mux.HandleFunc("/players/", handler.PlayerByID)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/", handler.GameSubtree)
	mux.HandleFunc("/export", handler.Export)
	mux.HandleFunc("/import", handler.Import)
	mux.HandleFunc("/ui/selected-game", handler.SelectedGame)
	return mux
}
