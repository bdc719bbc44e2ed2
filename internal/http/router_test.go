package http

import (
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"flagstat-service/internal/http/handlers"
	"flagstat-service/internal/live"
	"flagstat-service/internal/store"
)

func TestRouterRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := handlers.NewHandler(store.NewMemoryStore(), live.NewHub(logger), nil, logger)
	router := NewRouter(handler)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{nethttp.MethodGet, "/health", nethttp.StatusOK},
		{nethttp.MethodGet, "/ready", nethttp.StatusOK},
		{nethttp.MethodGet, "/players", nethttp.StatusOK},
		{nethttp.MethodGet, "/games", nethttp.StatusOK},
		{nethttp.MethodGet, "/export", nethttp.StatusOK},
		{nethttp.MethodGet, "/ui/selected-game", nethttp.StatusOK},
		{nethttp.MethodGet, "/players/missing", nethttp.StatusNotFound},
		{nethttp.MethodGet, "/games/missing", nethttp.StatusNotFound},
		{nethttp.MethodGet, "/nope", nethttp.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, rec.Code)
		}
	}
}
