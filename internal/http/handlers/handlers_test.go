package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flagstat-service/internal/domain"
	"flagstat-service/internal/live"
	"flagstat-service/internal/store"
	"flagstat-service/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(st, live.NewHub(logger), nil, logger)
	h.now = func() time.Time { return time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC) }
	seq := 0
	h.newID = func() string {
		seq++
		return "id-" + string(rune('0'+seq))
	}
	return h, st
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthAndReady(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("health POST: expected 405, got %d", rec.Code)
	}
}

func TestAddPlayerValidatesName(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(`{"jersey": "7"}`))
	h.Players(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(`{"name": "  Ava  ", "jersey": "7"}`))
	h.Players(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var player domain.Player
	decodeBody(t, rec, &player)
	if player.Name != "Ava" {
		t.Fatalf("expected trimmed name, got %q", player.Name)
	}
	if player.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
}

func TestPlayerByIDLifecycle(t *testing.T) {
	h, st := newTestHandler(t)
	if err := st.AddPlayer(testutil.SamplePlayer("a")); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	rec := httptest.NewRecorder()
	h.PlayerByID(rec, httptest.NewRequest(http.MethodGet, "/players/a", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/players/a", strings.NewReader(`{"jersey": "12"}`))
	h.PlayerByID(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.Player
	decodeBody(t, rec, &updated)
	if updated.Jersey != "12" {
		t.Fatalf("jersey not updated: %+v", updated)
	}
	if updated.Name != "Player a" {
		t.Fatalf("name should be untouched by partial update: %+v", updated)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/players/a", strings.NewReader(`{"name": "  "}`))
	h.PlayerByID(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty name: expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.PlayerByID(rec, httptest.NewRequest(http.MethodDelete, "/players/a", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE: expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.PlayerByID(rec, httptest.NewRequest(http.MethodGet, "/players/a", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET after delete: expected 404, got %d", rec.Code)
	}
}

func TestAddGameValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing opponent", `{"ruleSet": "5V5"}`, http.StatusBadRequest},
		{"bad date", `{"opponent": "Rivals", "date": "08/30/2026"}`, http.StatusBadRequest},
		{"unknown rule set", `{"opponent": "Rivals", "ruleSet": "11V11"}`, http.StatusBadRequest},
		{"defaults applied", `{"opponent": "Rivals"}`, http.StatusCreated},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(tc.body))
		h.Games(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestAddGameDefaultsDateAndRuleSet(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(`{"opponent": "Rivals"}`))
	h.Games(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var game domain.Game
	decodeBody(t, rec, &game)
	if game.Date != "2026-08-30" {
		t.Fatalf("expected today's date, got %q", game.Date)
	}
	if game.RuleSet != domain.RuleSet5v5 {
		t.Fatalf("expected default rule set, got %q", game.RuleSet)
	}
	if game.Events == nil || len(game.Events) != 0 {
		t.Fatalf("expected empty event log, got %+v", game.Events)
	}
}

func TestAppendEventValidation(t *testing.T) {
	h, st := newTestHandler(t)
	game := testutil.SampleGame("g1")
	game.RuleSet = domain.RuleSet7v7
	if err := st.AddGame(game); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/games/g1/events", strings.NewReader(body))
		h.GameSubtree(rec, req)
		return rec
	}

	if rec := post(`{"type": "SAFETY_2", "playerId": "a"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown type: expected 400, got %d", rec.Code)
	}
	if rec := post(`{"type": "SACK"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing playerId: expected 400, got %d", rec.Code)
	}
	// PAT return is a 5v5 capability; this game is 7v7.
	if rec := post(`{"type": "PAT_RET_2", "playerId": "a"}`); rec.Code != http.StatusConflict {
		t.Fatalf("gated type: expected 409, got %d", rec.Code)
	}

	rec := post(`{"type": "PASS_TD", "playerId": "a", "receiverId": "b", "yards": 24}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var ev domain.StatEvent
	decodeBody(t, rec, &ev)
	if ev.ID == "" || ev.Timestamp.IsZero() {
		t.Fatalf("expected server-assigned identity, got %+v", ev)
	}
	if ev.Yards != 24 || ev.ReceiverID != "b" {
		t.Fatalf("event fields lost: %+v", ev)
	}
}

func TestGameEventsListNewestFirst(t *testing.T) {
	h, st := newTestHandler(t)
	if err := st.AddGame(testutil.SampleGame("g1")); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	for _, id := range []string{"e1", "e2", "e3"} {
		if err := st.AppendEvent("g1", testutil.SampleEvent(id, domain.EventFlagPull, "a")); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	h.GameSubtree(rec, httptest.NewRequest(http.MethodGet, "/games/g1/events", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var events []domain.StatEvent
	decodeBody(t, rec, &events)
	if len(events) != 3 || events[0].ID != "e3" || events[2].ID != "e1" {
		t.Fatalf("expected newest first, got %+v", events)
	}
}

func TestRemoveAndClearEvents(t *testing.T) {
	h, st := newTestHandler(t)
	if err := st.AddGame(testutil.SampleGame("g1")); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	for _, id := range []string{"e1", "e2"} {
		if err := st.AppendEvent("g1", testutil.SampleEvent(id, domain.EventSack, "a")); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	h.GameSubtree(rec, httptest.NewRequest(http.MethodDelete, "/games/g1/events/e1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove event: expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GameSubtree(rec, httptest.NewRequest(http.MethodDelete, "/games/g1/events/e1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("remove twice: expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GameSubtree(rec, httptest.NewRequest(http.MethodDelete, "/games/g1/events", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear: expected 204, got %d", rec.Code)
	}
	game, _ := st.Game("g1")
	if len(game.Events) != 0 {
		t.Fatalf("log not cleared: %+v", game.Events)
	}
}

func TestBoxScoreEndpoint(t *testing.T) {
	h, st := newTestHandler(t)
	if err := st.AddPlayer(testutil.SamplePlayer("a")); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if err := st.AddGame(testutil.SampleGame("g1")); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	if err := st.AppendEvent("g1", testutil.SampleEvent("e1", domain.EventRushTD, "a")); err != nil {
		t.Fatalf("AppendEvent: %v", err)
	}

	rec := httptest.NewRecorder()
	h.GameSubtree(rec, httptest.NewRequest(http.MethodGet, "/games/g1/boxscore", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var score domain.BoxScore
	decodeBody(t, rec, &score)
	if score.GameID != "g1" || len(score.Lines) != 1 {
		t.Fatalf("unexpected box score: %+v", score)
	}
	if score.Lines[0].Stats.Points != 6 {
		t.Fatalf("expected 6 points, got %+v", score.Lines[0].Stats)
	}

	rec = httptest.NewRecorder()
	h.GameSubtree(rec, httptest.NewRequest(http.MethodGet, "/games/missing/boxscore", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing game: expected 404, got %d", rec.Code)
	}
}

func TestLiveFeedUnknownGame(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GameSubtree(rec, httptest.NewRequest(http.MethodGet, "/games/missing/live", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	h, st := newTestHandler(t)
	if err := st.AddPlayer(testutil.SamplePlayer("a")); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if err := st.AddGame(testutil.SampleGame("g1")); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	if err := st.AppendEvent("g1", testutil.SampleEvent("e1", domain.EventDefTD, "a")); err != nil {
		t.Fatalf("AppendEvent: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", got)
	}
	exported := rec.Body.Bytes()

	// Wipe and restore through import.
	st.Replace(store.State{})
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(string(exported)))
	h.Import(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Players   int      `json:"players"`
		Games     int      `json:"games"`
		Recovered []string `json:"recovered"`
	}
	decodeBody(t, rec, &resp)
	if resp.Players != 1 || resp.Games != 1 || len(resp.Recovered) != 0 {
		t.Fatalf("unexpected import summary: %+v", resp)
	}

	game, ok := st.Game("g1")
	if !ok || len(game.Events) != 1 {
		t.Fatalf("state not restored: %+v", game)
	}
}

func TestImportNeverFails(t *testing.T) {
	h, st := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(`totally broken`))
	h.Import(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with recovery, got %d", rec.Code)
	}
	var resp struct {
		Players   int      `json:"players"`
		Games     int      `json:"games"`
		Recovered []string `json:"recovered"`
	}
	decodeBody(t, rec, &resp)
	if resp.Players != 0 || resp.Games != 0 {
		t.Fatalf("expected empty store, got %+v", resp)
	}
	if len(resp.Recovered) == 0 {
		t.Fatalf("expected recovery report")
	}
	if len(st.Players()) != 0 || len(st.Games()) != 0 {
		t.Fatalf("store should be empty after broken import")
	}
}

func TestSelectedGame(t *testing.T) {
	h, st := newTestHandler(t)
	if err := st.AddGame(testutil.SampleGame("g1")); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/ui/selected-game", strings.NewReader(`{"gameId": "g1"}`))
	h.SelectedGame(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.SelectedGame(rec, httptest.NewRequest(http.MethodGet, "/ui/selected-game", nil))
	var got map[string]string
	decodeBody(t, rec, &got)
	if got["selectedGameId"] != "g1" {
		t.Fatalf("expected g1 selected, got %+v", got)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/ui/selected-game", strings.NewReader(`{"gameId": "missing"}`))
	h.SelectedGame(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown game: expected 404, got %d", rec.Code)
	}
}

func TestPathID(t *testing.T) {
	cases := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/players/a", "a", true},
		{"/players/", "", false},
		{"/players/a/b", "", false},
		{"/players/a%20b", "", false},
	}
	for _, tc := range cases {
		got, ok := pathID(tc.path, "/players/")
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("pathID(%q): got (%q, %v), want (%q, %v)", tc.path, got, ok, tc.want, tc.wantOK)
		}
	}
}
