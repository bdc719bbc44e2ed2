package archive

import (
	"encoding/json"

	"flagstat-service/internal/domain"
	"flagstat-service/internal/rules"
)

// Encode renders the document as indented, human-readable JSON.
func Encode(doc Document) ([]byte, error) {
	if doc.Players == nil {
		doc.Players = []domain.Player{}
	}
	if doc.Games == nil {
		doc.Games = []domain.Game{}
	}
	for i := range doc.Games {
		if doc.Games[i].Events == nil {
			doc.Games[i].Events = []domain.StatEvent{}
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a document, recovering from malformed input field by
// field. It never fails: an unrecognized top-level shape degrades to an
// empty document, non-list collections degrade to empty lists, and a
// missing or unknown ruleSet falls back to the default variant. The
// report enumerates everything that was defaulted or dropped.
func Decode(data []byte) (Document, Report) {
	var report Report
	doc := Document{
		Players: []domain.Player{},
		Games:   []domain.Game{},
	}

	var raw struct {
		Players json.RawMessage `json:"players"`
		Games   json.RawMessage `json:"games"`
		UI      json.RawMessage `json:"ui"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		report.add("document: unrecognized shape, using empty store")
		return doc, report
	}

	doc.Players = decodePlayers(raw.Players, &report)
	doc.Games = decodeGames(raw.Games, &report)

	if len(raw.UI) > 0 {
		var ui UIState
		if err := json.Unmarshal(raw.UI, &ui); err != nil {
			report.add("ui: unrecognized shape, selection cleared")
		} else {
			doc.UI = ui
		}
	}

	if doc.UI.SelectedGameID != "" && !containsGame(doc.Games, doc.UI.SelectedGameID) {
		report.add("ui.selectedGameId: game %q not present, selection cleared", doc.UI.SelectedGameID)
		doc.UI.SelectedGameID = ""
	}

	return doc, report
}

func decodePlayers(raw json.RawMessage, report *Report) []domain.Player {
	players := []domain.Player{}
	if len(raw) == 0 {
		return players
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		report.add("players: not a list, defaulted to empty")
		return players
	}

	for i, item := range items {
		var p domain.Player
		if err := json.Unmarshal(item, &p); err != nil {
			report.add("players[%d]: unrecognized entry dropped", i)
			continue
		}
		if p.ID == "" {
			report.add("players[%d]: missing id, entry dropped", i)
			continue
		}
		players = append(players, p)
	}
	return players
}

func decodeGames(raw json.RawMessage, report *Report) []domain.Game {
	games := []domain.Game{}
	if len(raw) == 0 {
		return games
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		report.add("games: not a list, defaulted to empty")
		return games
	}

	for i, item := range items {
		var g struct {
			ID       string          `json:"id"`
			Opponent string          `json:"opponent"`
			Date     string          `json:"date"`
			RuleSet  domain.RuleSet  `json:"ruleSet"`
			Notes    string          `json:"notes"`
			Events   json.RawMessage `json:"events"`
		}
		if err := json.Unmarshal(item, &g); err != nil {
			report.add("games[%d]: unrecognized entry dropped", i)
			continue
		}
		if g.ID == "" {
			report.add("games[%d]: missing id, entry dropped", i)
			continue
		}
		if !rules.Valid(g.RuleSet) {
			report.add("games[%d].ruleSet: %q unknown, defaulted to %s", i, g.RuleSet, rules.DefaultRuleSet)
			g.RuleSet = rules.DefaultRuleSet
		}
		games = append(games, domain.Game{
			ID:       g.ID,
			Opponent: g.Opponent,
			Date:     g.Date,
			RuleSet:  g.RuleSet,
			Notes:    g.Notes,
			Events:   decodeEvents(g.Events, i, report),
		})
	}
	return games
}

// decodeEvents keeps events with unrecognized type tags verbatim; only
// structurally broken entries or entries missing identity are dropped.
func decodeEvents(raw json.RawMessage, gameIndex int, report *Report) []domain.StatEvent {
	events := []domain.StatEvent{}
	if len(raw) == 0 {
		return events
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		report.add("games[%d].events: not a list, defaulted to empty", gameIndex)
		return events
	}

	for i, item := range items {
		var ev domain.StatEvent
		if err := json.Unmarshal(item, &ev); err != nil {
			report.add("games[%d].events[%d]: unrecognized entry dropped", gameIndex, i)
			continue
		}
		if ev.ID == "" {
			report.add("games[%d].events[%d]: missing id, entry dropped", gameIndex, i)
			continue
		}
		if ev.PlayerID == "" {
			report.add("games[%d].events[%d]: missing playerId, entry dropped", gameIndex, i)
			continue
		}
		events = append(events, ev)
	}
	return events
}

func containsGame(games []domain.Game, id string) bool {
	for _, g := range games {
		if g.ID == id {
			return true
		}
	}
	return false
}
