// Package store owns the application state: the shared roster, the game
// collection with their event logs, and the transient UI selection. All
// mutations are pure (State, action) -> State transitions; MemoryStore
// serializes them and notifies persistence hooks after each one.
package store

import (
	"errors"

	"flagstat-service/internal/domain"
	"flagstat-service/internal/rules"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerExists    = errors.New("player id already exists")
	ErrGameNotFound    = errors.New("game not found")
	ErrGameExists      = errors.New("game id already exists")
	ErrEventNotFound   = errors.New("event not found")
	ErrEventNotAllowed = errors.New("event type not allowed under game rule set")
)

// State is the whole-value application state. Transitions never mutate
// their input; they return a fresh State sharing no slices with it.
type State struct {
	Players        []domain.Player
	Games          []domain.Game
	SelectedGameID string
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{SelectedGameID: s.SelectedGameID}
	if s.Players != nil {
		out.Players = make([]domain.Player, len(s.Players))
		copy(out.Players, s.Players)
	}
	if s.Games != nil {
		out.Games = make([]domain.Game, len(s.Games))
		for i, g := range s.Games {
			out.Games[i] = cloneGame(g)
		}
	}
	return out
}

func cloneGame(g domain.Game) domain.Game {
	if g.Events != nil {
		events := make([]domain.StatEvent, len(g.Events))
		copy(events, g.Events)
		g.Events = events
	}
	return g
}

// PlayerUpdate carries the mutable display attributes of a player. Nil
// fields are left unchanged.
type PlayerUpdate struct {
	Name     *string
	Jersey   *string
	Position *string
}

func addPlayer(s State, p domain.Player) (State, error) {
	for _, existing := range s.Players {
		if existing.ID == p.ID {
			return s, ErrPlayerExists
		}
	}
	next := s.Clone()
	next.Players = append(next.Players, p)
	return next, nil
}

func updatePlayer(s State, id string, upd PlayerUpdate) (State, error) {
	next := s.Clone()
	for i := range next.Players {
		if next.Players[i].ID != id {
			continue
		}
		if upd.Name != nil {
			next.Players[i].Name = *upd.Name
		}
		if upd.Jersey != nil {
			next.Players[i].Jersey = *upd.Jersey
		}
		if upd.Position != nil {
			next.Players[i].Position = *upd.Position
		}
		return next, nil
	}
	return s, ErrPlayerNotFound
}

// removePlayer drops the player and cascades: every event in every game
// crediting the id as primary actor or receiver is removed with it.
func removePlayer(s State, id string) (State, error) {
	found := false
	next := s.Clone()
	players := next.Players[:0]
	for _, p := range next.Players {
		if p.ID == id {
			found = true
			continue
		}
		players = append(players, p)
	}
	if !found {
		return s, ErrPlayerNotFound
	}
	next.Players = players

	for gi := range next.Games {
		events := next.Games[gi].Events[:0]
		for _, ev := range next.Games[gi].Events {
			if ev.PlayerID == id || ev.ReceiverID == id {
				continue
			}
			events = append(events, ev)
		}
		next.Games[gi].Events = events
	}
	return next, nil
}

func addGame(s State, g domain.Game) (State, error) {
	for _, existing := range s.Games {
		if existing.ID == g.ID {
			return s, ErrGameExists
		}
	}
	next := s.Clone()
	g.RuleSet = rules.Normalize(g.RuleSet)
	if g.Events == nil {
		g.Events = []domain.StatEvent{}
	}
	next.Games = append(next.Games, cloneGame(g))
	return next, nil
}

// removeGame drops the game and destroys its owned event log. A selection
// pointing at the game is cleared.
func removeGame(s State, id string) (State, error) {
	found := false
	next := s.Clone()
	games := next.Games[:0]
	for _, g := range next.Games {
		if g.ID == id {
			found = true
			continue
		}
		games = append(games, g)
	}
	if !found {
		return s, ErrGameNotFound
	}
	next.Games = games
	if next.SelectedGameID == id {
		next.SelectedGameID = ""
	}
	return next, nil
}

// appendEvent adds one event to a game's log. Rule-gated types are
// rejected here, at creation time; aggregation honors whatever the log
// already contains.
func appendEvent(s State, gameID string, ev domain.StatEvent) (State, error) {
	next := s.Clone()
	for gi := range next.Games {
		if next.Games[gi].ID != gameID {
			continue
		}
		if !rules.AllowsEvent(next.Games[gi].RuleSet, ev.Type) {
			return s, ErrEventNotAllowed
		}
		next.Games[gi].Events = append(next.Games[gi].Events, ev)
		return next, nil
	}
	return s, ErrGameNotFound
}

func removeEvent(s State, gameID, eventID string) (State, error) {
	next := s.Clone()
	for gi := range next.Games {
		if next.Games[gi].ID != gameID {
			continue
		}
		events := next.Games[gi].Events
		for ei := range events {
			if events[ei].ID != eventID {
				continue
			}
			next.Games[gi].Events = append(events[:ei], events[ei+1:]...)
			return next, nil
		}
		return s, ErrEventNotFound
	}
	return s, ErrGameNotFound
}

func clearEvents(s State, gameID string) (State, error) {
	next := s.Clone()
	for gi := range next.Games {
		if next.Games[gi].ID != gameID {
			continue
		}
		next.Games[gi].Events = []domain.StatEvent{}
		return next, nil
	}
	return s, ErrGameNotFound
}

// selectGame records the UI selection. An empty id clears it.
func selectGame(s State, gameID string) (State, error) {
	if gameID != "" {
		found := false
		for _, g := range s.Games {
			if g.ID == gameID {
				found = true
				break
			}
		}
		if !found {
			return s, ErrGameNotFound
		}
	}
	next := s.Clone()
	next.SelectedGameID = gameID
	return next, nil
}
