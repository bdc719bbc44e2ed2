package store

import (
	"sync"

	"flagstat-service/internal/domain"
)

// Mutation action labels, reported to hooks and metrics.
const (
	ActionPlayerAdd    = "player.add"
	ActionPlayerUpdate = "player.update"
	ActionPlayerRemove = "player.remove"
	ActionGameAdd      = "game.add"
	ActionGameRemove   = "game.remove"
	ActionEventAppend  = "event.append"
	ActionEventRemove  = "event.remove"
	ActionEventsClear  = "events.clear"
	ActionGameSelect   = "game.select"
	ActionImport       = "import"
)

// MutationHook observes every successful state transition. Hooks receive
// the action label, the game id it touched (empty for roster/import
// actions), and a copy of the resulting state; the external boundary uses
// them to persist after each mutation and to push live box-score updates.
type MutationHook func(action string, gameID string, state State)

// MemoryStore is the single writer owning the application state. One
// transition completes before the next begins; reads serve copies.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
	hooks []MutationHook
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// OnMutation registers a hook. Registration is not synchronized with
// mutations; register everything before serving traffic.
func (s *MemoryStore) OnMutation(h MutationHook) {
	s.hooks = append(s.hooks, h)
}

// Snapshot returns a deep copy of the current state.
func (s *MemoryStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Players returns a copy of the roster.
func (s *MemoryStore) Players() []domain.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Player, len(s.state.Players))
	copy(out, s.state.Players)
	return out
}

// Player retrieves one roster entry by id.
func (s *MemoryStore) Player(id string) (domain.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.Players {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Player{}, false
}

// Games returns a copy of the game collection.
func (s *MemoryStore) Games() []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Game, len(s.state.Games))
	for i, g := range s.state.Games {
		out[i] = cloneGame(g)
	}
	return out
}

// Game retrieves one game, log included, by id.
func (s *MemoryStore) Game(id string) (domain.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.state.Games {
		if g.ID == id {
			return cloneGame(g), true
		}
	}
	return domain.Game{}, false
}

// SelectedGameID returns the transient UI selection.
func (s *MemoryStore) SelectedGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SelectedGameID
}

func (s *MemoryStore) apply(action, gameID string, transition func(State) (State, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := transition(s.state)
	if err != nil {
		return err
	}
	s.state = next
	for _, h := range s.hooks {
		h(action, gameID, next.Clone())
	}
	return nil
}

// Replace swaps the whole state, as when importing a document.
func (s *MemoryStore) Replace(state State) {
	_ = s.apply(ActionImport, "", func(State) (State, error) {
		return state.Clone(), nil
	})
}

// AddPlayer adds a roster entry.
func (s *MemoryStore) AddPlayer(p domain.Player) error {
	return s.apply(ActionPlayerAdd, "", func(st State) (State, error) {
		return addPlayer(st, p)
	})
}

// UpdatePlayer changes a player's mutable display attributes.
func (s *MemoryStore) UpdatePlayer(id string, upd PlayerUpdate) error {
	return s.apply(ActionPlayerUpdate, "", func(st State) (State, error) {
		return updatePlayer(st, id, upd)
	})
}

// RemovePlayer deletes a player and cascades across every event log.
func (s *MemoryStore) RemovePlayer(id string) error {
	return s.apply(ActionPlayerRemove, "", func(st State) (State, error) {
		return removePlayer(st, id)
	})
}

// AddGame adds a game with an empty log. The rule set is fixed here for
// the game's lifetime; unknown tags normalize to the default variant.
func (s *MemoryStore) AddGame(g domain.Game) error {
	return s.apply(ActionGameAdd, g.ID, func(st State) (State, error) {
		return addGame(st, g)
	})
}

// RemoveGame deletes a game and its owned event log.
func (s *MemoryStore) RemoveGame(id string) error {
	return s.apply(ActionGameRemove, id, func(st State) (State, error) {
		return removeGame(st, id)
	})
}

// AppendEvent appends one event to a game's log.
func (s *MemoryStore) AppendEvent(gameID string, ev domain.StatEvent) error {
	return s.apply(ActionEventAppend, gameID, func(st State) (State, error) {
		return appendEvent(st, gameID, ev)
	})
}

// RemoveEvent removes a single event from a game's log.
func (s *MemoryStore) RemoveEvent(gameID, eventID string) error {
	return s.apply(ActionEventRemove, gameID, func(st State) (State, error) {
		return removeEvent(st, gameID, eventID)
	})
}

// ClearEvents empties a game's log.
func (s *MemoryStore) ClearEvents(gameID string) error {
	return s.apply(ActionEventsClear, gameID, func(st State) (State, error) {
		return clearEvents(st, gameID)
	})
}

// SelectGame records the UI selection; empty clears it.
func (s *MemoryStore) SelectGame(gameID string) error {
	return s.apply(ActionGameSelect, gameID, func(st State) (State, error) {
		return selectGame(st, gameID)
	})
}
