// Package testutil provides shared fixtures for tests.
package testutil

import (
	"time"

	"flagstat-service/internal/domain"
)

// SamplePlayer returns a minimal roster fixture with the provided id.
func SamplePlayer(id string) domain.Player {
	return domain.Player{
		ID:       id,
		Name:     "Player " + id,
		Jersey:   "7",
		Position: "QB",
	}
}

// SampleGame returns an empty game fixture with the provided id.
func SampleGame(id string) domain.Game {
	return domain.Game{
		ID:       id,
		Opponent: "Rivals",
		Date:     "2026-08-30",
		RuleSet:  domain.RuleSet5v5,
		Events:   []domain.StatEvent{},
	}
}

// SampleEvent returns an event fixture crediting playerID.
func SampleEvent(id string, t domain.EventType, playerID string) domain.StatEvent {
	return domain.StatEvent{
		ID:        id,
		Timestamp: time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC),
		Type:      t,
		PlayerID:  playerID,
	}
}

// SampleCompletion returns a completion-family event crediting both a
// passer and a receiver.
func SampleCompletion(id string, t domain.EventType, passerID, receiverID string) domain.StatEvent {
	ev := SampleEvent(id, t, passerID)
	ev.ReceiverID = receiverID
	return ev
}
