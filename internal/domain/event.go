package domain

import "time"

// EventType tags a logged play event. Tags are plain strings so documents
// carrying types this build does not know still round-trip verbatim.
type EventType string

// Passing events. Completion-family events optionally credit a receiver.
const (
	EventPassAttempt    EventType = "PASS_ATT"
	EventPassCompletion EventType = "PASS_COMP"
	EventPassTD         EventType = "PASS_TD"
	EventIntThrown      EventType = "INT_THROWN"
)

// Rushing and receiving events.
const (
	EventRushAttempt EventType = "RUSH_ATT"
	EventRushTD      EventType = "RUSH_TD"
	EventReception   EventType = "REC"
	EventReceptionTD EventType = "REC_TD"
)

// Defensive events.
const (
	EventDefInterception EventType = "DEF_INT"
	EventSack            EventType = "SACK"
	EventFlagPull        EventType = "FLAG_PULL"
	EventDefTD           EventType = "DEF_TD"
)

// Conversion events following a touchdown.
const (
	EventConversion1 EventType = "XP_1"
	EventConversion2 EventType = "XP_2"
	EventPATReturn   EventType = "PAT_RET_2"
)

// EventTypes lists every tag this build knows, in taxonomy order.
func EventTypes() []EventType {
	return []EventType{
		EventPassAttempt, EventPassCompletion, EventPassTD, EventIntThrown,
		EventRushAttempt, EventRushTD, EventReception, EventReceptionTD,
		EventDefInterception, EventSack, EventFlagPull, EventDefTD,
		EventConversion1, EventConversion2, EventPATReturn,
	}
}

// KnownEventType reports whether t is one of the enumerated tags.
func KnownEventType(t EventType) bool {
	for _, known := range EventTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// StatEvent is one immutable entry in a game's append-only event log.
// PlayerID is the primary credited actor; ReceiverID optionally credits a
// secondary actor on completion-family events. Editing an event means
// removing it and logging a new one.
type StatEvent struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	PlayerID   string    `json:"playerId"`
	ReceiverID string    `json:"receiverId,omitempty"`
	Yards      int       `json:"yards,omitempty"`
	Note       string    `json:"note,omitempty"`
}
