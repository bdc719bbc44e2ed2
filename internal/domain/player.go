package domain

// Player is a member of the shared roster. Identity is immutable once
// created; display attributes may change.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Jersey   string `json:"jersey,omitempty"`
	Position string `json:"position,omitempty"`
}
