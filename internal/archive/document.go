// Package archive owns the persisted document: the whole-store JSON shape
// used for save-on-mutation persistence, export, and backup import. The
// decoder is forgiving by necessity: a tracker used live during a game
// must come up with whatever survives a bad or partially-written file,
// never refuse to start. Every default it applies is reported so callers
// can log what was recovered.
package archive

import (
	"fmt"

	"flagstat-service/internal/domain"
	"flagstat-service/internal/store"
)

// Document is the stable external shape of the full store.
type Document struct {
	Players []domain.Player `json:"players"`
	Games   []domain.Game   `json:"games"`
	UI      UIState         `json:"ui"`
}

// UIState is transient selection state, persisted for continuity only.
type UIState struct {
	SelectedGameID string `json:"selectedGameId,omitempty"`
}

// Report lists every field-level default the decoder applied.
type Report []string

func (r *Report) add(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

// FromState shapes store state as a document.
func FromState(st store.State) Document {
	doc := Document{
		Players: st.Players,
		Games:   st.Games,
		UI:      UIState{SelectedGameID: st.SelectedGameID},
	}
	if doc.Players == nil {
		doc.Players = []domain.Player{}
	}
	if doc.Games == nil {
		doc.Games = []domain.Game{}
	}
	return doc
}

// ToState turns a decoded document into store state.
func (d Document) ToState() store.State {
	return store.State{
		Players:        d.Players,
		Games:          d.Games,
		SelectedGameID: d.UI.SelectedGameID,
	}
}
