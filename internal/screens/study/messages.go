package study

import (
	"github.com/abhisek/mathcards/internal/deck"
	"github.com/abhisek/mathcards/internal/session"
)

// deckLoadedMsg is sent when the initial deck load finishes.
type deckLoadedMsg struct {
	Cards []deck.Card
	Err   error
}

// DeckReloadedMsg carries a freshly loaded deck from the file watcher.
type DeckReloadedMsg struct {
	Cards []deck.Card
}

// scheduledMsg delivers a session action once its delay has elapsed.
type scheduledMsg struct {
	Action session.Action
}

// searchSettledMsg fires after the search box has been idle for the
// debounce interval. Only the latest Seq is applied.
type searchSettledMsg struct {
	Seq int
}
