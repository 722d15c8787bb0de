package session

import (
	"math/rand/v2"
	"strings"

	"golang.org/x/text/cases"

	"github.com/abhisek/mathcards/internal/deck"
)

// AllTopics disables topic filtering.
const AllTopics = "ALL"

// Filter holds the criteria that select the working subset of a deck.
type Filter struct {
	// Topic is an exact topic name, or AllTopics.
	Topic string
	// Term is a free-text search term; empty matches everything.
	Term string
	// Shuffle randomizes the order of the matching cards.
	Shuffle bool
}

// AllTopicsSelected reports whether the topic criterion is disabled.
func (f Filter) AllTopicsSelected() bool {
	return f.Topic == "" || f.Topic == AllTopics
}

// Active reports whether any criterion narrows or reorders the deck.
func (f Filter) Active() bool {
	return !f.AllTopicsSelected() || f.Term != "" || f.Shuffle
}

// ApplyFilter returns the indices of order whose cards match f, in deck
// order unless f.Shuffle is set.
func ApplyFilter(cards []deck.Card, order []int, f Filter, rng *rand.Rand) []int {
	fold := cases.Fold()
	term := fold.String(f.Term)

	filtered := make([]int, 0, len(order))
	for _, i := range order {
		c := cards[i]
		if !f.AllTopicsSelected() && c.Topic != f.Topic {
			continue
		}
		if term != "" {
			blob := fold.String(c.Question + " " + c.Hint + " " + c.Back)
			if !strings.Contains(blob, term) {
				continue
			}
		}
		filtered = append(filtered, i)
	}

	if f.Shuffle {
		shuffle(filtered, rng)
	}
	return filtered
}

// shuffle applies a Fisher–Yates permutation in place.
func shuffle(a []int, rng *rand.Rand) {
	swap := func(i, j int) { a[i], a[j] = a[j], a[i] }
	if rng == nil {
		rand.Shuffle(len(a), swap)
		return
	}
	rng.Shuffle(len(a), swap)
}
