package session

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/mathcards/internal/backtext"
	"github.com/abhisek/mathcards/internal/deck"
)

// SectionCount is the number of info panels on the back face
// (rule, sample, solution).
const SectionCount = 3

// Timing holds durations that must match the card's visual transitions.
type Timing struct {
	// FlipLock is how long a flip blocks the next flip.
	FlipLock time.Duration
	// StepStagger separates consecutive solution-step reveals.
	StepStagger time.Duration
	// SectionStagger separates consecutive back-face panel reveals.
	SectionStagger time.Duration
}

// DefaultTiming returns the durations the card transitions are tuned for.
func DefaultTiming() Timing {
	return Timing{
		FlipLock:       620 * time.Millisecond,
		StepStagger:    600 * time.Millisecond,
		SectionStagger: 150 * time.Millisecond,
	}
}

// State tracks the study session for one loaded deck.
type State struct {
	// Cards is the loaded deck in document order.
	Cards []deck.Card

	// Order is the identity permutation over Cards.
	Order []int

	// Filtered is the ordered subset of Order currently eligible for display.
	Filtered []int

	// Current is the index into Filtered of the card on screen.
	Current int

	// Flipped is true while the back face is showing.
	Flipped bool

	// Animating blocks flips until the flip transition has finished.
	Animating bool

	// PlayedSteps holds the deck indices whose step reveal has already played.
	PlayedSteps map[int]bool

	// Filter holds the criteria that produced Filtered.
	Filter Filter

	// Generation identifies the latest render. Scheduled reveal events
	// from older renders are dropped.
	Generation uint64

	// SectionsVisible is how many back-face panels are revealed.
	SectionsVisible int

	// StepsVisible is how many solution steps are revealed.
	StepsVisible int

	timing    Timing
	rng       *rand.Rand
	lockToken uint64
}

// NewState creates a session over cards showing the first card's front.
// A nil rng uses the global source for shuffling.
func NewState(cards []deck.Card, timing Timing, rng *rand.Rand) *State {
	s := &State{
		Filter: Filter{Topic: AllTopics},
		timing: timing,
		rng:    rng,
	}
	s.load(cards)
	s.Filtered = append([]int(nil), s.Order...)
	s.renderFront()
	return s
}

func (s *State) load(cards []deck.Card) {
	s.Cards = cards
	s.Order = make([]int, len(cards))
	for i := range cards {
		s.Order[i] = i
	}
	s.PlayedSteps = make(map[int]bool)
}

// Empty reports whether no card matches the current filter.
func (s *State) Empty() bool {
	return len(s.Filtered) == 0
}

// CurrentCard returns the card on screen and its deck index.
func (s *State) CurrentCard() (deck.Card, int, bool) {
	if s.Empty() {
		return deck.Card{}, -1, false
	}
	id := s.Filtered[s.Current]
	return s.Cards[id], id, true
}

// Progress returns the 1-based position and the filtered total.
// An empty filter reports 0 / 0.
func (s *State) Progress() (pos, total int) {
	if s.Empty() {
		return 0, 0
	}
	return s.Current + 1, len(s.Filtered)
}

// Timing returns the durations this session schedules with.
func (s *State) Timing() Timing {
	return s.timing
}

// stepCount returns the number of solution steps on the current card.
func (s *State) stepCount() int {
	c, _, ok := s.CurrentCard()
	if !ok {
		return 0
	}
	return len(backtext.Steps(backtext.Parse(c.Back).Solution))
}
