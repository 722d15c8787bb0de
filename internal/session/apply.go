package session

import (
	"time"

	"github.com/abhisek/mathcards/internal/deck"
)

// Action is an input to Apply.
type Action interface {
	action()
}

// Flip toggles between the front and back face.
type Flip struct{}

// Advance moves Delta cards forward (negative moves back), wrapping.
type Advance struct{ Delta int }

// SetFilter replaces the filter criteria.
type SetFilter struct{ Filter Filter }

// Reset clears every filter criterion.
type Reset struct{}

// Replay restarts the solution-step reveal on the back face.
type Replay struct{}

// ReplaceCards swaps in a reloaded deck, keeping the current filter.
type ReplaceCards struct{ Cards []deck.Card }

// ReleaseLock ends the flip transition started by the flip with Token.
type ReleaseLock struct{ Token uint64 }

// RevealSection shows the first Count back-face panels of render Generation.
type RevealSection struct {
	Generation uint64
	Count      int
}

// RevealStep shows the first Count solution steps of render Generation.
type RevealStep struct {
	Generation uint64
	Count      int
}

func (Flip) action()          {}
func (Advance) action()       {}
func (SetFilter) action()     {}
func (Reset) action()         {}
func (Replay) action()        {}
func (ReplaceCards) action()  {}
func (ReleaseLock) action()   {}
func (RevealSection) action() {}
func (RevealStep) action()    {}

// Event is an action to apply after Delay.
type Event struct {
	Delay  time.Duration
	Action Action
}

// Schedule is a list of delayed actions produced by a render. The caller
// executes it with its own timer facility and feeds each action back
// through Apply.
type Schedule []Event

// Result describes the outcome of Apply.
type Result struct {
	// Changed is true when the display must be redrawn.
	Changed bool
	// Schedule lists the timed follow-ups to run.
	Schedule Schedule
}

// Apply is the single update function for session state.
func Apply(s *State, a Action) Result {
	switch a := a.(type) {
	case Flip:
		return flip(s)
	case Advance:
		return advance(s, a.Delta)
	case SetFilter:
		return setFilter(s, a.Filter)
	case Reset:
		return setFilter(s, Filter{Topic: AllTopics})
	case Replay:
		return replay(s)
	case ReplaceCards:
		s.load(a.Cards)
		return setFilter(s, s.Filter)
	case ReleaseLock:
		if a.Token == s.lockToken {
			s.Animating = false
		}
		return Result{}
	case RevealSection:
		if a.Generation != s.Generation || a.Count <= s.SectionsVisible {
			return Result{}
		}
		s.SectionsVisible = a.Count
		return Result{Changed: true}
	case RevealStep:
		if a.Generation != s.Generation || a.Count <= s.StepsVisible {
			return Result{}
		}
		s.StepsVisible = a.Count
		return Result{Changed: true}
	}
	return Result{}
}

// flip is dropped, not deferred, while a transition is in progress.
func flip(s *State) Result {
	if s.Animating || s.Empty() {
		return Result{}
	}

	s.Animating = true
	s.lockToken++
	s.Flipped = !s.Flipped

	var sched Schedule
	if s.Flipped {
		sched = s.renderBack()
	} else {
		s.renderFront()
	}
	sched = append(sched, Event{Delay: s.timing.FlipLock, Action: ReleaseLock{Token: s.lockToken}})
	return Result{Changed: true, Schedule: sched}
}

func advance(s *State, delta int) Result {
	if s.Empty() {
		s.Current = 0
		s.Flipped = false
		s.renderFront()
		return Result{Changed: true}
	}
	n := len(s.Filtered)
	s.Current = ((s.Current+delta)%n + n) % n
	s.Flipped = false
	s.renderFront()
	return Result{Changed: true}
}

func setFilter(s *State, f Filter) Result {
	if f.Topic == "" {
		f.Topic = AllTopics
	}
	s.Filter = f
	s.Filtered = ApplyFilter(s.Cards, s.Order, f, s.rng)
	s.Current = 0
	s.Flipped = false
	s.Animating = false
	return advance(s, 0)
}

func replay(s *State) Result {
	if !s.Flipped || s.Empty() {
		return Result{}
	}
	s.Generation++
	s.SectionsVisible = SectionCount
	return Result{Changed: true, Schedule: s.stepSchedule()}
}

func (s *State) renderFront() {
	s.Generation++
	s.SectionsVisible = 0
	s.StepsVisible = 0
}

// renderBack starts a fresh back-face render. Panels always stagger in;
// steps stagger only the first time this card's back is shown.
func (s *State) renderBack() Schedule {
	s.Generation++
	s.SectionsVisible = 0

	sched := make(Schedule, 0, SectionCount)
	for i := 0; i < SectionCount; i++ {
		sched = append(sched, Event{
			Delay:  time.Duration(i) * s.timing.SectionStagger,
			Action: RevealSection{Generation: s.Generation, Count: i + 1},
		})
	}

	_, id, _ := s.CurrentCard()
	if s.PlayedSteps[id] {
		s.StepsVisible = s.stepCount()
		return sched
	}
	s.PlayedSteps[id] = true
	return append(sched, s.stepSchedule()...)
}

func (s *State) stepSchedule() Schedule {
	s.StepsVisible = 0
	n := s.stepCount()
	sched := make(Schedule, 0, n)
	for i := 0; i < n; i++ {
		sched = append(sched, Event{
			Delay:  time.Duration(i) * s.timing.StepStagger,
			Action: RevealStep{Generation: s.Generation, Count: i + 1},
		})
	}
	return sched
}
