package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathcards/internal/deck"
)

func testState() *State {
	return NewState(testCards(), DefaultTiming(), rand.New(rand.NewPCG(3, 4)))
}

// runSchedule applies every scheduled action immediately, in order.
func runSchedule(s *State, sched Schedule) {
	for _, ev := range sched {
		Apply(s, ev.Action)
	}
}

func releaseLock(s *State, sched Schedule) {
	for _, ev := range sched {
		if rl, ok := ev.Action.(ReleaseLock); ok {
			Apply(s, rl)
		}
	}
}

func TestNewState(t *testing.T) {
	s := testState()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.Order)
	assert.Equal(t, s.Order, s.Filtered)
	assert.Equal(t, 0, s.Current)
	assert.False(t, s.Flipped)
	assert.False(t, s.Animating)
	assert.Empty(t, s.PlayedSteps)

	pos, total := s.Progress()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 6, total)
}

func TestAdvance_Wraps(t *testing.T) {
	s := testState()

	Apply(s, Advance{Delta: -1})
	assert.Equal(t, 5, s.Current)

	Apply(s, Advance{Delta: 1})
	assert.Equal(t, 0, s.Current)

	Apply(s, Advance{Delta: 13})
	assert.Equal(t, 1, s.Current)

	Apply(s, Advance{Delta: -14})
	assert.Equal(t, 5, s.Current)
}

func TestAdvance_FullCycleRestoresCurrent(t *testing.T) {
	s := testState()
	for start := 0; start < len(s.Filtered); start++ {
		s.Current = start
		Apply(s, Advance{Delta: len(s.Filtered)})
		assert.Equal(t, start, s.Current)
		Apply(s, Advance{Delta: -len(s.Filtered)})
		assert.Equal(t, start, s.Current)
	}
}

func TestAdvance_ResetsToFrontDespiteLock(t *testing.T) {
	s := testState()
	Apply(s, Flip{})
	require.True(t, s.Flipped)
	require.True(t, s.Animating)

	res := Apply(s, Advance{Delta: 1})
	assert.True(t, res.Changed)
	assert.False(t, s.Flipped)
	assert.Equal(t, 1, s.Current)
}

func TestFlip_LockRejectsUntilReleased(t *testing.T) {
	s := testState()

	res := Apply(s, Flip{})
	require.True(t, res.Changed)
	assert.True(t, s.Flipped)
	assert.True(t, s.Animating)

	last := res.Schedule[len(res.Schedule)-1]
	assert.Equal(t, DefaultTiming().FlipLock, last.Delay)
	assert.IsType(t, ReleaseLock{}, last.Action)

	// Dropped while animating.
	again := Apply(s, Flip{})
	assert.False(t, again.Changed)
	assert.Empty(t, again.Schedule)
	assert.True(t, s.Flipped)

	Apply(s, last.Action)
	assert.False(t, s.Animating)

	back := Apply(s, Flip{})
	assert.True(t, back.Changed)
	assert.False(t, s.Flipped)
}

func TestFlip_IgnoredWhenEmpty(t *testing.T) {
	s := testState()
	Apply(s, SetFilter{Filter: Filter{Term: "zzz"}})
	require.True(t, s.Empty())

	res := Apply(s, Flip{})
	assert.False(t, res.Changed)
	assert.False(t, s.Flipped)
	assert.False(t, s.Animating)
}

func TestFlip_BackScheduleStaggersSectionsAndSteps(t *testing.T) {
	s := testState() // card 0 has two solution steps
	timing := DefaultTiming()

	res := Apply(s, Flip{})
	gen := s.Generation

	var sections, steps []Event
	for _, ev := range res.Schedule {
		switch ev.Action.(type) {
		case RevealSection:
			sections = append(sections, ev)
		case RevealStep:
			steps = append(steps, ev)
		}
	}

	require.Len(t, sections, SectionCount)
	for i, ev := range sections {
		assert.Equal(t, timing.SectionStagger*time.Duration(i), ev.Delay)
		assert.Equal(t, RevealSection{Generation: gen, Count: i + 1}, ev.Action)
	}

	require.Len(t, steps, 2)
	for i, ev := range steps {
		assert.Equal(t, timing.StepStagger*time.Duration(i), ev.Delay)
		assert.Equal(t, RevealStep{Generation: gen, Count: i + 1}, ev.Action)
	}

	assert.Equal(t, 0, s.SectionsVisible)
	assert.Equal(t, 0, s.StepsVisible)
	runSchedule(s, res.Schedule)
	assert.Equal(t, SectionCount, s.SectionsVisible)
	assert.Equal(t, 2, s.StepsVisible)
	assert.True(t, s.PlayedSteps[0])
}

func TestFlip_StepsPlayOnlyOncePerCard(t *testing.T) {
	s := testState()

	first := Apply(s, Flip{})
	runSchedule(s, first.Schedule)
	Apply(s, Advance{Delta: 0}) // back to front

	second := Apply(s, Flip{})
	for _, ev := range second.Schedule {
		_, isStep := ev.Action.(RevealStep)
		assert.False(t, isStep, "steps must not animate on a second reveal")
	}
	assert.Equal(t, 2, s.StepsVisible, "all steps visible immediately")
	assert.Equal(t, 0, s.SectionsVisible, "sections still stagger in")
}

func TestReplay_RestartsSteps(t *testing.T) {
	s := testState()
	first := Apply(s, Flip{})
	runSchedule(s, first.Schedule)
	require.Equal(t, 2, s.StepsVisible)

	res := Apply(s, Replay{})
	require.True(t, res.Changed)
	assert.Equal(t, 0, s.StepsVisible)
	assert.Equal(t, SectionCount, s.SectionsVisible)
	require.Len(t, res.Schedule, 2)

	runSchedule(s, res.Schedule)
	assert.Equal(t, 2, s.StepsVisible)
}

func TestReplay_IgnoredOnFront(t *testing.T) {
	s := testState()
	res := Apply(s, Replay{})
	assert.False(t, res.Changed)
	assert.Empty(t, res.Schedule)
}

func TestStaleRevealsAreDropped(t *testing.T) {
	s := testState()
	res := Apply(s, Flip{})
	releaseLock(s, res.Schedule)

	// Navigating away supersedes the back-face render.
	Apply(s, Advance{Delta: 1})
	runSchedule(s, res.Schedule)

	assert.Equal(t, 0, s.SectionsVisible)
	assert.Equal(t, 0, s.StepsVisible)
}

func TestStaleLockReleaseDoesNotClearNewerLock(t *testing.T) {
	s := testState()
	first := Apply(s, Flip{})

	// A filter change clears the lock; a new flip takes a new one.
	Apply(s, SetFilter{Filter: Filter{Topic: "Geometry"}})
	require.False(t, s.Animating)
	Apply(s, Flip{})
	require.True(t, s.Animating)

	releaseLock(s, first.Schedule)
	assert.True(t, s.Animating, "release from the superseded flip must be ignored")
}

func TestSetFilter_ResetsState(t *testing.T) {
	s := testState()
	Apply(s, Advance{Delta: 2})
	Apply(s, Flip{})

	res := Apply(s, SetFilter{Filter: Filter{Topic: "Fractions"}})
	assert.True(t, res.Changed)
	assert.Equal(t, []int{0, 3}, s.Filtered)
	assert.Equal(t, 0, s.Current)
	assert.False(t, s.Flipped)
	assert.False(t, s.Animating)

	for _, i := range s.Filtered {
		assert.Contains(t, s.Order, i)
	}
}

func TestSetFilter_EmptyState(t *testing.T) {
	s := testState()
	Apply(s, SetFilter{Filter: Filter{Topic: "Nope"}})

	assert.True(t, s.Empty())
	_, _, ok := s.CurrentCard()
	assert.False(t, ok)
	pos, total := s.Progress()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 0, total)

	res := Apply(s, Advance{Delta: 1})
	assert.True(t, res.Changed)
	assert.Equal(t, 0, s.Current)
}

func TestReset_ClearsFilter(t *testing.T) {
	s := testState()
	Apply(s, SetFilter{Filter: Filter{Topic: "Decimals", Term: "round", Shuffle: true}})
	require.Equal(t, []int{1}, s.Filtered)

	Apply(s, Reset{})
	assert.Equal(t, Filter{Topic: AllTopics}, s.Filter)
	assert.Equal(t, s.Order, s.Filtered)
	assert.False(t, s.Filter.Active())
}

func TestReplaceCards_KeepsFilter(t *testing.T) {
	s := testState()
	Apply(s, SetFilter{Filter: Filter{Topic: "Geometry"}})
	first := Apply(s, Flip{})
	runSchedule(s, first.Schedule)

	cards := []deck.Card{
		{Question: "New geo", Topic: "Geometry"},
		{Question: "New frac", Topic: "Fractions"},
		{Question: "Another geo", Topic: "Geometry"},
	}
	res := Apply(s, ReplaceCards{Cards: cards})
	assert.True(t, res.Changed)
	assert.Equal(t, []int{0, 1, 2}, s.Order)
	assert.Equal(t, []int{0, 2}, s.Filtered)
	assert.Equal(t, "Geometry", s.Filter.Topic)
	assert.False(t, s.Flipped)
	assert.Empty(t, s.PlayedSteps)

	c, id, ok := s.CurrentCard()
	require.True(t, ok)
	assert.Equal(t, 0, id)
	assert.Equal(t, "New geo", c.Question)
}
