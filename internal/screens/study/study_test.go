package study

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathcards/internal/deck"
	"github.com/abhisek/mathcards/internal/router"
	"github.com/abhisek/mathcards/internal/screens/topics"
	"github.com/abhisek/mathcards/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testCards() []deck.Card {
	return []deck.Card{
		{Question: "Add 1/2 and 1/3", Topic: "Fractions", Icon: "🍕", Color: "#eef2f7",
			Back: "Rule: Add numerators\nSample: 1/2+1/3\nSolution: find LCD\nadd"},
		{Question: "Round 3.46", Topic: "Decimals", Icon: "💯", Color: "#eef2f7", Hint: "Look at hundredths",
			Back: "Rule: Round up at 5"},
		{Question: "Area of a square", Topic: "Geometry", Icon: "📐", Color: "#eef2f7",
			Back: "Do X first.\nSample: 2+2 → 4"},
	}
}

func fastTiming() session.Timing {
	return session.Timing{FlipLock: time.Millisecond, StepStagger: time.Millisecond, SectionStagger: time.Millisecond}
}

func newTestScreen(t *testing.T, cards []deck.Card, loadErr error) *StudyScreen {
	t.Helper()
	s := New(Options{
		Loader: func(context.Context) ([]deck.Card, error) {
			return cards, loadErr
		},
		Timing:         fastTiming(),
		SearchDebounce: time.Millisecond,
		Rand:           rand.New(rand.NewPCG(1, 2)),
	})
	msg := s.Init()()
	_, cmd := s.Update(msg)
	run(s, cmd)
	return s
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// collect executes cmd, flattening batches and sequences.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			out = append(out, collect(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// run feeds every scheduled session action back into the screen until the
// schedule is exhausted.
func run(s *StudyScreen, cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		if sm, ok := msg.(scheduledMsg); ok {
			_, next := s.Update(sm)
			run(s, next)
		}
	}
}

func TestLoadShowsFirstCard(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)

	require.NotNil(t, s.State())
	assert.Equal(t, "1 / 3", s.Status())

	view := s.View(100, 40)
	assert.Contains(t, view, "Add 1/2 and 1/3")
	assert.Contains(t, view, "1/2+1/3", "front shows the sample preview")
}

func TestLoadErrorShowsFixedMessage(t *testing.T) {
	s := newTestScreen(t, nil, errors.New("connection refused"))

	assert.Nil(t, s.State())
	view := s.View(100, 40)
	assert.Contains(t, strings.Join(strings.Fields(view), " "), "Could not load deck.")
	assert.Empty(t, s.Status())

	// Navigation is inert without a deck.
	_, cmd := s.Update(keyPress(' '))
	assert.Nil(t, cmd)
}

func TestFlipLockDropsSecondFlip(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)

	_, cmd := s.Update(keyPress(' '))
	require.True(t, s.State().Flipped)
	require.True(t, s.State().Animating)

	_, dropped := s.Update(keyPress(' '))
	assert.Nil(t, dropped)
	assert.True(t, s.State().Flipped, "flip during the lock is ignored")

	run(s, cmd)
	assert.False(t, s.State().Animating)
	assert.Equal(t, session.SectionCount, s.State().SectionsVisible)
	assert.Equal(t, 2, s.State().StepsVisible)

	view := s.View(100, 40)
	assert.Contains(t, view, "Rule")
	assert.Contains(t, view, "Solution Steps")
	assert.Contains(t, view, "find LCD")

	_, cmd = s.Update(keyPress(' '))
	run(s, cmd)
	assert.False(t, s.State().Flipped)
}

func TestMouseClickFlips(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	_, cmd := s.Update(tea.MouseClickMsg{Button: tea.MouseLeft})
	run(s, cmd)
	assert.True(t, s.State().Flipped)
}

func TestArrowKeysWrap(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)

	s.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, "3 / 3", s.Status())

	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "2 / 3", s.Status())
}

func TestAdvanceResetsToFront(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	_, cmd := s.Update(keyPress(' '))
	run(s, cmd)
	require.True(t, s.State().Flipped)

	s.Update(specialKey(tea.KeyRight))
	assert.False(t, s.State().Flipped)
}

func TestTopicKeyPushesPicker(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	_, cmd := s.Update(keyPress('t'))
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Topics", push.Screen.Title())
}

func TestTopicChosenFilters(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	s.Update(topics.ChosenMsg{Topic: "Decimals"})

	assert.Equal(t, "1 / 1", s.Status())
	assert.Contains(t, s.View(100, 40), "Round 3.46")
	assert.Contains(t, s.View(100, 40), "X reset")

	s.Update(keyPress('x'))
	assert.Equal(t, "1 / 3", s.Status())
	assert.False(t, s.State().Filter.Active())
}

func TestSearchIsDebounced(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)

	s.Update(keyPress('/'))
	require.True(t, s.CapturingInput())

	for _, r := range "round" {
		s.Update(keyPress(r))
	}
	assert.Equal(t, "1 / 3", s.Status(), "filter waits for the debounce")

	// A stale timer from an earlier keystroke is ignored.
	s.Update(searchSettledMsg{Seq: s.searchSeq - 1})
	assert.Equal(t, "1 / 3", s.Status())

	s.Update(searchSettledMsg{Seq: s.searchSeq})
	assert.Equal(t, "1 / 1", s.Status())
	assert.Equal(t, "round", s.State().Filter.Term)

	s.Update(specialKey(tea.KeyEscape))
	assert.False(t, s.CapturingInput())
}

func TestSearchEnterAppliesImmediately(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	s.Update(keyPress('/'))
	for _, r := range "zzz" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))

	assert.False(t, s.CapturingInput())
	assert.True(t, s.State().Empty())
	assert.Equal(t, "0 / 0", s.Status())
	assert.Contains(t, s.View(100, 40), "No cards found")

	// Flip is ignored on the empty state.
	_, cmd := s.Update(keyPress(' '))
	assert.Nil(t, cmd)
	assert.False(t, s.State().Flipped)
}

func TestKeysGoToSearchWhileFocused(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	s.Update(keyPress('/'))
	s.Update(keyPress('q'))

	assert.True(t, s.CapturingInput(), "q types into the search box")
	assert.Equal(t, "q", s.search.Value())
	assert.Equal(t, "Enter", s.KeyHints()[0].Key)
}

func TestShuffleToggle(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	s.Update(keyPress('s'))
	assert.True(t, s.State().Filter.Shuffle)
	assert.ElementsMatch(t, []int{0, 1, 2}, s.State().Filtered)

	s.Update(keyPress('s'))
	assert.False(t, s.State().Filter.Shuffle)
	assert.Equal(t, []int{0, 1, 2}, s.State().Filtered)
}

func TestQuit(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	_, cmd := s.Update(keyPress('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestInitialFilterAppliedOnLoad(t *testing.T) {
	s := New(Options{
		Loader: func(context.Context) ([]deck.Card, error) { return testCards(), nil },
		Timing: fastTiming(),
		Filter: session.Filter{Topic: "Geometry"},
	})
	_, cmd := s.Update(s.Init()())
	run(s, cmd)

	assert.Equal(t, "1 / 1", s.Status())
	assert.Equal(t, "Geometry", s.State().Filter.Topic)
}

func TestDeckReloadKeepsFilter(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	s.Update(topics.ChosenMsg{Topic: "Fractions"})
	require.Equal(t, "1 / 1", s.Status())

	cards := append(testCards(), deck.Card{Question: "Compare 2/3 and 3/4", Topic: "Fractions"})
	s.Update(DeckReloadedMsg{Cards: cards})

	assert.Equal(t, "1 / 2", s.Status())
	assert.Equal(t, "Fractions", s.State().Filter.Topic)
}

func TestReplayRestartsSteps(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	_, cmd := s.Update(keyPress(' '))
	run(s, cmd)
	require.Equal(t, 2, s.State().StepsVisible)

	_, cmd = s.Update(keyPress('r'))
	assert.Equal(t, 0, s.State().StepsVisible)
	run(s, cmd)
	assert.Equal(t, 2, s.State().StepsVisible)
}

func TestKeyHints(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	descs := func() string {
		var parts []string
		for _, h := range s.KeyHints() {
			parts = append(parts, h.Description)
		}
		return strings.Join(parts, ",")
	}

	assert.NotContains(t, descs(), "Replay")
	assert.NotContains(t, descs(), "Reset")

	_, cmd := s.Update(keyPress(' '))
	run(s, cmd)
	assert.Contains(t, descs(), "Replay")

	s.Update(keyPress('s'))
	assert.Contains(t, descs(), "Reset")
}

func TestReloadRecoversFromLoadError(t *testing.T) {
	s := newTestScreen(t, nil, errors.New("invalid JSON"))
	require.Contains(t, strings.Join(strings.Fields(s.View(100, 40)), " "), "Could not load deck.")

	_, cmd := s.Update(DeckReloadedMsg{Cards: testCards()})
	run(s, cmd)

	assert.Equal(t, "1 / 3", s.Status())
	view := strings.Join(strings.Fields(s.View(100, 40)), " ")
	assert.NotContains(t, view, "Could not load deck.")
	assert.Contains(t, view, "Add 1/2 and 1/3")
}

type ctxKey struct{}

func TestLoaderUsesOptionsContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "program")
	var got context.Context
	s := New(Options{
		Context: ctx,
		Loader: func(ctx context.Context) ([]deck.Card, error) {
			got = ctx
			return testCards(), nil
		},
	})
	s.Init()()

	require.NotNil(t, got)
	assert.Equal(t, "program", got.Value(ctxKey{}))
}

func TestCancelledContextFailsLoad(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(Options{
		Context: ctx,
		Loader: func(ctx context.Context) ([]deck.Card, error) {
			return nil, ctx.Err()
		},
	})
	s.Update(s.Init()())

	assert.Nil(t, s.State())
	assert.ErrorIs(t, s.loadErr, context.Canceled)
}

func TestSearchTermIsNotTrimmed(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	s.Update(keyPress('/'))
	for _, r := range "round " {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, "round ", s.State().Filter.Term)
	assert.Equal(t, "1 / 1", s.Status())
}

func TestFrontShowsHint(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	assert.NotContains(t, s.View(100, 40), "hundredths")

	s.Update(specialKey(tea.KeyRight))
	assert.Contains(t, s.View(100, 40), "Look at hundredths")
}

func TestFrontSampleEndsWithTopicGlyph(t *testing.T) {
	cards := []deck.Card{
		{Question: "Next in 3, 6, 9?", Topic: "Patterns", Icon: "⭐", Color: deck.DefaultColor,
			Back: "Rule: Add 3\nSample: 3, 6, 9, 12"},
	}
	s := newTestScreen(t, cards, nil)

	view := s.View(100, 40)
	assert.Contains(t, view, "3, 6, 9, 12")
	assert.Contains(t, view, deck.FrontGlyph("Patterns"))
}

func TestFrontImagePanel(t *testing.T) {
	cards := []deck.Card{
		{Question: "Name the shape", Topic: "Patterns", Icon: "⭐", Color: deck.DefaultColor, ImageFront: "img/p.png"},
		{Question: "Count the sides", Topic: "Patterns", Icon: "⭐", Color: deck.DefaultColor},
	}
	s := newTestScreen(t, cards, nil)

	view := s.View(100, 40)
	assert.Contains(t, view, "🖼")
	assert.Contains(t, view, "img/p.png")
	assert.Equal(t, 1, strings.Count(view, "⭐"), "icon only in the badge")

	s.Update(specialKey(tea.KeyRight))
	view = s.View(100, 40)
	assert.NotContains(t, view, "🖼")
	assert.Equal(t, 2, strings.Count(view, "⭐"), "icon fills the image panel")
}

func TestBackSidePanelFallback(t *testing.T) {
	cards := []deck.Card{
		{Question: "Q1", Topic: "Geometry", Icon: "📐", ImageRight: "r.png", ImageBack: "b.png", Back: "Rule: one"},
		{Question: "Q2", Topic: "Geometry", Icon: "📐", ImageBack: "b.png", Back: "Rule: two"},
		{Question: "Q3", Topic: "Geometry", Icon: "📐", Back: "Rule: three"},
	}
	s := newTestScreen(t, cards, nil)

	flip := func() string {
		_, cmd := s.Update(keyPress(' '))
		run(s, cmd)
		require.True(t, s.State().Flipped)
		return s.View(100, 40)
	}

	view := flip()
	assert.Contains(t, view, "r.png")
	assert.NotContains(t, view, "b.png")
	assert.NotContains(t, view, "🧮")

	s.Update(specialKey(tea.KeyRight))
	view = flip()
	assert.Contains(t, view, "b.png")
	assert.NotContains(t, view, "🧮")

	s.Update(specialKey(tea.KeyRight))
	view = flip()
	assert.NotContains(t, view, "🖼")
	assert.Contains(t, view, "🧮")
}

func TestBackShowsReplayControl(t *testing.T) {
	s := newTestScreen(t, testCards(), nil)
	assert.NotContains(t, s.View(100, 40), "replay")

	_, cmd := s.Update(keyPress(' '))
	run(s, cmd)
	assert.Contains(t, s.View(100, 40), "R replay")
}
