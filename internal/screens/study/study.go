// Package study implements the flashcard study screen.
package study

import (
	"context"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathcards/internal/deck"
	"github.com/abhisek/mathcards/internal/logging"
	"github.com/abhisek/mathcards/internal/router"
	"github.com/abhisek/mathcards/internal/screen"
	"github.com/abhisek/mathcards/internal/screens/topics"
	"github.com/abhisek/mathcards/internal/session"
	"github.com/abhisek/mathcards/internal/ui/components"
	"github.com/abhisek/mathcards/internal/ui/layout"
)

// LoadErrorText replaces the question when the deck cannot be loaded.
const LoadErrorText = "Could not load deck. Check the deck path or serve it over http."

// Loader loads the deck.
type Loader func(ctx context.Context) ([]deck.Card, error)

// Options configures the study screen.
type Options struct {
	Loader         Loader
	Timing         session.Timing
	SearchDebounce time.Duration
	// Filter is applied once the deck has loaded.
	Filter session.Filter
	// Rand drives shuffling. Nil uses the global source.
	Rand *rand.Rand
	// Context bounds the deck load. Nil uses context.Background.
	Context context.Context
	Logger  *zap.Logger
}

// StudyScreen implements screen.Screen for studying a deck.
type StudyScreen struct {
	opts      Options
	state     *session.State
	loading   bool
	loadErr   error
	search    components.SearchInput
	searchSeq int
	logger    *zap.Logger
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)
var _ screen.InputCapturer = (*StudyScreen)(nil)

// New creates a StudyScreen that loads its deck on Init.
func New(opts Options) *StudyScreen {
	if opts.Timing == (session.Timing{}) {
		opts.Timing = session.DefaultTiming()
	}
	if opts.Filter.Topic == "" {
		opts.Filter.Topic = session.AllTopics
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	logger := logging.OrNop(opts.Logger)

	search := components.NewSearchInput("Search cards", 64)
	search.SetValue(opts.Filter.Term)

	return &StudyScreen{
		opts:    opts,
		loading: true,
		search:  search,
		logger:  logger,
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	loader, ctx := s.opts.Loader, s.opts.Context
	return func() tea.Msg {
		if loader == nil {
			return deckLoadedMsg{}
		}
		cards, err := loader(ctx)
		return deckLoadedMsg{Cards: cards, Err: err}
	}
}

func (s *StudyScreen) Title() string {
	return "Study"
}

// Status returns the deck position, "pos / total".
func (s *StudyScreen) Status() string {
	if s.state == nil {
		return ""
	}
	pos, total := s.state.Progress()
	return components.NewDeckProgress(pos, total, 0).Label()
}

// CapturingInput reports whether the search box owns the keyboard.
func (s *StudyScreen) CapturingInput() bool {
	return s.search.Focused()
}

// State returns the session state, or nil before the deck has loaded.
func (s *StudyScreen) State() *session.State {
	return s.state
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Done"},
		}
	}
	if s.state == nil {
		return []layout.KeyHint{{Key: "Q", Description: "Quit"}}
	}

	hints := []layout.KeyHint{
		{Key: "←→", Description: "Navigate"},
		{Key: "Space", Description: "Flip"},
	}
	if s.state.Flipped {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Replay"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "T", Description: "Topic"},
		layout.KeyHint{Key: "/", Description: "Search"},
		layout.KeyHint{Key: "S", Description: "Shuffle"},
	)
	if s.state.Filter.Active() {
		hints = append(hints, layout.KeyHint{Key: "X", Description: "Reset"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckLoadedMsg:
		return s, s.handleLoaded(msg)

	case DeckReloadedMsg:
		return s, s.handleReloaded(msg)

	case scheduledMsg:
		return s, s.apply(msg.Action)

	case searchSettledMsg:
		if msg.Seq != s.searchSeq {
			return s, nil
		}
		return s, s.applySearch()

	case topics.ChosenMsg:
		return s, s.setFilter(func(f *session.Filter) { f.Topic = msg.Topic })

	case tea.MouseClickMsg:
		if msg.Mouse().Button == tea.MouseLeft {
			return s, s.apply(session.Flip{})
		}
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.search.Focused() {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) handleLoaded(msg deckLoadedMsg) tea.Cmd {
	s.loading = false
	if msg.Err != nil {
		s.loadErr = msg.Err
		s.logger.Error("deck load failed", zap.Error(msg.Err))
		return nil
	}

	s.loadErr = nil
	s.logger.Info("deck loaded", zap.Int("cards", len(msg.Cards)))
	s.state = session.NewState(msg.Cards, s.opts.Timing, s.opts.Rand)
	if s.opts.Filter.Active() {
		return s.apply(session.SetFilter{Filter: s.opts.Filter})
	}
	return nil
}

func (s *StudyScreen) handleReloaded(msg DeckReloadedMsg) tea.Cmd {
	if s.state == nil {
		return s.handleLoaded(deckLoadedMsg{Cards: msg.Cards})
	}
	s.logger.Info("deck reloaded", zap.Int("cards", len(msg.Cards)))
	return s.apply(session.ReplaceCards{Cards: msg.Cards})
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.search.Focused() {
		return s.handleSearchKey(msg)
	}

	if msg.String() == "q" {
		return tea.Quit
	}
	if s.state == nil {
		return nil
	}

	switch msg.String() {
	case "left", "h", "up", "k", "pgup":
		return s.apply(session.Advance{Delta: -1})
	case "right", "l", "down", "j", "pgdown":
		return s.apply(session.Advance{Delta: 1})
	case "space", " ", "enter", "f":
		return s.apply(session.Flip{})
	case "r":
		return s.apply(session.Replay{})
	case "t":
		return router.Push(topics.New(deck.Topics(s.state.Cards), s.state.Filter.Topic))
	case "/":
		return s.search.Focus()
	case "s":
		return s.setFilter(func(f *session.Filter) { f.Shuffle = !f.Shuffle })
	case "x":
		s.search.SetValue("")
		s.searchSeq++
		return s.apply(session.Reset{})
	}
	return nil
}

func (s *StudyScreen) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.search.Blur()
		return nil
	case "enter":
		s.search.Blur()
		s.searchSeq++
		return s.applySearch()
	}

	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() == before {
		return cmd
	}

	s.searchSeq++
	seq := s.searchSeq
	settle := tea.Tick(s.debounce(), func(time.Time) tea.Msg { return searchSettledMsg{Seq: seq} })
	return tea.Batch(cmd, settle)
}

func (s *StudyScreen) debounce() time.Duration {
	if s.opts.SearchDebounce > 0 {
		return s.opts.SearchDebounce
	}
	return 200 * time.Millisecond
}

func (s *StudyScreen) applySearch() tea.Cmd {
	term := s.search.Value()
	return s.setFilter(func(f *session.Filter) { f.Term = term })
}

// setFilter applies edit to the current filter. Before the deck has loaded
// the edit is kept for when it arrives.
func (s *StudyScreen) setFilter(edit func(*session.Filter)) tea.Cmd {
	if s.state == nil {
		edit(&s.opts.Filter)
		return nil
	}
	f := s.state.Filter
	edit(&f)
	if f == s.state.Filter {
		return nil
	}
	return s.apply(session.SetFilter{Filter: f})
}

// apply runs a session action and turns its schedule into timer commands.
func (s *StudyScreen) apply(a session.Action) tea.Cmd {
	if s.state == nil {
		return nil
	}
	res := session.Apply(s.state, a)
	return scheduleCmd(res.Schedule)
}

func scheduleCmd(sched session.Schedule) tea.Cmd {
	if len(sched) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(sched))
	for i, ev := range sched {
		action := ev.Action
		if ev.Delay <= 0 {
			cmds[i] = func() tea.Msg { return scheduledMsg{Action: action} }
			continue
		}
		cmds[i] = tea.Tick(ev.Delay, func(time.Time) tea.Msg { return scheduledMsg{Action: action} })
	}
	return tea.Batch(cmds...)
}
