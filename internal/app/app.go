package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathcards/internal/deck"
	"github.com/abhisek/mathcards/internal/logging"
	"github.com/abhisek/mathcards/internal/router"
	"github.com/abhisek/mathcards/internal/screen"
	"github.com/abhisek/mathcards/internal/screens/study"
	"github.com/abhisek/mathcards/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Study study.Options

	// Watch, when set, reloads the local deck file on change and feeds
	// the new cards to the study screen.
	Watch *WatchOptions

	Logger *zap.Logger
}

// WatchOptions configures deck hot reload.
type WatchOptions struct {
	Path     string
	Debounce time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at s.
func newAppModel(s screen.Screen) AppModel {
	return AppModel{
		router: router.New(s),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.capturing() && msg.String() == "esc" {
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen owns the keyboard.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render draws the header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	logger := logging.OrNop(opts.Logger)
	if opts.Study.Logger == nil {
		opts.Study.Logger = logger
	}
	if opts.Study.Context == nil {
		opts.Study.Context = ctx
	}

	p := tea.NewProgram(newAppModel(study.New(opts.Study)), tea.WithContext(ctx))

	if opts.Watch != nil {
		w, err := deck.NewWatcher(opts.Watch.Path, opts.Watch.Debounce, func(cards []deck.Card) {
			p.Send(study.DeckReloadedMsg{Cards: cards})
		}, logger)
		if err != nil {
			return fmt.Errorf("watch deck: %w", err)
		}
		defer w.Close()
		w.Start(ctx)
	}

	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
