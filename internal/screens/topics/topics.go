// Package topics implements the topic picker pushed over the study screen.
package topics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcards/internal/deck"
	"github.com/abhisek/mathcards/internal/router"
	"github.com/abhisek/mathcards/internal/screen"
	"github.com/abhisek/mathcards/internal/session"
	"github.com/abhisek/mathcards/internal/ui/components"
	"github.com/abhisek/mathcards/internal/ui/layout"
	"github.com/abhisek/mathcards/internal/ui/theme"
)

// ChosenMsg reports the selected topic after the picker has closed.
// Topic is session.AllTopics for "All topics".
type ChosenMsg struct {
	Topic string
}

// PickerScreen lists "All topics" followed by every deck topic.
type PickerScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker over topics with current preselected.
func New(topics []string, current string) *PickerScreen {
	values := append([]string{session.AllTopics}, topics...)

	items := make([]components.MenuItem, len(values))
	selected := 0
	for i, v := range values {
		label := v
		if v == session.AllTopics {
			label = "All topics"
		} else {
			label = deck.IconFor(v) + "  " + v
		}
		if v == current {
			selected = i
		}
		items[i] = components.MenuItem{Label: label, Action: choose(v)}
	}

	return &PickerScreen{menu: components.NewMenu(items, selected)}
}

func choose(topic string) func() tea.Cmd {
	return func() tea.Cmd {
		return tea.Sequence(router.Pop, func() tea.Msg { return ChosenMsg{Topic: topic} })
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "Topics"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	heading := theme.Title.Width(width).Render("Choose a topic") + "\n" +
		theme.Subtitle.Width(width).Render(fmt.Sprintf("%d topics in this deck", len(p.menu.Items)-1))
	rows := height - lipgloss.Height(heading) - 4
	body := p.menu.View(rows)

	list := theme.Card.Render(strings.TrimRight(body, "\n"))
	list = lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(list)
	return heading + "\n\n" + list
}
