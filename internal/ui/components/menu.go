package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcards/internal/ui/theme"
)

// MenuItem represents a single item in a vertical menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical menu that scrolls when it has more items than fit.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with selected highlighted.
func NewMenu(items []MenuItem, selected int) Menu {
	if selected < 0 || selected >= len(items) {
		selected = 0
	}
	return Menu{Items: items, Selected: selected}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = len(m.Items) - 1
	case "enter":
		if item := m.Items[m.Selected]; item.Action != nil {
			return m, item.Action()
		}
	}

	return m, nil
}

// View renders at most height rows, keeping the selection visible.
func (m Menu) View(height int) string {
	if height <= 0 || height > len(m.Items) {
		height = len(m.Items)
	}
	offset := 0
	if m.Selected >= height {
		offset = m.Selected - height + 1
	}

	var b strings.Builder
	for i := offset; i < offset+height; i++ {
		item := m.Items[i]
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
