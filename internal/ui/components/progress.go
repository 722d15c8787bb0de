package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcards/internal/ui/theme"
)

// DeckProgress shows the position within the filtered deck as a bar
// followed by "pos / total".
type DeckProgress struct {
	Position int
	Total    int
	Width    int
}

// NewDeckProgress creates a deck progress bar.
func NewDeckProgress(position, total, width int) DeckProgress {
	return DeckProgress{Position: position, Total: total, Width: width}
}

// Percent returns the fraction of the deck reached, 0 for an empty deck.
func (p DeckProgress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Position) / float64(p.Total)
}

// Label returns the "pos / total" text.
func (p DeckProgress) Label() string {
	return fmt.Sprintf("%d / %d", p.Position, p.Total)
}

// View renders the progress bar.
func (p DeckProgress) View() string {
	label := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  " + p.Label())

	barWidth := p.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		label
}
