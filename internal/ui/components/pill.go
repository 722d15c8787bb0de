package components

import (
	"github.com/abhisek/mathcards/internal/ui/theme"
)

// Pill is a key-labelled chip such as "T 🍕 Fractions".
type Pill struct {
	Key    string
	Label  string
	Color  string
	Active bool
}

// NewPill creates a new pill.
func NewPill(key, label, color string, active bool) Pill {
	return Pill{
		Key:    key,
		Label:  label,
		Color:  color,
		Active: active,
	}
}

// View renders the pill. Inactive pills are drawn faint.
func (p Pill) View() string {
	text := p.Label
	if p.Key != "" {
		text = p.Key + " " + p.Label
	}
	style := theme.Pill.Background(theme.Swatch(p.Color))
	if !p.Active {
		style = style.Faint(true)
	}
	return style.Render(text)
}
