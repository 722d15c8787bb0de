package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, tuned for a dark terminal with pastel card faces.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	TextInk   = lipgloss.Color("#1E293B") // Ink on light cards
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Pill = lipgloss.NewStyle().
		Foreground(TextInk).
		Bold(true).
		Padding(0, 1)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Back-face sections
var (
	SectionLabel = lipgloss.NewStyle().
			Foreground(TextInk).
			Bold(true)

	SectionBody = lipgloss.NewStyle().
			Foreground(TextInk)

	Step = lipgloss.NewStyle().
		Foreground(TextInk).
		PaddingLeft(1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	SearchBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	SearchBoxFocused = SearchBox.
				BorderForeground(Primary)
)

// FrontFace returns the card style for a front face filled with bg.
func FrontFace(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(TextInk).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(bg)).
		Padding(1, 3)
}

// BackFace returns the card style for a back face whose border runs from
// one gradient stop to the other.
func BackFace(from, to string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#FFFFFF")).
		Foreground(TextInk).
		Border(lipgloss.ThickBorder()).
		BorderTopForeground(lipgloss.Color(from)).
		BorderLeftForeground(lipgloss.Color(from)).
		BorderBottomForeground(lipgloss.Color(to)).
		BorderRightForeground(lipgloss.Color(to)).
		Padding(1, 3)
}

// Swatch returns a color usable as a pill background.
func Swatch(hex string) color.Color {
	return lipgloss.Color(hex)
}
