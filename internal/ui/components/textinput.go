package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcards/internal/ui/theme"
)

// SearchInput wraps bubbles/textinput as the deck search box.
type SearchInput struct {
	Model    textinput.Model
	MaxWidth int
}

// NewSearchInput creates an unfocused search box.
func NewSearchInput(placeholder string, maxWidth int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "🔎 "
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return SearchInput{Model: ti, MaxWidth: maxWidth}
}

// Focus gives the input keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.Model.Focus()
}

// Blur removes keyboard focus.
func (s *SearchInput) Blur() {
	s.Model.Blur()
}

// Focused reports whether the input has focus.
func (s SearchInput) Focused() bool {
	return s.Model.Focused()
}

// Update forwards messages to the input. Keys are ignored while blurred.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the search box.
func (s SearchInput) View() string {
	style := theme.SearchBox
	if s.Focused() {
		style = theme.SearchBoxFocused
	}
	return style.Render(s.Model.View())
}

// Value returns the current query.
func (s SearchInput) Value() string {
	return s.Model.Value()
}

// SetValue replaces the current query.
func (s *SearchInput) SetValue(v string) {
	s.Model.SetValue(v)
}
