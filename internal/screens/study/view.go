package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcards/internal/backtext"
	"github.com/abhisek/mathcards/internal/deck"
	"github.com/abhisek/mathcards/internal/session"
	"github.com/abhisek/mathcards/internal/ui/components"
	"github.com/abhisek/mathcards/internal/ui/layout"
	"github.com/abhisek/mathcards/internal/ui/theme"
)

// categoryAccent colours the back-face panel titles per topic category.
var categoryAccent = map[deck.Category]string{
	deck.CategoryFractions:   "#C2410C",
	deck.CategoryDecimals:    "#0E7490",
	deck.CategoryGeometry:    "#1D4ED8",
	deck.CategoryMeasurement: "#7E22CE",
	deck.CategoryPatterns:    "#047857",
	deck.CategoryNumbers:     "#B45309",
	deck.CategoryData:        "#BE185D",
	deck.CategoryGeneral:     "#334155",
}

type section struct {
	icon  string
	title string
	body  string
}

func (s *StudyScreen) View(width, height int) string {
	bar := s.renderFilterBar(width)

	var body string
	switch {
	case s.loading:
		body = theme.Hint.Render("Loading deck...")
	case s.loadErr != nil:
		body = renderLoadError(width)
	case s.state == nil || s.state.Empty():
		body = renderEmpty(width)
	default:
		c, _, _ := s.state.CurrentCard()
		if s.state.Flipped {
			body = renderBack(c, s.state, width)
		} else {
			body = renderFront(c, width)
		}
	}

	progress := s.renderProgress(width)
	cardHeight := height - lipgloss.Height(bar) - lipgloss.Height(progress)
	if cardHeight < 0 {
		cardHeight = 0
	}
	return bar + "\n" + layout.Center(body, width, cardHeight-1) + "\n" + progress
}

func (s *StudyScreen) renderFilterBar(width int) string {
	filter := s.opts.Filter
	if s.state != nil {
		filter = s.state.Filter
	}

	topicLabel := "All topics"
	if !filter.AllTopicsSelected() {
		topicLabel = deck.IconFor(filter.Topic) + " " + filter.Topic
	}
	topicPill := components.NewPill("T", topicLabel, "#E0E7FF", !filter.AllTopicsSelected())

	shuffleLabel := "🔀 off"
	if filter.Shuffle {
		shuffleLabel = "🔀 on"
	}
	shufflePill := components.NewPill("S", shuffleLabel, "#FEF3C7", filter.Shuffle)

	parts := []string{topicPill.View(), s.search.View(), shufflePill.View()}
	if filter.Active() {
		parts = append(parts, components.NewPill("X", "reset", "#FECACA", true).View())
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, spaced(parts)...))
}

func spaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

func (s *StudyScreen) renderProgress(width int) string {
	pos, total := 0, 0
	if s.state != nil {
		pos, total = s.state.Progress()
	}
	bar := components.NewDeckProgress(pos, total, layout.CardWidth(width))
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(bar.View())
}

// renderFront draws the badge, question, hint, image panel and sample preview.
func renderFront(c deck.Card, width int) string {
	cw := layout.CardWidth(width)
	inner := cw - 8

	var b strings.Builder

	b.WriteString(components.NewPill("", c.Icon+" "+c.Topic, c.Color, true).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Width(inner).Render(c.Question))
	b.WriteString("\n")

	if c.Hint != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Italic(true).Width(inner).Render(c.Hint))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderImagePanel(c, inner))

	if parsed := backtext.Parse(c.Back); parsed.Sample != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Width(inner).
			Render(parsed.Sample + " " + deck.FrontGlyph(c.Topic)))
	}

	return theme.FrontFace(deck.DefaultColor).Width(cw).Render(b.String())
}

// renderImagePanel shows the front image reference, or a glyph panel built
// from the card icon when there is none.
func renderImagePanel(c deck.Card, width int) string {
	g := deck.GradientFor(c.Topic)
	panel := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(g.From))

	if c.ImageFront != "" {
		return panel.Render("🖼  " + c.ImageFront)
	}
	return panel.Padding(1, 0).Render(c.Icon)
}

// renderBack draws the title, the revealed panels and the side panel.
func renderBack(c deck.Card, st *session.State, width int) string {
	cw := layout.CardWidth(width)
	parsed := backtext.Parse(c.Back)
	g := deck.GradientFor(c.Topic)
	accent := lipgloss.Color(categoryAccent[deck.CategoryFor(c.Topic)])

	side := renderSidePanel(c)
	sideWidth := lipgloss.Width(side)
	mainWidth := cw - 8 - sideWidth - 2
	stacked := mainWidth < 24
	if stacked {
		mainWidth = cw - 8
	}

	sections := []section{
		{icon: "🧠", title: "Rule", body: parsed.Rule},
		{icon: "✏️", title: "Sample", body: parsed.Sample},
		{icon: "✅", title: "Solution Steps", body: renderSteps(parsed.Solution, st.StepsVisible, mainWidth)},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Width(mainWidth).Render(c.Question))
	for i, sec := range sections {
		if i >= st.SectionsVisible {
			break
		}
		b.WriteString("\n\n")
		b.WriteString(theme.SectionLabel.Foreground(accent).Render(sec.icon + " " + sec.title))
		b.WriteString("\n")
		b.WriteString(theme.SectionBody.Width(mainWidth).Render(sec.body))
	}

	main := b.String()
	var content string
	if stacked {
		content = main + "\n\n" + side
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", side)
	}

	replay := lipgloss.NewStyle().
		Background(lipgloss.Color(g.From)).
		Foreground(theme.TextInk).
		Bold(true).
		Padding(0, 1).
		Render("🔁 R replay")
	content += "\n\n" + lipgloss.NewStyle().Width(cw-8).Align(lipgloss.Right).Render(replay)

	return theme.BackFace(g.From, g.To).Width(cw).Render(content)
}

// renderSteps numbers the first visible solution steps with their markers.
func renderSteps(solution string, visible, width int) string {
	steps := backtext.Steps(solution)
	if visible > len(steps) {
		visible = len(steps)
	}
	lines := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		line := fmt.Sprintf("%d. %s %s", i+1, backtext.StepMarker(i), steps[i])
		lines = append(lines, theme.Step.Width(width).Render(line))
	}
	return strings.Join(lines, "\n")
}

func renderSidePanel(c deck.Card) string {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Align(lipgloss.Center)

	switch {
	case c.ImageRight != "":
		return panel.Width(24).Render("🖼\n" + c.ImageRight)
	case c.ImageBack != "":
		return panel.Width(24).Render("🖼\n" + c.ImageBack)
	}
	return panel.Foreground(theme.TextDim).Faint(true).Render("🧮")
}

func renderEmpty(width int) string {
	body := lipgloss.NewStyle().Bold(true).Render("No cards found") + "\n\n" +
		theme.Hint.Render("Try different filters or clear search.")
	return theme.FrontFace(deck.DefaultColor).Width(layout.CardWidth(width)).Render(body)
}

func renderLoadError(width int) string {
	body := theme.ErrorText.Render(LoadErrorText)
	return theme.FrontFace(deck.DefaultColor).Width(layout.CardWidth(width)).Render(body)
}
