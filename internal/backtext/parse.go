// Package backtext extracts the rule, sample problem and solution steps
// from the loosely formatted back side of a card.
package backtext

import (
	"regexp"
	"strings"
)

// DefaultRule is used by the legacy format when no explanation precedes
// the sample marker.
const DefaultRule = "Review the concept."

// Parsed is the structured form of a card's back text. Absent sections
// are empty strings.
type Parsed struct {
	Rule     string
	Sample   string
	Solution string
}

var (
	ruleRe          = labelRe("Rule")
	sampleProblemRe = labelRe("Sample Problem")
	sampleRe        = labelRe("Sample")
	solutionRe      = labelRe("Solution")

	// anyLabelRe matches a line that starts a new labeled section.
	anyLabelRe = regexp.MustCompile(`(?i)^\s*(?:Rule|Sample Problem|Sample|Solution)\s*:`)

	legacySplitRe = regexp.MustCompile(`(?i)(?:^|\n)\s*Sample\s*:`)
)

func labelRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^\s*` + label + `\s*:\s*(.+)$`)
}

// Parse extracts the labeled sections from raw. It is a pure function:
// the same input always yields the same output.
func Parse(raw string) Parsed {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	rule := find(ruleRe, text)
	sample := find(sampleProblemRe, text)
	hasSampleProblem := sample != ""
	if sample == "" {
		sample = find(sampleRe, text)
	}
	solution := findSolution(text)

	if rule == "" && solution == "" && !hasSampleProblem {
		return parseLegacy(text)
	}
	return Parsed{Rule: rule, Sample: sample, Solution: solution}
}

func find(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// findSolution returns the solution line plus any continuation lines up
// to the next labeled section.
func findSolution(text string) string {
	loc := solutionRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}
	lines := []string{strings.TrimSpace(text[loc[2]:loc[3]])}

	rest := text[loc[1]:]
	for _, line := range strings.Split(rest, "\n") {
		if anyLabelRe.MatchString(line) {
			break
		}
		if l := strings.TrimSpace(line); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

// parseLegacy handles the older "explanation, then Sample: a → b" layout.
func parseLegacy(text string) Parsed {
	parts := legacySplitRe.Split(text, -1)

	explanation := strings.TrimSpace(parts[0])
	var rest string
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}

	var p Parsed
	if rest != "" {
		p.Sample, p.Solution = splitSample(rest)
	}
	p.Rule = explanation
	if p.Rule == "" {
		p.Rule = DefaultRule
	}
	return p
}

// splitSample splits at the first arrow, else the first equals sign. With
// neither present, the whole text serves as both sample and solution.
func splitSample(s string) (sample, solution string) {
	for _, sep := range []string{"→", "="} {
		if before, after, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(before), strings.TrimSpace(after)
		}
	}
	return s, s
}

var stepMarkers = []string{"🚀", "💡", "📏", "🧩", "🪄", "✨"}

// Steps splits a solution into its non-blank, trimmed lines.
func Steps(solution string) []string {
	var steps []string
	for _, line := range strings.Split(solution, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			steps = append(steps, l)
		}
	}
	return steps
}

// StepMarker returns the decorative marker for the i-th step.
func StepMarker(i int) string {
	if i < 0 {
		i = -i
	}
	return stepMarkers[i%len(stepMarkers)]
}
