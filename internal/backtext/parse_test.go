package backtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Labeled(t *testing.T) {
	got := Parse("Rule: Add numerators\nSample: 1/2+1/3\nSolution: find LCD\nadd")

	assert.Equal(t, "Add numerators", got.Rule)
	assert.Equal(t, "1/2+1/3", got.Sample)
	assert.Equal(t, []string{"find LCD", "add"}, Steps(got.Solution))
}

func TestParse_LegacyArrow(t *testing.T) {
	got := Parse("Do X first.\nSample: 2+2 → 4")

	assert.Equal(t, Parsed{Rule: "Do X first.", Sample: "2+2", Solution: "4"}, got)
}

func TestParse_Cases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Parsed
	}{
		{
			name: "empty",
			raw:  "",
			want: Parsed{Rule: DefaultRule},
		},
		{
			name: "crlf and case-insensitive labels",
			raw:  "RULE: Line up the points\r\nsample problem: 1.2 + 3.45\r\nsolution: 1.20 + 3.45 = 4.65\r\n",
			want: Parsed{Rule: "Line up the points", Sample: "1.2 + 3.45", Solution: "1.20 + 3.45 = 4.65"},
		},
		{
			name: "sample problem preferred over sample",
			raw:  "Rule: r\nSample: short\nSample Problem: long",
			want: Parsed{Rule: "r", Sample: "long"},
		},
		{
			name: "indented labels",
			raw:  "  Rule : spaced\n\tSolution :  step one",
			want: Parsed{Rule: "spaced", Solution: "step one"},
		},
		{
			name: "solution continuation stops at next label",
			raw:  "Solution: a\n\n  b  \nRule: r\nc",
			want: Parsed{Rule: "r", Solution: "a\nb"},
		},
		{
			name: "only sample problem stays structured",
			raw:  "Sample Problem: 3 x 4",
			want: Parsed{Sample: "3 x 4"},
		},
		{
			name: "legacy equals",
			raw:  "Multiply across.\nSample: 2 x 3 = 6",
			want: Parsed{Rule: "Multiply across.", Sample: "2 x 3", Solution: "6"},
		},
		{
			name: "legacy arrow before equals",
			raw:  "Think.\nsample: a = b → c",
			want: Parsed{Rule: "Think.", Sample: "a = b", Solution: "c"},
		},
		{
			name: "legacy no delimiter duplicates",
			raw:  "Explain.\nSample: draw a square",
			want: Parsed{Rule: "Explain.", Sample: "draw a square", Solution: "draw a square"},
		},
		{
			name: "legacy sample at start uses default rule",
			raw:  "Sample: 10 → ten",
			want: Parsed{Rule: DefaultRule, Sample: "10", Solution: "ten"},
		},
		{
			name: "legacy without marker",
			raw:  "  Just an explanation.  ",
			want: Parsed{Rule: "Just an explanation."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Rule: a\nSample: b\nSolution: c\nd",
		"Old style.\nSample: 5 = five",
		"Rule:\nwrapped value",
	}
	for _, in := range inputs {
		assert.Equal(t, Parse(in), Parse(in), "input %q", in)
	}
}

func TestSteps(t *testing.T) {
	assert.Equal(t, []string{"one", "two", "three"}, Steps("one\n\n  two \n\nthree\n"))
	assert.Empty(t, Steps(""))
	assert.Empty(t, Steps("\n \n"))
}

func TestStepMarker(t *testing.T) {
	assert.Equal(t, "🚀", StepMarker(0))
	assert.Equal(t, "✨", StepMarker(5))
	assert.Equal(t, "🚀", StepMarker(6))
	assert.Equal(t, "💡", StepMarker(-1))
}
