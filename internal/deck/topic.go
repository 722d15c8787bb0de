package deck

import "strings"

// Category is the canonical grouping key derived from a free-form topic.
type Category string

const (
	CategoryFractions   Category = "Fractions"
	CategoryDecimals    Category = "Decimals"
	CategoryGeometry    Category = "Geometry"
	CategoryMeasurement Category = "Measurement"
	CategoryPatterns    Category = "Patterns"
	CategoryNumbers     Category = "Numbers"
	CategoryData        Category = "Data"
	CategoryGeneral     Category = "General"
)

// categoryRules are checked in order; the first rule with a matching
// substring wins.
var categoryRules = []struct {
	category Category
	needles  []string
}{
	{CategoryFractions, []string{"fraction"}},
	{CategoryDecimals, []string{"decimal"}},
	{CategoryGeometry, []string{"geometry"}},
	{CategoryMeasurement, []string{"measure"}},
	{CategoryPatterns, []string{"pattern", "algebra"}},
	{CategoryNumbers, []string{"number", "place value"}},
	{CategoryData, []string{"data", "probability"}},
}

// CategoryFor canonicalizes a topic by case-insensitive substring match.
func CategoryFor(topic string) Category {
	t := strings.ToLower(topic)
	for _, rule := range categoryRules {
		for _, n := range rule.needles {
			if strings.Contains(t, n) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// topicIcons maps exact topic names to their badge icon.
var topicIcons = map[string]string{
	"Numbers & Place Value":         "🔢",
	"Operations":                    "±×÷",
	"Fractions":                     "🍕",
	"Decimals":                      "💯",
	"Measurement & Data":            "📏",
	"Geometry":                      "📐",
	"Patterns & Algebraic Thinking": "🧩",
	"Data Analysis & Probability":   "🎲",
}

// DefaultIcon is used for topics without a dedicated icon.
const DefaultIcon = "🧮"

// IconFor returns the badge icon for an exact topic name.
func IconFor(topic string) string {
	if icon, ok := topicIcons[topic]; ok {
		return icon
	}
	return DefaultIcon
}

// FrontGlyph returns the decorative glyph shown next to the sample
// preview on the front face. Unlike CategoryFor, "place value" and
// "probability" do not select a glyph of their own.
func FrontGlyph(topic string) string {
	t := strings.ToLower(topic)
	switch {
	case t == "":
		return "🎯"
	case strings.Contains(t, "fraction"):
		return "🍕"
	case strings.Contains(t, "decimal"):
		return "💯"
	case strings.Contains(t, "geometry"):
		return "📐"
	case strings.Contains(t, "measure"):
		return "📏"
	case strings.Contains(t, "pattern"), strings.Contains(t, "algebra"):
		return "🧩"
	case strings.Contains(t, "number"):
		return "🔢"
	case strings.Contains(t, "data"):
		return "📊"
	default:
		return "🎯"
	}
}

// Gradient is a two-stop colour pair used for topic accents.
type Gradient struct {
	From string
	To   string
}

var defaultGradient = Gradient{"#bae6fd", "#93c5fd"}

var categoryGradients = map[Category]Gradient{
	CategoryFractions:   {"#fdba74", "#fed7aa"},
	CategoryDecimals:    {"#67e8f9", "#22d3ee"},
	CategoryGeometry:    {"#93c5fd", "#bfdbfe"},
	CategoryMeasurement: {"#d8b4fe", "#c084fc"},
	CategoryPatterns:    {"#a7f3d0", "#6ee7b7"},
	CategoryNumbers:     {"#fcd34d", "#fde68a"},
	CategoryData:        {"#fbcfe8", "#f9a8d4"},
}

// GradientFor returns the accent gradient for a topic.
func GradientFor(topic string) Gradient {
	c := CategoryFor(topic)
	// "probability" alone does not earn the data gradient.
	if c == CategoryData && !strings.Contains(strings.ToLower(topic), "data") {
		return defaultGradient
	}
	if g, ok := categoryGradients[c]; ok {
		return g
	}
	return defaultGradient
}
