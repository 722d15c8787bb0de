package deck

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// Defaults applied to records that omit a field.
const (
	DefaultQuestion = "Question"
	DefaultTopic    = "General"
	DefaultColor    = "#eef2f7"
)

// ErrLoad is returned when a deck cannot be read or is not a JSON array.
var ErrLoad = errors.New("deck load failed")

// Card is a single normalized deck entry. Image fields are empty when absent.
type Card struct {
	Question   string
	Hint       string
	ImageFront string
	ImageBack  string
	ImageRight string
	Topic      string
	Icon       string
	Color      string
	Back       string
}

// Normalize parses a raw deck document and fills default fields.
// Cards are returned in document order.
func Normalize(raw []byte) ([]Card, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrLoad)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of cards", ErrLoad)
	}

	records := doc.Array()
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, NormalizeRecord(rec))
	}
	return cards, nil
}

// NormalizeRecord maps one raw record onto a Card. Missing or empty
// fields fall back silently; there is no failure path.
func NormalizeRecord(rec gjson.Result) Card {
	rawTopic := field(rec, "topic")

	question := strings.TrimSpace(field(rec, "question"))
	if question == "" {
		question = firstNonEmpty(field(rec, "front"), field(rec, "subtopic"), rawTopic, DefaultQuestion)
	}

	icon := field(rec, "icon")
	if icon == "" {
		icon = IconFor(rawTopic)
	}

	return Card{
		Question:   question,
		Hint:       field(rec, "hint"),
		ImageFront: firstNonEmpty(field(rec, "imageFront"), field(rec, "image")),
		ImageBack:  field(rec, "imageBack"),
		ImageRight: field(rec, "imageRight"),
		Topic:      firstNonEmpty(rawTopic, DefaultTopic),
		Icon:       icon,
		Color:      firstNonEmpty(field(rec, "color"), DefaultColor),
		Back:       field(rec, "back"),
	}
}

// field returns the string form of a record field. Null, missing and
// boolean false values read as empty.
func field(rec gjson.Result, name string) string {
	v := rec.Get(name)
	switch v.Type {
	case gjson.Null, gjson.False:
		return ""
	case gjson.Number:
		if v.Num == 0 {
			return ""
		}
	}
	return v.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Topics returns the distinct non-empty topics of cards, sorted.
func Topics(cards []Card) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, c := range cards {
		if c.Topic == "" || seen[c.Topic] {
			continue
		}
		seen[c.Topic] = true
		topics = append(topics, c.Topic)
	}
	slices.Sort(topics)
	return topics
}
