package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://deck.json"

// deckSchema describes the shape Normalize understands. Unknown fields
// are allowed; known fields must be strings or null.
const deckSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "question":   {"type": ["string", "null"]},
      "front":      {"type": ["string", "null"]},
      "subtopic":   {"type": ["string", "null"]},
      "topic":      {"type": ["string", "null"]},
      "hint":       {"type": ["string", "null"]},
      "image":      {"type": ["string", "null"]},
      "imageFront": {"type": ["string", "null"]},
      "imageBack":  {"type": ["string", "null"]},
      "imageRight": {"type": ["string", "null"]},
      "icon":       {"type": ["string", "null"]},
      "color":      {"type": ["string", "null"]},
      "back":       {"type": ["string", "null"]}
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(deckSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Lint validates raw deck JSON against the deck schema. Loading never
// calls Lint; it is a check for deck authors.
func Lint(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	s, err := schema()
	if err != nil {
		return err
	}
	if err := s.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
