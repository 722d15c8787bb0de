// Package attribution downloads deck images listed in a manifest and writes
// an ATTRIBUTIONS.md crediting each source.
package attribution

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// Item is one image to download.
type Item struct {
	URL   string
	Name  string
	Topic string
}

// ParseManifest reads a JSON array of {url, name, topic} objects. Entries
// without a url or name are rejected.
func ParseManifest(raw []byte) ([]Item, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("manifest is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("manifest must be a JSON array")
	}

	var items []Item
	var bad []string
	doc.ForEach(func(key, value gjson.Result) bool {
		item := Item{
			URL:   strings.TrimSpace(value.Get("url").String()),
			Name:  strings.TrimSpace(value.Get("name").String()),
			Topic: strings.TrimSpace(value.Get("topic").String()),
		}
		if item.URL == "" || item.Name == "" {
			bad = append(bad, key.String())
			return true
		}
		items = append(items, item)
		return true
	})
	if len(bad) > 0 {
		return nil, fmt.Errorf("manifest entries missing url or name at index %s", strings.Join(bad, ", "))
	}
	return items, nil
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) ([]Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	items, err := ParseManifest(raw)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return items, nil
}
