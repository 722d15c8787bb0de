package attribution

import (
	"fmt"
	"os"
	"strings"
)

// FileName is the attribution document written next to the deck.
const FileName = "ATTRIBUTIONS.md"

// Render builds the attribution document for the downloaded items.
func Render(items []Item, imageDir string) string {
	lines := []string{
		"# Image Attributions\n",
		fmt.Sprintf("> All images stored in `%s/`. Licenses noted per source.\n", strings.TrimSuffix(imageDir, "/")),
	}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- **%s** — Source: %s — License: %s — Topic: %s",
			it.Name, it.URL, LicenseFor(it.URL), it.Topic))
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteFile writes the attribution document to path.
func WriteFile(path string, items []Item, imageDir string) error {
	if err := os.WriteFile(path, []byte(Render(items, imageDir)), 0o644); err != nil {
		return fmt.Errorf("write attributions: %w", err)
	}
	return nil
}
