package deck

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Fetcher retrieves a remote document. The offline cache implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// IsRemote reports whether src names an http(s) resource.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load reads the deck at src and normalizes it. Remote sources go through
// fetcher; anything else is read from the local filesystem.
func Load(ctx context.Context, fetcher Fetcher, src string) ([]Card, error) {
	raw, err := read(ctx, fetcher, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return Normalize(raw)
}

func read(ctx context.Context, fetcher Fetcher, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("no deck source configured")
	}
	if IsRemote(src) {
		if fetcher == nil {
			return nil, fmt.Errorf("fetch %s: no fetcher configured", src)
		}
		return fetcher.Fetch(ctx, src)
	}
	return os.ReadFile(strings.TrimPrefix(src, "file://"))
}
