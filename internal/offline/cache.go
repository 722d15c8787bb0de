// Package offline keeps a versioned, sqlite-backed copy of the deck and app
// assets so studying keeps working without a network.
package offline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathcards/internal/logging"
	"github.com/abhisek/mathcards/internal/store"
)

var (
	// ErrNotCached is returned when the network fails and no cached copy exists.
	ErrNotCached = errors.New("not cached")
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected HTTP status")
)

// Options configures a Cache.
type Options struct {
	// Name is the current cache version, e.g. "flashcards-v1".
	Name string
	// BaseURL resolves relative asset paths.
	BaseURL string
	// Assets are the paths precached by Install.
	Assets []string
	// Concurrency bounds parallel fetches during Install. Zero means 4.
	Concurrency int
	Client      *http.Client
	Logger      *zap.Logger
}

// Cache serves responses from the network or a named cache in the store.
type Cache struct {
	name        string
	base        *url.URL
	assets      []string
	concurrency int
	client      *http.Client
	repo        store.CacheRepo
	logger      *zap.Logger
}

// New creates a Cache over repo.
func New(repo store.CacheRepo, opts Options) (*Cache, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("cache name is required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Cache{
		name:        opts.Name,
		base:        base,
		assets:      opts.Assets,
		concurrency: opts.Concurrency,
		client:      opts.Client,
		repo:        repo,
		logger:      logging.OrNop(opts.Logger),
	}
	if c.concurrency <= 0 {
		c.concurrency = 4
	}
	if c.client == nil {
		c.client = http.DefaultClient
	}
	return c, nil
}

// Name returns the current cache version.
func (c *Cache) Name() string {
	return c.name
}

// Resolve returns the absolute URL for an asset path.
func (c *Cache) Resolve(asset string) string {
	ref, err := url.Parse(asset)
	if err != nil {
		return asset
	}
	return c.base.ResolveReference(ref).String()
}

// Install fetches every configured asset and stores them under the current
// cache name. Nothing is stored unless every fetch succeeds.
func (c *Cache) Install(ctx context.Context) ([]string, error) {
	urls := make([]string, len(c.assets))
	for i, a := range c.assets {
		urls[i] = c.Resolve(a)
	}

	entries := make([]store.CacheEntry, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			body, ctype, err := c.get(gctx, u)
			if err != nil {
				return fmt.Errorf("precache %s: %w", u, err)
			}
			entries[i] = store.CacheEntry{CacheName: c.name, URL: u, ContentType: ctype, Body: body}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := c.repo.PutAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("store precache: %w", err)
	}
	c.logger.Info("cache installed", zap.String("cache", c.name), zap.Int("assets", len(entries)))
	return urls, nil
}

// Activate deletes every cache whose name differs from the current one and
// returns the purged names.
func (c *Cache) Activate(ctx context.Context) ([]string, error) {
	names, err := c.repo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("list caches: %w", err)
	}

	var purged []string
	for _, n := range names {
		if n == c.name {
			continue
		}
		if err := c.repo.DeleteCache(ctx, n); err != nil {
			return purged, err
		}
		c.logger.Info("cache purged", zap.String("cache", n))
		purged = append(purged, n)
	}
	return purged, nil
}

// Fetch returns the body for rawURL. JSON documents are network-first so
// deck edits show up; everything else is cache-first.
func (c *Cache) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if isJSON(rawURL) {
		return c.networkFirst(ctx, rawURL)
	}
	return c.cacheFirst(ctx, rawURL)
}

// Keys lists the URLs held in the current cache.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	return c.repo.Keys(ctx, c.name)
}

func (c *Cache) networkFirst(ctx context.Context, rawURL string) ([]byte, error) {
	body, ctype, err := c.get(ctx, rawURL)
	if err == nil {
		putErr := c.repo.Put(ctx, store.CacheEntry{CacheName: c.name, URL: rawURL, ContentType: ctype, Body: body})
		if putErr != nil {
			c.logger.Warn("cache put failed", zap.String("url", rawURL), zap.Error(putErr))
		}
		return body, nil
	}

	c.logger.Debug("network failed, trying cache", zap.String("url", rawURL), zap.Error(err))
	entry, matchErr := c.repo.Match(ctx, c.name, rawURL)
	if matchErr != nil {
		return nil, fmt.Errorf("match %s: %w", rawURL, matchErr)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotCached, rawURL, err)
	}
	return entry.Body, nil
}

func (c *Cache) cacheFirst(ctx context.Context, rawURL string) ([]byte, error) {
	entry, err := c.repo.Match(ctx, c.name, rawURL)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", rawURL, err)
	}
	if entry != nil {
		return entry.Body, nil
	}

	body, _, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotCached, rawURL, err)
	}
	return body, nil
}

func (c *Cache) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: HTTP %d for %s", ErrStatus, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return body, contentType(resp.Header.Get("Content-Type"), rawURL), nil
}

func isJSON(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.HasSuffix(rawURL, ".json")
	}
	return strings.HasSuffix(u.Path, ".json")
}

func contentType(header, rawURL string) string {
	if header != "" {
		return header
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return mime.TypeByExtension(path.Ext(u.Path))
}
