package store

import (
	"context"
	"time"
)

// CacheEntry is a stored response body keyed by cache name and URL.
type CacheEntry struct {
	CacheName   string
	URL         string
	ContentType string
	Body        []byte
	StoredAt    time.Time
}

// CacheRepo stores named, versioned response caches.
type CacheRepo interface {
	// Put inserts or replaces the entry for (CacheName, URL).
	Put(ctx context.Context, entry CacheEntry) error

	// PutAll stores every entry in one transaction.
	PutAll(ctx context.Context, entries []CacheEntry) error

	// Match returns the entry for url in cacheName, or nil if absent.
	Match(ctx context.Context, cacheName, url string) (*CacheEntry, error)

	// Names lists the distinct cache names present, sorted.
	Names(ctx context.Context) ([]string, error)

	// Keys lists the URLs stored under cacheName, sorted.
	Keys(ctx context.Context, cacheName string) ([]string, error)

	// DeleteCache removes every entry under cacheName.
	DeleteCache(ctx context.Context, cacheName string) error
}
