package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableCacheEntries = "cache_entries"
	colCacheName      = "cache_name"
	colURL            = "url"
	colContentType    = "content_type"
	colBody           = "body"
	colStoredAt       = "stored_at"
)

// cacheRepo implements CacheRepo on the cache_entries table.
type cacheRepo struct {
	drv *entsql.Driver
}

// builder renders statements in the sqlite dialect.
var builder = entsql.Dialect(dialect.SQLite)

func putEntry(ctx context.Context, ex dialect.ExecQuerier, e CacheEntry) error {
	storedAt := e.StoredAt
	if storedAt.IsZero() {
		storedAt = time.Now()
	}
	body := e.Body
	if body == nil {
		body = []byte{}
	}
	query, args := builder.Insert(tableCacheEntries).
		Columns(colCacheName, colURL, colContentType, colBody, colStoredAt).
		Values(e.CacheName, e.URL, e.ContentType, body, storedAt.UTC().UnixNano()).
		OnConflict(
			entsql.ConflictColumns(colCacheName, colURL),
			entsql.ResolveWithNewValues(),
		).
		Query()
	return ex.Exec(ctx, query, args, nil)
}

func (r *cacheRepo) Put(ctx context.Context, entry CacheEntry) error {
	if err := putEntry(ctx, r.drv, entry); err != nil {
		return fmt.Errorf("save cache entry: %w", err)
	}
	return nil
}

func (r *cacheRepo) PutAll(ctx context.Context, entries []CacheEntry) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, e := range entries {
		if err := putEntry(ctx, tx, e); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save cache entry %s: %w", e.URL, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *cacheRepo) Match(ctx context.Context, cacheName, url string) (*CacheEntry, error) {
	t := builder.Table(tableCacheEntries)
	query, args := builder.Select(
		t.C(colCacheName), t.C(colURL), t.C(colContentType), t.C(colBody), t.C(colStoredAt),
	).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C(colCacheName), cacheName),
			entsql.EQ(t.C(colURL), url),
		)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query cache entry: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var (
		e        CacheEntry
		storedAt int64
	)
	if err := rows.Scan(&e.CacheName, &e.URL, &e.ContentType, &e.Body, &storedAt); err != nil {
		return nil, fmt.Errorf("scan cache entry: %w", err)
	}
	e.StoredAt = time.Unix(0, storedAt).UTC()
	return &e, nil
}

func (r *cacheRepo) Names(ctx context.Context) ([]string, error) {
	t := builder.Table(tableCacheEntries)
	return r.strings(ctx, builder.Select(t.C(colCacheName)).
		Distinct().
		From(t).
		OrderBy(t.C(colCacheName)))
}

func (r *cacheRepo) Keys(ctx context.Context, cacheName string) ([]string, error) {
	t := builder.Table(tableCacheEntries)
	return r.strings(ctx, builder.Select(t.C(colURL)).
		From(t).
		Where(entsql.EQ(t.C(colCacheName), cacheName)).
		OrderBy(t.C(colURL)))
}

func (r *cacheRepo) DeleteCache(ctx context.Context, cacheName string) error {
	query, args := builder.Delete(tableCacheEntries).
		Where(entsql.EQ(colCacheName, cacheName)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete cache %s: %w", cacheName, err)
	}
	return nil
}

func (r *cacheRepo) strings(ctx context.Context, sel *entsql.Selector) ([]string, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []string
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return out, nil
}
