package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the ent driver and provides access to repositories.
type Store struct {
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)

	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{drv: drv}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// CacheRepo returns a CacheRepo backed by this store.
func (s *Store) CacheRepo() CacheRepo {
	return &cacheRepo{drv: s.drv}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// cacheEntriesTable is keyed by (cache_name, url).
var cacheEntriesTable = func() *schema.Table {
	t := schema.NewTable(tableCacheEntries)
	t.AddPrimary(&schema.Column{Name: colCacheName, Type: field.TypeString})
	t.AddPrimary(&schema.Column{Name: colURL, Type: field.TypeString})
	t.AddColumn(&schema.Column{Name: colContentType, Type: field.TypeString})
	t.AddColumn(&schema.Column{Name: colBody, Type: field.TypeBytes})
	t.AddColumn(&schema.Column{Name: colStoredAt, Type: field.TypeInt64})
	return t
}()

func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, cacheEntriesTable)
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MATHCARDS_DB environment variable
// 2. $XDG_DATA_HOME/mathcards/cache.db
// 3. ~/.local/share/mathcards/cache.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MATHCARDS_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mathcards", "cache.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
