package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathcards/internal/app"
	"github.com/abhisek/mathcards/internal/config"
	"github.com/abhisek/mathcards/internal/deck"
	"github.com/abhisek/mathcards/internal/logging"
	"github.com/abhisek/mathcards/internal/offline"
	"github.com/abhisek/mathcards/internal/screens/study"
	"github.com/abhisek/mathcards/internal/session"
	"github.com/abhisek/mathcards/internal/store"
)

// runApp loads config, wires the deck source, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to a file when one is set.
	logger, err := logging.ForTUI(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("run", uuid.NewString()))

	var fetcher deck.Fetcher
	if deck.IsRemote(cfg.Deck.Path) {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		c, err := newCache(cfg, st, logger)
		if err != nil {
			return err
		}
		fetcher = offline.WithLogging(c, logger)
	}

	opts := app.Options{
		Study: study.Options{
			Loader:         deckLoader(cfg, fetcher),
			Timing:         cfg.SessionTiming(),
			SearchDebounce: cfg.SearchDebounce(),
			Filter: session.Filter{
				Topic:   cfg.Deck.Topic,
				Term:    cfg.Deck.Search,
				Shuffle: cfg.Deck.Shuffle,
			},
			Logger: logger,
		},
		Logger: logger,
	}

	if cfg.Deck.Watch {
		if deck.IsRemote(cfg.Deck.Path) {
			logger.Warn("watch ignored for remote deck", zap.String("deck", cfg.Deck.Path))
		} else {
			opts.Watch = &app.WatchOptions{Path: cfg.Deck.Path, Debounce: cfg.WatchDebounce()}
		}
	}

	return app.Run(ctx, opts)
}

// deckLoader returns a study.Loader that reads cfg's deck through fetcher.
func deckLoader(cfg *config.Config, fetcher deck.Fetcher) study.Loader {
	return func(ctx context.Context) ([]deck.Card, error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.CacheTimeout())
		defer cancel()
		return deck.Load(ctx, fetcher, cfg.Deck.Path)
	}
}

// newCache builds the offline cache described by cfg over st.
func newCache(cfg *config.Config, st *store.Store, logger *zap.Logger) (*offline.Cache, error) {
	c, err := offline.New(st.CacheRepo(), offline.Options{
		Name:        cfg.Cache.Name,
		BaseURL:     cfg.Cache.BaseURL,
		Assets:      cfg.Cache.Assets,
		Concurrency: cfg.Cache.Concurrency,
		Client:      &http.Client{Timeout: cfg.CacheTimeout()},
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create offline cache: %w", err)
	}
	return c, nil
}
