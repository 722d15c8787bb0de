package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcards/internal/logging"
	"github.com/abhisek/mathcards/internal/offline"
	"github.com/abhisek/mathcards/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the offline cache",
}

var cacheInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Precache the deck and app assets under the current cache version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd, func(st *store.Store, c *offline.Cache) error {
			stored, err := c.Install(cmd.Context())
			if err != nil {
				return fmt.Errorf("install %s: %w", c.Name(), err)
			}
			fmt.Printf("Cached %d assets in %s\n", len(stored), c.Name())
			return nil
		})
	},
}

var cacheActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Delete every cache version except the current one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd, func(st *store.Store, c *offline.Cache) error {
			deleted, err := c.Activate(cmd.Context())
			if err != nil {
				return fmt.Errorf("activate %s: %w", c.Name(), err)
			}
			if len(deleted) == 0 {
				fmt.Println("No stale caches.")
				return nil
			}
			fmt.Printf("Deleted %s\n", strings.Join(deleted, ", "))
			return nil
		})
	},
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached URLs per cache version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd, func(st *store.Store, c *offline.Cache) error {
			ctx := cmd.Context()
			names, err := st.CacheRepo().Names(ctx)
			if err != nil {
				return fmt.Errorf("list caches: %w", err)
			}
			if len(names) == 0 {
				fmt.Println("Nothing cached yet.")
				return nil
			}
			for _, name := range names {
				keys, err := st.CacheRepo().Keys(ctx, name)
				if err != nil {
					return fmt.Errorf("list %s: %w", name, err)
				}
				marker := ""
				if name == c.Name() {
					marker = " (current)"
				}
				fmt.Printf("%s%s\n", name, marker)
				fmt.Println(strings.Repeat("─", 60))
				for _, k := range keys {
					fmt.Printf("  %s\n", k)
				}
				fmt.Println()
			}
			return nil
		})
	},
}

// withCache opens the store and builds the configured offline cache.
func withCache(cmd *cobra.Command, fn func(*store.Store, *offline.Cache) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	c, err := newCache(cfg, st, logger)
	if err != nil {
		return err
	}
	return fn(st, c)
}

func init() {
	cacheCmd.AddCommand(cacheInstallCmd)
	cacheCmd.AddCommand(cacheActivateCmd)
	cacheCmd.AddCommand(cacheListCmd)
}
