package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcards/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every offline cache version",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		repo := st.CacheRepo()
		names, err := repo.Names(ctx)
		if err != nil {
			return fmt.Errorf("list caches: %w", err)
		}
		for _, name := range names {
			if err := repo.DeleteCache(ctx, name); err != nil {
				return fmt.Errorf("delete %s: %w", name, err)
			}
		}
		fmt.Printf("Deleted %d cache versions.\n", len(names))
		return nil
	},
}
