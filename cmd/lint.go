package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcards/internal/deck"
)

var lintCmd = &cobra.Command{
	Use:   "lint <deck.json>",
	Short: "Check a deck file against the deck schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read deck: %w", err)
		}
		if err := deck.Lint(raw); err != nil {
			return err
		}
		cards, err := deck.Normalize(raw)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d cards OK\n", args[0], len(cards))
		return nil
	},
}
