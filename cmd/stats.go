package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcards/internal/backtext"
	"github.com/abhisek/mathcards/internal/deck"
)

var statsCmd = &cobra.Command{
	Use:   "stats [deck]",
	Short: "Show card counts per topic",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		src := cfg.Deck.Path
		if len(args) == 1 {
			src = args[0]
		}
		if deck.IsRemote(src) {
			return fmt.Errorf("stats reads local decks only; got %s", src)
		}

		cards, err := deck.Load(cmd.Context(), nil, src)
		if err != nil {
			return err
		}

		counts := make(map[string]int)
		steps := make(map[string]int)
		for _, c := range cards {
			counts[c.Topic]++
			steps[c.Topic] += len(backtext.Steps(backtext.Parse(c.Back).Solution))
		}

		fmt.Printf("%-32s  %6s  %6s\n", "Topic", "Cards", "Steps")
		fmt.Println(strings.Repeat("─", 48))
		for _, topic := range deck.Topics(cards) {
			fmt.Printf("%-32s  %6d  %6d\n", deck.IconFor(topic)+" "+topic, counts[topic], steps[topic])
		}
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-32s  %6d\n", "TOTAL", len(cards))
		return nil
	},
}
