package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcards/internal/config"
	"github.com/abhisek/mathcards/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathcards",
	Short: "Math flashcards in the terminal",
	Long:  "Mathcards — study a deck of math flashcards with topic filters, search, shuffle and offline caching.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides MATHCARDS_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite cache database (overrides MATHCARDS_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().String("deck", "", "Deck file or http(s) URL")
	rootCmd.Flags().String("topic", "", "Start filtered to this topic")
	rootCmd.Flags().String("search", "", "Start with this search term")
	rootCmd.Flags().Bool("shuffle", false, "Start with shuffle on")
	rootCmd.Flags().Bool("watch", false, "Reload a local deck file when it changes")

	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHCARDS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the config file named by --config, MATHCARDS_CONFIG or
// the XDG default, then applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Lookup("deck") == nil {
		return cfg, nil
	}
	if flags.Changed("deck") {
		cfg.Deck.Path, _ = flags.GetString("deck")
	}
	if flags.Changed("topic") {
		cfg.Deck.Topic, _ = flags.GetString("topic")
	}
	if flags.Changed("search") {
		cfg.Deck.Search, _ = flags.GetString("search")
	}
	if flags.Changed("shuffle") {
		cfg.Deck.Shuffle, _ = flags.GetBool("shuffle")
	}
	if flags.Changed("watch") {
		cfg.Deck.Watch, _ = flags.GetBool("watch")
	}
	return cfg, nil
}
