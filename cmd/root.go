// Package cmd wires the review engine to the terminal: cobra commands
// for building the queue, running review sessions, importing items,
// and the background reminder.
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ayane/osarai/internal/config"
	"github.com/ayane/osarai/internal/store"
)

// cfg is the effective configuration, loaded once before any command
// runs and treated as an immutable snapshot from then on.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "osarai",
	Short: "Spaced-repetition review for language study",
	Long: "Osarai schedules learned items (vocabulary, kanji, grammar, ...) for review\n" +
		"with an SM-2 style algorithm and tells you what is due, when, and how urgently.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Best effort: a missing .env is the normal case.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides OSARAI_DB env var)")

	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then the settings file, then OSARAI_DB / the default XDG
// path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return store.DefaultDBPath()
}

// openStore opens the database for one command invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
