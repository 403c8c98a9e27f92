package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/itaybre/milim/internal/store"
)

var (
	verbose bool

	// logger is rebuilt in PersistentPreRunE; commands running before
	// that (help, completion) see the nop logger.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "milim",
	Short: "Adaptive Hebrew-English flashcards in the terminal",
	Long: "Milim is a terminal flashcard trainer for Hebrew-English vocabulary.\n" +
		"It adapts how many answer options each card shows, tracks mastery per\n" +
		"word and drill format, and resurfaces mastered words on a spaced\n" +
		"review schedule.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		// Warnings only by default so log lines don't interleave with
		// the practice loop.
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MILIM_DB env var)")
	rootCmd.PersistentFlags().String("words", "", "Path to word catalog JSON (overrides MILIM_WORDS env var)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MILIM_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveWordsPath returns the catalog path using --words flag, then
// MILIM_WORDS env var, then the bundled default.
func resolveWordsPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("words"); p != "" {
		return p
	}
	if p := os.Getenv("MILIM_WORDS"); p != "" {
		return p
	}
	return "data/words.json"
}
