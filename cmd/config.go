package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/itaybre/milim/internal/options"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set learner settings",
}

var sessionLengthCmd = &cobra.Command{
	Use:   "session-length [n]",
	Short: "Get or set the number of cards per session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Session length: %d\n", eng.SessionLength())
			return nil
		}

		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("session length must be a number, got %q", args[0])
		}
		stored, err := eng.SetSessionLength(n)
		if err != nil {
			return fmt.Errorf("set session length: %w", err)
		}
		if stored != n {
			fmt.Fprintf(cmd.OutOrStdout(), "Session length clamped to %d\n", stored)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session length set to %d\n", stored)
		return nil
	},
}

var floorCmd = &cobra.Command{
	Use:   "floor <word> <level>",
	Short: "Raise the minimum option count for a word",
	Long: "Raise the per-word option floor. Every drill of the word then shows at\n" +
		"least this many options regardless of its earned level. Floors only go\n" +
		"up; reset erases them.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("level must be a number, got %q", args[1])
		}
		if level < options.MinLevel || level > options.MaxLevel {
			return fmt.Errorf("level must be between %d and %d, got %d",
				options.MinLevel, options.MaxLevel, level)
		}

		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		raised, err := eng.RaiseFloor(args[0], level)
		if err != nil {
			return fmt.Errorf("raise floor: %w", err)
		}
		if !raised {
			fmt.Fprintf(cmd.OutOrStdout(), "Floor for %q already at or above %d\n", args[0], level)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Floor for %q raised to %d\n", args[0], level)
		return nil
	},
}

func init() {
	configCmd.AddCommand(sessionLengthCmd)
	configCmd.AddCommand(floorCmd)
}
