package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/itaybre/milim/internal/engine"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		printStats(cmd.OutOrStdout(), eng.Stats())
		return nil
	},
}

func printStats(out io.Writer, st engine.Stats) {
	fmt.Fprintln(out, titleStyle.Render("milim stats"))
	if st.TotalAttempts == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No attempts recorded yet. Run `milim play` to start."))
		return
	}

	fmt.Fprintf(out, "  Attempts: %d (%.0f%% correct)\n", st.TotalAttempts, st.Accuracy*100)
	fmt.Fprintf(out, "  Current streak: %s\n", renderStreak(st.CurrentStreak))
	fmt.Fprintf(out, "  Pairs: %d practiced, %d mastered, %d due for review\n",
		st.AttemptedPairs, st.MasteredPairs, st.DuePairs)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("  %-14s %9s %9s %10s", "WORD", "ATTEMPTS", "CORRECT", "MASTERED")))
	for _, w := range st.Words {
		fmt.Fprintf(out, "  %-14s %9d %8.0f%% %10d\n", w.Text, w.Attempts, w.Accuracy*100, w.MasteredPairs)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("  %-22s %9s %9s", "FORMAT", "ATTEMPTS", "CORRECT")))
	for _, f := range st.Formats {
		fmt.Fprintf(out, "  %-22s %9d %8.0f%%\n", f.FormatID, f.Attempts, f.Accuracy*100)
	}
}

func renderStreak(n int) string {
	switch {
	case n > 0:
		return correctStyle.Render(fmt.Sprintf("%d correct", n))
	case n < 0:
		return wrongStyle.Render(fmt.Sprintf("%d missed", -n))
	default:
		return "none"
	}
}
