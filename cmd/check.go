package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/exercise"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the word catalog",
	Long: "Load the word catalog, validate it against the schema, and verify that\n" +
		"every schedulable word/format pair can build a full option set. Defects\n" +
		"reported here are the ones a practice session would fail on.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path := resolveWordsPath(cmd)

		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}

		pairs := cat.SupportedPairs()
		fmt.Fprintf(out, "%s: %d words, %d formats, %d schedulable pairs\n",
			path, cat.Len(), len(cat.Formats()), len(pairs))

		builder := exercise.NewBuilder(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
		defects := builder.Preflight()
		if len(defects) == 0 {
			fmt.Fprintln(out, correctStyle.Render("Catalog OK"))
			return nil
		}
		for _, d := range defects {
			fmt.Fprintln(out, wrongStyle.Render("  ✗ ")+d.String())
		}
		return fmt.Errorf("catalog has %d defect(s)", len(defects))
	},
}
