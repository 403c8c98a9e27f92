package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itaybre/milim/internal/catalog"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Browse the word catalog",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog words (optionally filtered by tag or difficulty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")
		difficulty, _ := cmd.Flags().GetInt("difficulty")

		cat, err := catalog.Load(resolveWordsPath(cmd))
		if err != nil {
			return err
		}

		var words []catalog.Word
		switch {
		case tag != "" && difficulty != 0:
			return fmt.Errorf("use --tag or --difficulty, not both")
		case tag != "":
			for _, w := range cat.Words() {
				if slices.Contains(w.Tags, tag) {
					words = append(words, w)
				}
			}
			if len(words) == 0 {
				return fmt.Errorf("no words found for tag %q", tag)
			}
		case difficulty != 0:
			for _, w := range cat.Words() {
				if w.Difficulty == difficulty {
					words = append(words, w)
				}
			}
			if len(words) == 0 {
				return fmt.Errorf("no words found for difficulty %d", difficulty)
			}
		default:
			words = cat.Words()
		}

		// Header.
		fmt.Printf("%-14s  %-14s  %-12s  %-30s  %4s  %s\n",
			"ID", "English", "Hebrew", "Modalities", "Diff", "Tags")
		fmt.Println(strings.Repeat("─", 95))

		for _, w := range words {
			fmt.Printf("%-14s  %-14s  %-12s  %-30s  %4d  %s\n",
				w.ID, w.Text, w.Translation, modalitySummary(w),
				w.Difficulty, strings.Join(w.Tags, ","))
		}

		fmt.Printf("\n%d words\n", len(words))
		return nil
	},
}

// modalitySummary names the modalities the word can be drilled in.
func modalitySummary(w catalog.Word) string {
	all := []catalog.Modality{
		catalog.ModalityText,
		catalog.ModalityTranslation,
		catalog.ModalityImage,
		catalog.ModalityAudio,
		catalog.ModalityLetter,
	}
	var have []string
	for _, m := range all {
		if w.HasModality(m) {
			have = append(have, string(m))
		}
	}
	return strings.Join(have, ",")
}

func init() {
	wordsListCmd.Flags().String("tag", "", "Filter by tag (e.g. animals)")
	wordsListCmd.Flags().Int("difficulty", 0, "Filter by difficulty (1-5)")

	wordsCmd.AddCommand(wordsListCmd)
}
