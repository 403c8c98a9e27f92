package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all learner progress",
	Long: "Erase the attempt history, option floors, and review schedule.\n" +
		"The session length setting is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return errors.New("refusing to erase progress without --yes")
		}

		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := eng.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm erasing all progress")
}
