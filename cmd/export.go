package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the attempt history as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		data, err := eng.ExportJSON()
		if err != nil {
			return fmt.Errorf("export history: %w", err)
		}

		if exportOut == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if err := os.WriteFile(exportOut, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d history entries to %s\n", len(eng.History()), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to a file instead of stdout")
}
