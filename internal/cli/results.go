package cli

import (
	"github.com/buemura/nscan/internal/output"
	"github.com/buemura/nscan/internal/store"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List saved scan results",
	Long:  "Lists the scan files saved in the output directory, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runResults,
}

func init() {
	resultsCmd.Flags().StringP("output", "o", "table", "output format: table, json, markdown")
}

func runResults(cmd *cobra.Command, args []string) error {
	formatter, err := output.GetFormatter(appConfig.OutputFormat)
	if err != nil {
		return err
	}

	records, err := store.New(appConfig.OutputDir, nil).List()
	if err != nil {
		return err
	}

	return formatter.Format(cmd.OutOrStdout(), records)
}
