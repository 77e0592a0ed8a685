package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarize the dataset: languages, top symbols, and directories",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	addQueryFlags(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatOverview(resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
