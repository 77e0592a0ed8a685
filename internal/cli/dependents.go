package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dependentsCmd = &cobra.Command{
	Use:   "dependents <file>",
	Short: "List files that import this file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDependents,
}

func init() {
	rootCmd.AddCommand(dependentsCmd)
	addQueryFlags(dependentsCmd)
}

func runDependents(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatDependents(args[0], resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
