package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "List a file's imports",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	addQueryFlags(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatDeps(args[0], resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
