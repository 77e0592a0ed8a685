package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var callersLimit int

var callersCmd = &cobra.Command{
	Use:   "callers <name>",
	Short: "Find symbols that might reference name (fuzzy)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCallers,
}

func init() {
	rootCmd.AddCommand(callersCmd)
	addQueryFlags(callersCmd)
	callersCmd.Flags().IntVar(&callersLimit, "limit", 25, "maximum rows to return")
}

func runCallers(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatCallers(args[0], callersLimit, resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
