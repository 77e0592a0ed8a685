package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "List the symbols declared in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
	addQueryFlags(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatOutline(args[0], resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
