package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchKind     string
	searchExported bool
	searchLimit    int
	searchOffset   int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find symbols matching a name, ranked by usage",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addQueryFlags(searchCmd)
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "restrict to this symbol kind")
	searchCmd.Flags().BoolVar(&searchExported, "exported-only", false, "restrict to exported symbols")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 25, "maximum rows to return")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "rows to skip")
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatSearch(args[0], searchKind, searchExported, searchLimit, searchOffset, resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
