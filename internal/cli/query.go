package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a raw SQL query against the files/symbols/imports/comments/errors views",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	addQueryFlags(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatQuery(args[0], resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
