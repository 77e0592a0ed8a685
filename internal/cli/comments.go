package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullpilot/codesweep/internal/query"
)

var (
	commentsFilePrefix string
	commentsKind       string
	commentsDocumented bool
	commentsSymbol     string
	commentsLimit      int
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "List comments, optionally filtered",
	RunE:  runComments,
}

func init() {
	rootCmd.AddCommand(commentsCmd)
	addQueryFlags(commentsCmd)
	commentsCmd.Flags().StringVar(&commentsFilePrefix, "file-prefix", "", "restrict to files under this prefix")
	commentsCmd.Flags().StringVar(&commentsKind, "kind", "", "restrict to this comment kind")
	commentsCmd.Flags().BoolVar(&commentsDocumented, "documented", false, "restrict to comments associated with a symbol")
	commentsCmd.Flags().StringVar(&commentsSymbol, "symbol", "", "restrict to comments associated with this symbol")
	commentsCmd.Flags().IntVar(&commentsLimit, "limit", 100, "maximum rows to return")
}

func runComments(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	filter := query.CommentFilter{
		File:       commentsFilePrefix,
		Kind:       commentsKind,
		Documented: commentsDocumented,
		Symbol:     commentsSymbol,
	}

	out, err := e.FormatComments(filter, commentsLimit, resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
