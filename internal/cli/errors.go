package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	errorsType     string
	errorsLanguage string
	errorsLimit    int
)

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List parse errors, optionally filtered",
	RunE:  runErrors,
}

func init() {
	rootCmd.AddCommand(errorsCmd)
	addQueryFlags(errorsCmd)
	errorsCmd.Flags().StringVar(&errorsType, "type", "", "restrict to this error type")
	errorsCmd.Flags().StringVar(&errorsLanguage, "language", "", "restrict to this language")
	errorsCmd.Flags().IntVar(&errorsLimit, "limit", 100, "maximum rows to return")
}

func runErrors(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatErrors(errorsType, errorsLanguage, errorsLimit, resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
