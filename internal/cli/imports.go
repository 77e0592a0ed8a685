package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullpilot/codesweep/internal/query"
)

var (
	importsModule     string
	importsKind       string
	importsFilePrefix string
	importsTypeOnly   bool
	importsExternal   bool
	importsInternal   bool
	importsLimit      int
)

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "List import edges, optionally filtered",
	RunE:  runImports,
}

func init() {
	rootCmd.AddCommand(importsCmd)
	addQueryFlags(importsCmd)
	importsCmd.Flags().StringVar(&importsModule, "module", "", "restrict to this module specifier")
	importsCmd.Flags().StringVar(&importsKind, "kind", "", "restrict to this import kind")
	importsCmd.Flags().StringVar(&importsFilePrefix, "file-prefix", "", "restrict to source files under this prefix")
	importsCmd.Flags().BoolVar(&importsTypeOnly, "type-only", false, "restrict to type-only imports")
	importsCmd.Flags().BoolVar(&importsExternal, "external", false, "restrict to external (package-manager) imports")
	importsCmd.Flags().BoolVar(&importsInternal, "internal", false, "restrict to internal (relative-path) imports")
	importsCmd.Flags().IntVar(&importsLimit, "limit", 100, "maximum rows to return")
}

func runImports(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	filter := query.ImportFilter{
		Module:   importsModule,
		Kind:     importsKind,
		File:     importsFilePrefix,
		TypeOnly: importsTypeOnly,
		External: importsExternal,
		Internal: importsInternal,
	}

	out, err := e.FormatImports(filter, importsLimit, resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
