package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	filesLanguage  string
	filesDirectory string
	filesSort      string
	filesLimit     int
	filesOffset    int
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List discovered files, optionally filtered by language or directory",
	RunE:  runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	addQueryFlags(filesCmd)
	filesCmd.Flags().StringVar(&filesLanguage, "language", "", "restrict to this language")
	filesCmd.Flags().StringVar(&filesDirectory, "directory", "", "restrict to this directory prefix")
	filesCmd.Flags().StringVar(&filesSort, "sort", "path", "sort by path, name, language, size, or lines")
	filesCmd.Flags().IntVar(&filesLimit, "limit", 100, "maximum rows to return")
	filesCmd.Flags().IntVar(&filesOffset, "offset", 0, "rows to skip")
}

func runFiles(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.FormatFiles(filesLanguage, filesDirectory, filesSort, filesLimit, filesOffset, resolveFormat())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
