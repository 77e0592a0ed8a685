package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullpilot/codesweep/internal/config"
	"github.com/nullpilot/codesweep/internal/query"
)

var (
	dataDir      string
	outputFormat string
)

// addQueryFlags attaches the --data-dir and --format flags shared by every
// query-engine command.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "dataset directory (default from config)")
	cmd.Flags().StringVar(&outputFormat, "format", "", "output format: table, json, or csv (default from config)")
}

// openEngine resolves the dataset directory from --data-dir or the project
// config and opens a query.Engine against it.
func openEngine() (*query.Engine, error) {
	dir := dataDir
	if dir == "" {
		cfg, err := config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		dir = cfg.Output.DataDir
	}
	return query.Open(dir)
}

// resolveFormat resolves --format against the project config's default,
// falling back to table rendering.
func resolveFormat() query.Format {
	if outputFormat != "" {
		return query.Format(outputFormat)
	}
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return query.FormatTable
	}
	return query.Format(cfg.Output.Format)
}
