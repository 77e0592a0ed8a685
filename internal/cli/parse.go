package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nullpilot/codesweep/internal/config"
	"github.com/nullpilot/codesweep/internal/discovery"
	"github.com/nullpilot/codesweep/internal/driver"
	"github.com/nullpilot/codesweep/internal/extract"
	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/watch"
	"github.com/nullpilot/codesweep/internal/writer"
)

var (
	parseOutput    string
	parseLanguages []string
	parseQuiet     bool
	parseWatch     bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [path]",
	Short: "Parse a source tree and write its dataset",
	Long: `parse walks a directory with tree-sitter, extracts files, symbols,
imports, comments, and parse errors, and writes the result as a five-table
Parquet dataset under the output directory.

Examples:
  # Parse the current directory
  codesweep parse

  # Parse a specific directory, restricted to two languages
  codesweep parse ./src --language go --language python

  # Parse without progress output
  codesweep parse --quiet

  # Re-parse automatically whenever a watched file changes
  codesweep parse --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "dataset output directory (default from config)")
	parseCmd.Flags().StringSliceVarP(&parseLanguages, "language", "l", nil, "restrict extraction to these languages (repeatable)")
	parseCmd.Flags().BoolVarP(&parseQuiet, "quiet", "q", false, "disable progress output")
	parseCmd.Flags().BoolVarP(&parseWatch, "watch", "w", false, "re-run extraction automatically when watched files change")
}

func runParse(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputDir := cfg.Output.DataDir
	if parseOutput != "" {
		outputDir = parseOutput
	}

	languages, err := resolveLanguages(parseLanguages, cfg.Scan.Languages)
	if err != nil {
		return err
	}

	if err := parseOnce(root, outputDir, cfg, languages); err != nil {
		return err
	}
	if !parseWatch {
		return nil
	}

	extensions := watchExtensions(languages)
	w, err := watch.New(root, extensions, 0)
	if err != nil {
		return fmt.Errorf("failed to set up watcher: %w", err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for changes. Press Ctrl+C to stop.")
	w.Start(ctx, func(changed []string) {
		if !parseQuiet {
			fmt.Printf("Detected %d changed file(s), re-parsing...\n", len(changed))
		}
		if err := parseOnce(root, outputDir, cfg, languages); err != nil {
			fmt.Fprintf(os.Stderr, "re-parse failed: %v\n", err)
		}
	})

	<-ctx.Done()
	return nil
}

// parseOnce runs discovery, extraction, and dataset writing exactly once. It
// is the unit of work parse --watch re-runs on every debounced file change.
func parseOnce(root, outputDir string, cfg *config.Config, languages []lang.Language) error {
	disc, err := discovery.New(root, cfg.Scan.Ignore, languages)
	if err != nil {
		return fmt.Errorf("failed to set up discovery: %w", err)
	}

	files, err := disc.Walk()
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}

	reg, err := extract.Build()
	if err != nil {
		return fmt.Errorf("failed to build extractor registry: %w", err)
	}
	defer reg.Close()

	progress := NewCLIProgressReporter(parseQuiet)
	results := driver.Run(files, reg, driver.Options{Workers: cfg.Parse.Workers, Progress: progress})

	ds := writer.Dataset{}
	for _, r := range results {
		if r.Error != nil {
			ds.Errors = append(ds.Errors, *r.Error)
			continue
		}
		ds.Files = append(ds.Files, r.Metadata)
		ds.Symbols = append(ds.Symbols, r.Data.Symbols...)
		ds.Imports = append(ds.Imports, r.Data.Imports...)
		ds.Comments = append(ds.Comments, r.Data.Comments...)
	}

	w, err := writer.New(outputDir)
	if err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}
	if err := w.Write(ds); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	if parseQuiet {
		fmt.Printf("Parsed %d files (%d errors) into %s\n", len(ds.Files), len(ds.Errors), outputDir)
	}
	return nil
}

// watchExtensions returns the file extensions parse --watch should monitor:
// every extension for the given languages, or every supported extension when
// no language filter is set.
func watchExtensions(languages []lang.Language) []string {
	if len(languages) == 0 {
		languages = lang.All()
	}
	var exts []string
	for _, l := range languages {
		exts = append(exts, l.Extensions()...)
	}
	return exts
}

// resolveLanguages merges CLI --language flags with the config's language
// filter (flags win) and validates every tag against the supported set.
func resolveLanguages(flagLangs, configLangs []string) ([]lang.Language, error) {
	raw := flagLangs
	if len(raw) == 0 {
		raw = configLangs
	}
	if len(raw) == 0 {
		return nil, nil
	}

	known := make(map[string]lang.Language, len(lang.All()))
	for _, l := range lang.All() {
		known[string(l)] = l
	}

	languages := make([]lang.Language, 0, len(raw))
	for _, name := range raw {
		l, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown language %q", name)
		}
		languages = append(languages, l)
	}
	return languages, nil
}
