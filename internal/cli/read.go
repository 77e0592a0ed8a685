package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nullpilot/codesweep/internal/query"
)

var readLines string

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Print a file's contents, line-numbered",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().StringVar(&readLines, "lines", "", "line range to print, e.g. 10:40")
}

func runRead(cmd *cobra.Command, args []string) error {
	start, end, err := parseLineRange(readLines)
	if err != nil {
		return err
	}

	out, err := query.RunRead(".", args[0], start, end)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// parseLineRange parses a "START:END" range where either side may be
// omitted (":40" means "from the start", "10:" means "to the end").
func parseLineRange(spec string) (start, end int, err error) {
	if spec == "" {
		return 0, 0, nil
	}
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --lines value %q, expected START:END", spec)
	}
	if parts[0] != "" {
		start, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start line %q: %w", parts[0], err)
		}
	}
	if parts[1] != "" {
		end, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end line %q: %w", parts[1], err)
		}
	}
	return start, end, nil
}
