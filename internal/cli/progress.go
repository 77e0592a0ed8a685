package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders driver.Run's progress as a progress bar,
// suppressed entirely when quiet is set.
type CLIProgressReporter struct {
	quiet     bool
	bar       *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet, startTime: time.Now()}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(total int) {
	if c.quiet {
		return
	}
	log.Printf("Discovered %d files\n", total)
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Parsing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(path string) {
	if c.quiet || c.bar == nil {
		return
	}
	c.bar.Add(1)
}

func (c *CLIProgressReporter) OnComplete(processed, errored int) {
	if c.quiet {
		return
	}
	fmt.Println()
	fmt.Printf("✓ Parsed %s files (%d errors) in %.1fs\n",
		formatNumber(processed), errored, time.Since(c.startTime).Seconds())
}

// formatNumber renders n with thousands separators, e.g. 12345 -> "12,345".
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
