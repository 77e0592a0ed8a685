// Command codesweep parses a source tree into a queryable columnar dataset
// and answers structural questions about it.
package main

import "github.com/nullpilot/codesweep/internal/cli"

func main() {
	cli.Execute()
}
