// Command datapreview prints a summary of a CSV or JSON file: file
// information, per-column statistics and a preview of the first rows.
package main

import (
	"os"

	"github.com/idelchi/datapreview/internal/cli"
)

// version is set via ldflags at build time.
//
//nolint:gochecknoglobals // Set via ldflags
var version = "unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		os.Exit(1)
	}
}
