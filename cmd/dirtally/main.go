// Command dirtally prints a per-directory file count report for a
// directory tree.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/dirtally/internal/cli"
	"github.com/idelchi/dirtally/internal/dirtally"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if errors.Is(err, dirtally.ErrRootNotFound) {
			cli.Usage(os.Stderr)
		}

		os.Exit(1)
	}
}
