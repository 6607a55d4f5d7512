// Package main provides the cubex command line tool for inspecting and
// extracting labeled cubes from CUBE container files.
package main

import (
	"fmt"
	"os"

	"github.com/scigolib/cube/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
