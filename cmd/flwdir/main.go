// Package main is the flwdir command line tool.
//
// Usage:
//
//	flwdir [flags] <command> [args]
//
// Commands:
//
//	fill     - fill the depressions of an elevation grid
//	d8       - assign D8 flow directions
//	streams  - extract Strahler ordered stream segments
//	run      - run the full pipeline from a job file
package main

import (
	"fmt"
	"os"

	"github.com/maseology/flwdir/cmd/flwdir/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
