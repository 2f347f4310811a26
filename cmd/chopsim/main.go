// Package main provides chopsim, a command line host for the generator
// CHOP.
//
// Usage:
//
//	chopsim [flags] <command> [args]
//
// Commands:
//
//	run     - cook frames and print the output
//	params  - list the operator's parameters
//	info    - show plugin metadata
//	preset  - save and inspect parameter presets
//
// Configuration:
//
//	A YAML file passed with -c sets frames, fps, parameters, pulses and an
//	optional upstream input. Flags override the file.
package main

import (
	"fmt"
	"os"

	"github.com/justyntemme/chopgo/cmd/chopsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
