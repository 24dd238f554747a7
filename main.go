// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for srvinv.
//
// Usage:
//
//	go run . [flags]
//	./srvinv [flags]
//
// Without a subcommand on a terminal srvinv opens the interactive browser.
// See --help for options.
package main

import (
	"os"

	"github.com/toeirei/srvinv/ui/cli"
)

func main() {
	// Execute already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
