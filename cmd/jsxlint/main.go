// Package main provides the jsxlint command.
package main

import (
	"os"

	"github.com/leapstack-labs/jsxlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
