// Package main is the entry point for the tabir CLI.
package main

import (
	"os"

	"github.com/tabir/tabir/cmd/tabir/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
