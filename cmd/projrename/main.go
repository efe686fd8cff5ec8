// Package main is the entry point for the projrename CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/projrename/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
