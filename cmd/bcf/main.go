// Package main is the entry point for the bcf CLI tool.
package main

import (
	"os"

	"github.com/openbcf/bcf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
