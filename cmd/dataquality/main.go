// Package main is the entry point of the dataquality CLI.
package main

import (
	"os"

	"github.com/David-Botos/data-quality/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
