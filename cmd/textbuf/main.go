// Package main is the entry point for the textbuf inspection CLI.
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/textbuf/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "textbuf: %v\n", err)
		return 1
	}
	return 0
}
