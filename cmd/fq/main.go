package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fq",
	Short: "A fast parallel file and folder search tool",
	Long: `fq walks a directory tree in parallel, tests each entry against a
set of filters, and streams matching paths back to you as they're found.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tuiCmd)
}
