package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┌─┐┌─┐┌─┐┬─┐┌─┐
   │ ├┤ └─┐└─┐├┤ ├┬┘├─┤
   ┴ └─┘└─┘└─┘└─┘┴└─┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "tessera",
		Short: "Block-compiled UI rendering for Go",
		Long: `Tessera renders declarative UI with compiled blocks.

A template compiles once into a static skeleton plus an edit list of
its dynamic slots. Instances mount by cloning the skeleton and update
by dirty-checking only the dynamic slots, so patch cost tracks the
number of slots, not the size of the tree.

The CLI serves the demo application, publishes static snapshots, and
benchmarks the compile/mount/patch pipeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		snapshotCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the tessera ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
