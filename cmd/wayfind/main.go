package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	werrors "github.com/wayfind-dev/wayfind/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬ ┬┌─┐┬ ┬┌─┐┬┌┐┌┌┬┐
  │││├─┤└┬┘├┤ ││││ ││
  └┴┘┴ ┴ ┴ └  ┴┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "File-system URL routing for Go",
		Long: `Wayfind compiles a pages directory into a routing table.

Point it at a tree that follows the App Router conventions
([param], [...catchAll], (groups), @slots, intercepting markers,
_layout / _error / loading / not-found files) and it will:

  • List the compiled route table with priorities
  • Probe matches and hierarchical resources
  • Serve a live route inspector over HTTP and WebSocket
  • Publish the route manifest to S3 for edge consumers`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		routesCmd(),
		inspectCmd(),
		publishCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		werrors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the Wayfind ASCII art banner.
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

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
