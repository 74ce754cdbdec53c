// Command notifygen generates change-notifying properties and commands for
// Go types marked with //notify:observable and //notify:command.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "notifygen",
		Short: "Generate change-notifying properties and commands for marked Go types",
		Long: `notifygen scans Go packages for //notify:observable fields and //notify:command
methods and writes autogen_*.go files next to them. Directory arguments accept
Go-style patterns like ./... for recursive scanning.

Settings are read from notifygen.toml (searched upwards from the working
directory), then NOTIFYGEN_* environment variables, then flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output and detailed error reporting")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only show errors")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "number of packages processed concurrently (default GOMAXPROCS)")
	rootCmd.PersistentFlags().String("runtime", "", "how generated code reaches the runtime types (shim|import)")
	rootCmd.PersistentFlags().StringSlice("alias", nil, "extra marker namespace, e.g. --alias mvvm for //mvvm:observable")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newMarkersCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
