// Macropad is the runtime for macro keyboard layouts.
//
// It loads a layout, shows its pages in the terminal and turns button
// activations into injected keystrokes, typed text, launched programs or
// page changes. The same runtime can be driven over WebSocket by a remote
// and advertised on the local network with mDNS.
//
// Usage:
//
//	macropad run [flags]
//	macropad serve [flags]
//	macropad exec <page> <button> [flags]
//
// Layouts are created and edited with the separate 'macropad-cfg' utility.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/macropad/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "macropad",
	Short: "Macro keyboard runtime",
	Long: `Runs a macro keyboard layout.

A layout is a set of pages, each holding buttons bound to an action:
a key chord, typed text, a program to launch or a page to switch to.

Without --layout the runtime looks for keyboard.yaml next to the working
directory and the executable, and falls back to a built-in default layout.

Note: To create and edit layouts, use the separate 'macropad-cfg' utility.`,
	Version:       version.Version,
	SilenceErrors: true,
}

// Flags shared by every runtime command
var (
	layoutPath string
	backend    string
	logLevel   string
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "", "Layout file (default: preferences, then auto-detect)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Injection backend: xdotool or dryrun (default: preferences)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(versionCmd)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Line("macropad"))
	},
}
