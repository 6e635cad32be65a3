// Macropad-cfg is the layout designer and configuration utility for
// macropad.
//
// It creates, inspects, validates and edits layout files, imports layouts
// saved by the older JSON designer, manages user preferences and finds and
// drives runtimes on the local network.
//
// Usage:
//
//	macropad-cfg [command] [flags]
//
// See 'macropad-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/logging"
	"github.com/muurk/macropad/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "macropad-cfg",
	Short: "Macropad layout designer and configuration utility",
	Long: `A utility for building macropad layouts and managing runtimes.

Layouts are YAML files holding pages of buttons. Each button is bound to
an action: SendKey or CommandKey (a key chord such as CTRL+C), SendValue
(text followed by an optional chord, e.g. "1234,ENTER"), Navigate (a page
name) or RunCommand (NextPage, PreviousPage, EXIT or a program to launch).

Commands that edit a layout work on ./keyboard.yaml unless --file is set.`,
	Version:       version.Version,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// Global flags
var (
	layoutFile string
	logLevel   string
	assumeYes  bool
)

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&layoutFile, "file", "f", layout.DefaultFileName, "Layout file to work on")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Line("macropad-cfg"))
	},
}
