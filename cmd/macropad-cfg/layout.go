package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/config"
	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/ui"
)

// errCancelled is returned when the user declines a confirmation.
var errCancelled = errors.New("cancelled")

func init() {
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
}

// openLayout loads --file for editing. Unlike the runtime, a missing file
// is an error here.
func openLayout() (*layout.Layout, error) {
	l, err := layout.Load(layoutFile)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("no layout at %s (create one with 'macropad-cfg example' or 'macropad-cfg new')", layoutFile)
	}
	return l, nil
}

// saveLayout writes l to path and records it as recently used.
func saveLayout(l *layout.Layout, path string) error {
	if err := layout.Save(l, path); err != nil {
		return err
	}
	rememberLayout(path)
	return nil
}

func rememberLayout(path string) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	registry.AddRecent(path)
	_ = registry.Save()
}

// confirm asks before a destructive change unless --yes is set.
func confirm(cmd *cobra.Command, title string, details ...string) error {
	if assumeYes {
		return nil
	}
	if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), title, details...) {
		return errCancelled
	}
	return nil
}

// confirmOverwrite asks before replacing an existing file.
func confirmOverwrite(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return confirm(cmd, "File already exists", path+" will be overwritten")
}

// Example command
var exampleCmd = &cobra.Command{
	Use:   "example [path]",
	Short: "Write the two-page sample layout",
	Long: `Write a sample layout with a Main page (keys, a chord, typed text and
a page switch) and a Commands page (a launcher, navigation and EXIT).`,
	Example: `  # Write ./keyboard.yaml
  macropad-cfg example

  # Write somewhere else, replacing any existing file
  macropad-cfg example ~/pads/sample.yaml --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExample,
}

func runExample(cmd *cobra.Command, args []string) error {
	return writeNew(cmd, args, layout.Example())
}

// New command
var newName string

var newCmd = &cobra.Command{
	Use:   "new [path]",
	Short: "Create an empty layout with one page",
	Example: `  # Create ./keyboard.yaml named "Desk"
  macropad-cfg new --name Desk`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "New Keyboard", "Layout name")
}

func runNew(cmd *cobra.Command, args []string) error {
	l := layout.New(newName)
	l.AddPage()
	return writeNew(cmd, args, l)
}

func writeNew(cmd *cobra.Command, args []string, l *layout.Layout) error {
	path := layoutFile
	if len(args) == 1 {
		path = args[0]
	}
	if err := confirmOverwrite(cmd, path); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if err := saveLayout(l, path); err != nil {
		printer.PrintError("Failed to write layout", err)
		return err
	}
	printer.PrintSuccess("Layout written",
		ui.P("Path", path),
		ui.P("Name", l.Name),
		ui.P("Pages", strconv.Itoa(len(l.Pages))),
		ui.P("Buttons", strconv.Itoa(l.ButtonCount())),
	)
	return nil
}

// Show command
var showFormat string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List the pages and buttons of a layout",
	Long: `List every page and button of a layout together with how each
button's action will be interpreted at runtime.`,
	Example: `  # Show ./keyboard.yaml
  macropad-cfg show

  # Show another file as JSON for scripting
  macropad-cfg show -f ~/pads/desk.yaml --format json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "detailed", "Output format (detailed, yaml, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	l, err := openLayout()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch showFormat {
	case "yaml":
		data, err := layout.Encode(l)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "detailed":
		ui.NewPrinter(out).PrintLayout(l)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want detailed, yaml or json)", showFormat)
	}
}

// Validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a layout for problems",
	Long: `Check a layout for problems a designer would want to fix: duplicate
page names, unknown action kinds, chords with unknown keys, empty values,
Navigate targets that match no page and undersized or misplaced buttons.

Exits non-zero when any error is found; warnings alone pass.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	l, err := openLayout()
	if err != nil {
		return err
	}

	issues := layout.Validate(l)
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Validate Layout", "macropad-cfg validate",
		ui.P("File", layoutFile),
		ui.P("Layout", l.Name),
	)
	printer.PrintIssues(issues)

	if layout.HasErrors(issues) {
		return fmt.Errorf("%s has errors", layoutFile)
	}
	return nil
}

// Import command
var importCmd = &cobra.Command{
	Use:   "import <legacy.json>",
	Short: "Convert a layout saved by the JSON designer",
	Long: `Convert a layout saved by the older JSON designer (PascalCase keys, no
grid settings) into the YAML format, writing it to --file.`,
	Example: `  # Convert keyboard.json into ./keyboard.yaml
  macropad-cfg import keyboard.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	l, err := layout.ImportLegacy(args[0])
	if err != nil {
		return err
	}
	if err := confirmOverwrite(cmd, layoutFile); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if err := saveLayout(l, layoutFile); err != nil {
		printer.PrintError("Failed to write layout", err)
		return err
	}
	printer.PrintSuccess("Layout imported",
		ui.P("From", args[0]),
		ui.P("To", layoutFile),
		ui.P("Pages", strconv.Itoa(len(l.Pages))),
	)
	if issues := layout.Validate(l); len(issues) > 0 {
		printer.PrintIssues(issues)
	}
	return nil
}

// describeButton is the one-line summary used in edit confirmations.
func describeButton(b layout.Button) string {
	return fmt.Sprintf("%q %s", b.Text, action.Describe(action.Parse(b)))
}

// lookupPage resolves a page number or name against l.
func lookupPage(l *layout.Layout, ref string) (int, error) {
	pi := l.FindPage(ref)
	if pi < 0 {
		return -1, fmt.Errorf("no page %q (pages: %s)", ref, pageNames(l))
	}
	return pi, nil
}

func lookupButton(l *layout.Layout, pageRef, buttonRef string) (int, int, error) {
	pi, err := lookupPage(l, pageRef)
	if err != nil {
		return -1, -1, err
	}
	bi := l.Pages[pi].FindButton(buttonRef)
	if bi < 0 {
		return -1, -1, fmt.Errorf("no button %q on page %q", buttonRef, l.Pages[pi].Name)
	}
	return pi, bi, nil
}

func pageNames(l *layout.Layout) string {
	names := make([]string, len(l.Pages))
	for i, p := range l.Pages {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
