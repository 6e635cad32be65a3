package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/ui"
)

func init() {
	pageCmd.AddCommand(pageAddCmd, pageDeleteCmd, pageRenameCmd)
	buttonCmd.AddCommand(buttonAddCmd, buttonDeleteCmd, buttonSetCmd, buttonMoveCmd, buttonResizeCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(buttonCmd)
}

// editLayout loads --file, applies fn and saves the result. fn returns the
// success title and details.
func editLayout(cmd *cobra.Command, fn func(l *layout.Layout) (string, []ui.Param, error)) error {
	l, err := openLayout()
	if err != nil {
		return err
	}
	title, details, err := fn(l)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if err := saveLayout(l, layoutFile); err != nil {
		printer.PrintError("Failed to save layout", err)
		return err
	}
	printer.PrintSuccess(title, append(details, ui.P("File", layoutFile))...)
	return nil
}

// Page commands
var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Add, delete or rename pages",
	Long: `Add, delete or rename pages. Pages are referenced by their 1-based
number or by name (case-insensitive, first match).`,
}

var pageName string

var pageAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a page",
	Example: `  # Append "Page N"
  macropad-cfg page add

  # Append a named page
  macropad-cfg page add --name Media`,
	Args: cobra.NoArgs,
	RunE: runPageAdd,
}

func init() {
	pageAddCmd.Flags().StringVar(&pageName, "name", "", "Page name (default: the next free \"Page N\")")
}

func runPageAdd(cmd *cobra.Command, args []string) error {
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi := l.AddPage()
		if pageName != "" {
			l.Pages[pi].Name = pageName
		}
		return "Page added", []ui.Param{
			ui.P("Page", fmt.Sprintf("%d. %s", pi+1, l.Pages[pi].Name)),
		}, nil
	})
}

var pageDeleteCmd = &cobra.Command{
	Use:     "delete <page>",
	Aliases: []string{"rm"},
	Short:   "Delete a page and its buttons",
	Args:    cobra.ExactArgs(1),
	RunE:    runPageDelete,
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi, err := lookupPage(l, args[0])
		if err != nil {
			return "", nil, err
		}
		p := l.Pages[pi]
		if err := confirm(cmd, fmt.Sprintf("Delete page %q?", p.Name),
			fmt.Sprintf("%d button(s) will be removed", len(p.Buttons)),
		); err != nil {
			return "", nil, err
		}
		if err := l.DeletePage(pi); err != nil {
			return "", nil, err
		}
		return "Page deleted", []ui.Param{ui.P("Page", p.Name)}, nil
	})
}

var pageRenameCmd = &cobra.Command{
	Use:   "rename <page> <name>",
	Short: "Rename a page",
	Long: `Rename a page. Navigate buttons that targeted the old name are not
updated; run 'macropad-cfg validate' afterwards to find them.`,
	Args: cobra.ExactArgs(2),
	RunE: runPageRename,
}

func runPageRename(cmd *cobra.Command, args []string) error {
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi, err := lookupPage(l, args[0])
		if err != nil {
			return "", nil, err
		}
		old := l.Pages[pi].Name
		l.Pages[pi].Name = args[1]
		return "Page renamed", []ui.Param{ui.P("From", old), ui.P("To", args[1])}, nil
	})
}

// Button commands
var buttonCmd = &cobra.Command{
	Use:   "button",
	Short: "Add, delete, edit, move or resize buttons",
	Long: `Edit the buttons of a page. Buttons are referenced by their 1-based
number on the page or by their text (case-insensitive, first match).`,
}

// Button field flags, shared by add and set
var (
	buttonText      string
	buttonAction    string
	buttonValue     string
	buttonColor     string
	buttonTextColor string
	buttonBold      bool
)

func addButtonFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&buttonText, "text", "", "Button label")
	cmd.Flags().StringVar(&buttonAction, "action", "", "Action kind (SendKey, CommandKey, SendValue, Navigate, RunCommand)")
	cmd.Flags().StringVar(&buttonValue, "value", "", "Action value, e.g. CTRL+C, \"1234,ENTER\", Main, NextPage")
	cmd.Flags().StringVar(&buttonColor, "color", "", "Background color (#RRGGBB)")
	cmd.Flags().StringVar(&buttonTextColor, "text-color", "", "Text color (#RRGGBB)")
	cmd.Flags().BoolVar(&buttonBold, "bold", false, "Bold label")
}

// applyButtonFields copies the flags the user set onto b.
func applyButtonFields(cmd *cobra.Command, b *layout.Button) error {
	flags := cmd.Flags()
	if flags.Changed("action") {
		kind := layout.ActionKind(buttonAction)
		if !kind.Known() {
			return fmt.Errorf("unknown action %q (want one of %v)", buttonAction, layout.ActionKinds)
		}
		b.Action = kind
	}
	if flags.Changed("text") {
		b.Text = buttonText
	}
	if flags.Changed("value") {
		b.Value = buttonValue
	}
	if flags.Changed("color") {
		b.Color = buttonColor
	}
	if flags.Changed("text-color") {
		b.TextColor = buttonTextColor
	}
	if flags.Changed("bold") {
		b.IsBold = buttonBold
	}
	return nil
}

var buttonAddCmd = &cobra.Command{
	Use:   "add <page>",
	Short: "Append a button to a page",
	Example: `  # Add a copy chord to the first page
  macropad-cfg button add 1 --text Copy --action CommandKey --value CTRL+C

  # Add a page switch
  macropad-cfg button add Main --text Media --action Navigate --value Media`,
	Args: cobra.ExactArgs(1),
	RunE: runButtonAdd,
}

func init() {
	addButtonFieldFlags(buttonAddCmd)
}

func runButtonAdd(cmd *cobra.Command, args []string) error {
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi, err := lookupPage(l, args[0])
		if err != nil {
			return "", nil, err
		}
		bi, err := l.AddButton(pi)
		if err != nil {
			return "", nil, err
		}
		b := &l.Pages[pi].Buttons[bi]
		if err := applyButtonFields(cmd, b); err != nil {
			return "", nil, err
		}
		return "Button added", []ui.Param{
			ui.P("Page", l.Pages[pi].Name),
			ui.P("Button", fmt.Sprintf("%d. %s", bi+1, describeButton(*b))),
		}, nil
	})
}

var buttonDeleteCmd = &cobra.Command{
	Use:     "delete <page> <button>",
	Aliases: []string{"rm"},
	Short:   "Delete a button",
	Args:    cobra.ExactArgs(2),
	RunE:    runButtonDelete,
}

func runButtonDelete(cmd *cobra.Command, args []string) error {
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi, bi, err := lookupButton(l, args[0], args[1])
		if err != nil {
			return "", nil, err
		}
		b := l.Pages[pi].Buttons[bi]
		if err := confirm(cmd, "Delete button?", describeButton(b)); err != nil {
			return "", nil, err
		}
		if err := l.DeleteButton(pi, bi); err != nil {
			return "", nil, err
		}
		return "Button deleted", []ui.Param{ui.P("Page", l.Pages[pi].Name), ui.P("Button", b.Text)}, nil
	})
}

var buttonSetCmd = &cobra.Command{
	Use:   "set <page> <button>",
	Short: "Change a button's label, action or colors",
	Example: `  # Rebind the third button of page 1
  macropad-cfg button set 1 3 --action SendValue --value "hello,ENTER"`,
	Args: cobra.ExactArgs(2),
	RunE: runButtonSet,
}

func init() {
	addButtonFieldFlags(buttonSetCmd)
}

func runButtonSet(cmd *cobra.Command, args []string) error {
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi, bi, err := lookupButton(l, args[0], args[1])
		if err != nil {
			return "", nil, err
		}
		b := &l.Pages[pi].Buttons[bi]
		if err := applyButtonFields(cmd, b); err != nil {
			return "", nil, err
		}
		return "Button updated", []ui.Param{ui.P("Button", describeButton(*b))}, nil
	})
}

var buttonMoveCmd = &cobra.Command{
	Use:   "move <page> <button> <dx> <dy>",
	Short: "Move a button by an offset",
	Long: `Move a button by dx, dy units. Each axis is applied only if the result
stays non-negative.`,
	Example: `  # Nudge the first button 10 right and 5 up
  macropad-cfg button move 1 1 10 -- -5`,
	Args: cobra.ExactArgs(4),
	RunE: runButtonMove,
}

func runButtonMove(cmd *cobra.Command, args []string) error {
	dx, dy, err := parseDelta(args[2], args[3])
	if err != nil {
		return err
	}
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi, bi, err := lookupButton(l, args[0], args[1])
		if err != nil {
			return "", nil, err
		}
		b := &l.Pages[pi].Buttons[bi]
		b.Move(dx, dy)
		return "Button moved", []ui.Param{
			ui.P("Button", b.Text),
			ui.P("Position", fmt.Sprintf("(%g, %g)", b.X, b.Y)),
		}, nil
	})
}

var keepAspect bool

var buttonResizeCmd = &cobra.Command{
	Use:   "resize <page> <button> <dw> <dh>",
	Short: "Grow or shrink a button",
	Long: `Grow or shrink a button by dw, dh units, never below the minimum
button size. With --keep-aspect the larger change drives both sides.`,
	Example: `  # Make the Copy button 20 units wider, keeping its proportions
  macropad-cfg button resize Main Copy 20 0 --keep-aspect`,
	Args: cobra.ExactArgs(4),
	RunE: runButtonResize,
}

func init() {
	buttonResizeCmd.Flags().BoolVar(&keepAspect, "keep-aspect", false, "Preserve the width/height ratio")
}

func runButtonResize(cmd *cobra.Command, args []string) error {
	dw, dh, err := parseDelta(args[2], args[3])
	if err != nil {
		return err
	}
	return editLayout(cmd, func(l *layout.Layout) (string, []ui.Param, error) {
		pi, bi, err := lookupButton(l, args[0], args[1])
		if err != nil {
			return "", nil, err
		}
		b := &l.Pages[pi].Buttons[bi]
		b.Resize(dw, dh, keepAspect)
		return "Button resized", []ui.Param{
			ui.P("Button", b.Text),
			ui.P("Size", fmt.Sprintf("%gx%g", b.Width, b.Height)),
		}, nil
	})
}

func parseDelta(a, b string) (float64, float64, error) {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", a, err)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", b, err)
	}
	return x, y, nil
}
