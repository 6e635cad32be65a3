package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm shows a warning line and asks a yes/no question on out, reading the
// answer from in. Anything but "y" or "yes" declines.
func Confirm(in io.Reader, out io.Writer, title string, details ...string) bool {
	warn := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	muted := lipgloss.NewStyle().Foreground(MutedColor)

	fmt.Fprintln(out, warn.Render(fmt.Sprintf("%s  %s", WarningMarker, title)))
	for _, d := range details {
		fmt.Fprintln(out, muted.Render("   • "+d))
	}
	fmt.Fprint(out, warn.Render("Proceed? [y/N]: "))

	answer, err := bufio.NewReader(in).ReadString('\n')
	fmt.Fprintln(out)
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		fmt.Fprintln(out, muted.Render("  Operation cancelled."))
		return false
	}
}
