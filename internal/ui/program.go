package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muurk/macropad/internal/layout"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way CLI commands output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(RenderHeader(title, command, params, p.width))
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println((&Result{Type: ResultSuccess, Title: title, Details: details, Width: p.width}).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Param) {
	p.Println((&Result{Type: ResultWarning, Title: title, Details: details, Width: p.width}).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting ...string) {
	p.Println((&Result{Type: ResultFailure, Title: title, Error: err, Troubleshooting: troubleshooting, Width: p.width}).Render())
}

// PrintLayout prints the page and button listing of l
func (p *Printer) PrintLayout(l *layout.Layout) {
	p.Print(RenderLayout(l))
}

// PrintIssues prints validation issues
func (p *Printer) PrintIssues(issues []layout.Issue) {
	p.Print(RenderIssues(issues))
}
