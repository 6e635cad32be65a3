// Package ui renders terminal output for the macropad CLIs.
//
// Components follow a "print once" pattern: a Header names the command and
// its inputs, a Result box reports the outcome, and RenderLayout and
// RenderIssues list layout contents and validation findings. Styling uses
// Lipgloss; widths adapt to the terminal via golang.org/x/term.
//
// Logging stays silent unless MACROPAD_LOG_LEVEL is set, so this output is
// what the user sees by default.
package ui
