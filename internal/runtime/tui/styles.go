package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/macropad/internal/version"
)

// Application branding constants
const (
	AppName   = "MACROPAD"
	GitHubURL = "github.com/muurk/macropad"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	TileWidth        = 16 // Button tile width including border
	TileHeight       = 3  // Button tile height excluding border
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// ActiveTabStyle marks the current page in the page strip
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	ErrorStatusStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// tileStyle renders a button in its own colors. The selected tile gets a
// thick highlighted border.
func tileStyle(bg, fg string, bold, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Width(TileWidth-2).
		Height(TileHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(bold).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor)
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if selected {
		s = s.Border(lipgloss.ThickBorder()).BorderForeground(HighlightColor)
	}
	return s
}

// BuildHeaderContent creates header content with app name and layout name
func BuildHeaderContent(layoutName string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(layoutName)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen with the header, a help footer
// and an outer border sized to the terminal.
func RenderApplicationContainer(content, footerText, layoutName string, terminalWidth, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(layoutName)),
		lipgloss.NewStyle().Width(terminalWidth-4).Render(content),
		footerStyle.Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footerText)),
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2)
	if terminalHeight > 2 {
		border = border.Height(terminalHeight - 2).AlignVertical(lipgloss.Top)
	}
	return border.Render(inner)
}
