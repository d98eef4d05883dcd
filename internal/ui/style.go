package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// platformColors maps the color names platforms advertise to terminal
// colors.
var platformColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#E11D48"),
	"purple": lipgloss.Color("#9333EA"),
	"blue":   lipgloss.Color("#2563EB"),
	"yellow": lipgloss.Color("#CA8A04"),
	"pink":   lipgloss.Color("#DB2777"),
	"teal":   lipgloss.Color("#0D9488"),
	"green":  lipgloss.Color("#16A34A"),
	"indigo": lipgloss.Color("#4F46E5"),
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// PlatformBadge renders a platform name on its color.
func PlatformBadge(name, color string) string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if c, ok := platformColors[color]; ok {
		style = style.Background(c).Foreground(lipgloss.Color("#FFFFFF"))
	}
	return style.Render(name)
}

// Header renders a section title.
func Header(s string) string { return headerStyle.Render(s) }

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInteractive reports whether both stdin and stderr are terminals, which
// pickers and spinners need.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
