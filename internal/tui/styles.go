package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	borderColor   = lipgloss.Color("240")
	titleFg       = lipgloss.Color("#ffffff")
	statusFg      = lipgloss.Color("#cccccc")
	readingFg     = lipgloss.Color("#ffd43b")
	errorFg       = lipgloss.Color("#ff6b6b")
	successFg     = lipgloss.Color("#51cf66")
	modalBorderFg = lipgloss.Color("62")
	modalBg       = lipgloss.Color("235")
	modalFg       = lipgloss.Color("252")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(titleFg).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(statusFg).
			AlignHorizontal(lipgloss.Right)

	readingStyle = lipgloss.NewStyle().
			Foreground(readingFg)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorFg).
			Bold(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(modalBorderFg).
			Background(modalBg).
			Foreground(modalFg).
			Padding(1, 2)
)

// far to near
var (
	dropGlyphs = [shades]string{".", ":", "|"}
	dropStyles = [shades]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#1c3d8f")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#2f5fd6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#74a9ff")),
	}
)

// boolToIcon converts a boolean to a visual indicator
func boolToIcon(b bool) string {
	if b {
		return lipgloss.NewStyle().Foreground(successFg).Render("●")
	}
	return lipgloss.NewStyle().Foreground(errorFg).Render("○")
}

func rainStatus(enabled bool) string {
	if enabled {
		return lipgloss.NewStyle().Foreground(successFg).Render("☂ Rain")
	}
	return lipgloss.NewStyle().Foreground(statusFg).Render("☀ Dry")
}

// connectedStatus returns a styled status indicator for connection state
func connectedStatus(connected bool) string {
	if connected {
		return lipgloss.NewStyle().Foreground(successFg).Render("🔗 Relay")
	}
	return lipgloss.NewStyle().Foreground(errorFg).Render("🔗 No relay")
}
