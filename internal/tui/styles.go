package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	accentColor  = lipgloss.Color("205") // Pink
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	errorColor   = lipgloss.Color("196") // Red

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan

	timerRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	timerValueStyle   = lipgloss.NewStyle().Foreground(accentColor)
	errorStyle        = lipgloss.NewStyle().Foreground(errorColor)
	statusStyle       = lipgloss.NewStyle().Foreground(successColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)
)
