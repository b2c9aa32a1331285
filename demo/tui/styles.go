package tui

import "github.com/charmbracelet/lipgloss"

// Compass palette
const (
	colorAccent  = "#00A8A8"
	colorSuccess = "#2EC27E"
	colorError   = "#E01E5A"
	colorMuted   = "#6B6B6B"
	colorText    = "#F2FBFA"
	colorFrame   = "#0E7C7B"
)

// Styles for the directory browser
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)).
		MarginTop(1).
		MarginBottom(1)

	TabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorText)).
		Background(lipgloss.Color(colorAccent)).
		Padding(0, 1)

	EntryStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSuccess))

	DetailStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	PicksBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorFrame)).
		Padding(1, 2)
)
