package cmd

import "github.com/charmbracelet/lipgloss"

// Shared palette for line output.
var (
	colorPrimary = lipgloss.Color("#8B5CF6") // Violet
	colorGood    = lipgloss.Color("#22C55E") // Green
	colorBad     = lipgloss.Color("#F43F5E") // Rose
	colorAccent  = lipgloss.Color("#14B8A6") // Teal
	colorDim     = lipgloss.Color("#94A3B8") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	promptStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	correctStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGood)

	wrongStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBad)
)
