package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - card table greens and parchment
var (
	primaryColor   = lipgloss.Color("#E8C4A0") // warm beige
	secondaryColor = lipgloss.Color("#7EBB81") // felt green
	successColor   = lipgloss.Color("#B5D99C") // bright sage
	dangerColor    = lipgloss.Color("#D9847E") // soft red
	mutedColor     = lipgloss.Color("#B8A890") // light taupe
	fgColor        = lipgloss.Color("#F5F3ED") // warm white
	highlightColor = lipgloss.Color("#F0DEB4") // cream highlight
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Margin(1, 0)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1).
			Width(30)

	highlightStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	ownerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	listItemStyle = lipgloss.NewStyle().
			Foreground(fgColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true).
				Margin(1, 0)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(highlightColor).
				Foreground(highlightColor).
				Padding(0, 1)
)
