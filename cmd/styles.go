package cmd

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles for command output.
var (
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleSafe    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleDanger  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeading = lipgloss.NewStyle().Bold(true).Underline(true)
)
