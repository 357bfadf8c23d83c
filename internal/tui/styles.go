package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	addressStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	headingStyle  = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	subtleStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	flashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

func statusStyle(completed bool) lipgloss.Style {
	if completed {
		return completedStyle
	}
	return pendingStyle
}
