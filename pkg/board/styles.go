package board

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("212")
	secondaryColor = lipgloss.Color("141")
	mutedColor     = lipgloss.Color("241")
	successColor   = lipgloss.Color("42")
	errorColor     = lipgloss.Color("196")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	filterStyle   = lipgloss.NewStyle().Foreground(primaryColor)
	subtleStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	assigneeStyle = lipgloss.NewStyle().Foreground(secondaryColor)
	deleteStyle   = lipgloss.NewStyle().Foreground(errorColor)
	doneTextStyle = lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	statusOKStyle  = lipgloss.NewStyle().Foreground(successColor)
	statusErrStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
)
