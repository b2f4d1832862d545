package cli

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#6C6C6C")
	successColor   = lipgloss.Color("#73F59F")
	warningColor   = lipgloss.Color("#F5C073")
	errorColor     = lipgloss.Color("#FF6B6B")

	// TitleStyle for command headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// DayStyle for weekday headings in the schedule
	DayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1)

	// SubtleStyle for hints and secondary details
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SuccessStyle for confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle for partial outcomes
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle for errors
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// BoxStyle frames summaries
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)
)

// PriorityStyle colours a priority label.
func PriorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "HIGH":
		return lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	case "MEDIUM":
		return lipgloss.NewStyle().Foreground(warningColor)
	default:
		return SubtleStyle
	}
}
