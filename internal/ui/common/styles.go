// Package common provides shared styles and utilities for the UI.
package common

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	BotIcon    = "🤖"
	PlayerIcon = "🧑"
	TurnIcon   = "👉"
	WinnerIcon = "🏆"
)

// Lipgloss Styles
var (
	DocStyle      = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle   = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	HintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	CardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	SelectedStyle = CardStyle.BorderForeground(lipgloss.Color("228")).Bold(true)
	TurnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
)
