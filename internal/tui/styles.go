// ABOUTME: Shared lipgloss styles for the remix TUI.
// ABOUTME: Title, status, error, and list highlight styles.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	overStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	sidebarStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("241")).
			PaddingLeft(1)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
