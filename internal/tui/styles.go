package tui

import (
	"github.com/MKhiriev/token-guard/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	inactiveTabStyle = lipgloss.NewStyle().Faint(true)
	cursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bannedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	activeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	staleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	levelStyles = map[models.ActivityLevel]lipgloss.Style{
		models.LevelNormal:   lipgloss.NewStyle(),
		models.LevelWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.LevelCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

// counter renders v padded to width and coloured by th.
func counter(v int, th models.Threshold, width int) string {
	return levelStyles[th.Level(v)].Render(padLeft(itoa(v), width))
}
