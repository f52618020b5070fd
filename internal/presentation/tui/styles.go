package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles of the form.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Progress lipgloss.Style
	Label    lipgloss.Style
	Invalid  lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#38bdf8")),
		Subtitle: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#94a3b8")),
		Progress: lipgloss.NewStyle().Foreground(lipgloss.Color("#2dd4bf")),
		Label:    lipgloss.NewStyle().Width(16).Bold(true),
		Invalid:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80")),
		Failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")),
	}
}
