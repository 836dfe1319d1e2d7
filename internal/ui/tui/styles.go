package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used across the pages.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	StatCard lipgloss.Style
	StatNum  lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	FormBox  lipgloss.Style
	Label    lipgloss.Style
	Confirm  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")),
		StatCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2),
		StatNum: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("117")),
		Confirm: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203")),
	}
}
