package ui

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	secondary = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}
	muted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	danger    = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
)

type styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Cursor      lipgloss.Style
	Item        lipgloss.Style
	Done        lipgloss.Style
	Created     lipgloss.Style
	Empty       lipgloss.Style
	Left        lipgloss.Style
	Completed   lipgloss.Style
	ClearHint   lipgloss.Style
	InputPrompt lipgloss.Style
	Footer      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Tab:         lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		ActiveTab:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(primary).Underline(true),
		Cursor:      lipgloss.NewStyle().Foreground(primary).Bold(true),
		Item:        lipgloss.NewStyle(),
		Done:        lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		Created:     lipgloss.NewStyle().Foreground(muted).Faint(true),
		Empty:       lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(1, 2),
		Left:        lipgloss.NewStyle().Foreground(primary),
		Completed:   lipgloss.NewStyle().Foreground(secondary),
		ClearHint:   lipgloss.NewStyle().Foreground(danger),
		InputPrompt: lipgloss.NewStyle().Foreground(primary).Bold(true),
		Footer:      lipgloss.NewStyle().MarginTop(1).Foreground(muted),
	}
}
