package viz

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of one color scheme.
type Theme struct {
	Name   string
	Canvas lipgloss.Style
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Warn   lipgloss.Style
	Help   lipgloss.Style
}

func newTheme(name, plot, title, muted, text, warn string) Theme {
	return Theme{
		Name:   name,
		Canvas: lipgloss.NewStyle().Foreground(lipgloss.Color(plot)).Padding(1, 2),
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color(title)).Bold(true).MarginBottom(1),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Width(12),
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(warn)),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).MarginTop(1),
	}
}

// Themes lists the built-in schemes; the first is the default.
var Themes = []Theme{
	newTheme("phosphor", "#00d7af", "86", "245", "252", "#ff8800"),
	newTheme("ink", "#ffffff", "255", "242", "250", "#ffaa00"),
	newTheme("dusk", "#ff6b6b", "#feca57", "#8b6b8c", "#fff5f5", "#ffc048"),
}

// ThemeByName returns the named theme, or the default.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
