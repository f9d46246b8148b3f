package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/RugvedaRao/StudyLog/internal/models"
)

// Styles holds the theme-dependent style set. Rebuilt whenever the theme
// toggles.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Doc         lipgloss.Style
	Title       lipgloss.Style
	Accent      lipgloss.Style
	Muted       lipgloss.Style
	Danger      lipgloss.Style
	Countdown   lipgloss.Style
	Quote       lipgloss.Style
	Toast       lipgloss.Style
}

func NewStyles(theme models.Theme) Styles {
	accent := lipgloss.Color("205")
	muted := lipgloss.Color("240")
	text := lipgloss.Color("252")
	if theme == models.ThemeLight {
		accent = lipgloss.Color("161")
		muted = lipgloss.Color("244")
		text = lipgloss.Color("235")
	}

	return Styles{
		ActiveTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		Doc: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(text).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Countdown: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Quote: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
	}
}
