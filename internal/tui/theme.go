package tui

import (
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name           string
	Base           lipgloss.Style
	Border         lipgloss.Color
	Header         lipgloss.Style
	Task           lipgloss.Style
	DoneTask       lipgloss.Style
	Warn           lipgloss.Style
	Input          lipgloss.Style
	PriorityUrgent lipgloss.Style
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style
	Focused        lipgloss.Style
	Dim            lipgloss.Style
	Highlight      lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:           "Default",
		Base:           lipgloss.NewStyle().Margin(1, 2),
		Border:         lipgloss.Color("63"),
		Header:         lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
		Task:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		DoneTask:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Warn:           lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Input:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(60),
		PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Focused:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:            lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:      lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:           "Dracula",
		Base:           lipgloss.NewStyle().Margin(1, 2),
		Border:         lipgloss.Color("62"),                                                                   // Purple
		Header:         lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true).Align(lipgloss.Center), // Cyan
		Task:           lipgloss.NewStyle().Foreground(lipgloss.Color("255")),                                  // White
		DoneTask:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),               // Comment
		Warn:           lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),                       // Orange
		Input:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(60),
		PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // Red
		PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true), // Orange
		PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("117")),            // Cyan
		PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),            // Grey
		Focused:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Dim:            lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:      lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

func (t Theme) priority(p models.TaskPriority) lipgloss.Style {
	switch p {
	case models.PriorityUrgent:
		return t.PriorityUrgent
	case models.PriorityHigh:
		return t.PriorityHigh
	case models.PriorityLow:
		return t.PriorityLow
	}
	return t.PriorityMedium
}
