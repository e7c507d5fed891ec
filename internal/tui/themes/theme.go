package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Header        lipgloss.Style
	StatusBar     lipgloss.Style
	FilterActive  lipgloss.Style
	FilterIdle    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	RoundedBox    lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	// Colors
	Primary:    lipgloss.Color("#2563eb"),
	Secondary:  lipgloss.Color("#60a5fa"),
	Success:    lipgloss.Color("#16a34a"),
	Error:      lipgloss.Color("#dc2626"),
	Foreground: lipgloss.Color("#f8fafc"),
	Border:     lipgloss.Color("#475569"),
	Muted:      lipgloss.Color("#94a3b8"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#f8fafc")).
		Background(lipgloss.Color("#2563eb")).
		Padding(0, 1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#94a3b8")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f8fafc")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#f8fafc")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#2563eb")).
		Foreground(lipgloss.Color("#f8fafc")).
		Bold(true),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#e2e8f0")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#475569")),

	// Filter bar
	FilterActive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true),
	FilterIdle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#94a3b8")),

	StatusBar: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e2e8f0")).
		Background(lipgloss.Color("#1e293b")).
		Padding(0, 1),
	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#16a34a")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#dc2626")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")),

	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#475569")).
		Padding(0, 1),
}

// Mono is a colorless theme for terminals without color support.
var Mono = Theme{
	Title:         lipgloss.NewStyle().Bold(true),
	Subtitle:      lipgloss.NewStyle(),
	Normal:        lipgloss.NewStyle(),
	Bold:          lipgloss.NewStyle().Bold(true),
	Selected:      lipgloss.NewStyle().Reverse(true),
	Header:        lipgloss.NewStyle().Bold(true),
	StatusBar:     lipgloss.NewStyle(),
	FilterActive:  lipgloss.NewStyle().Bold(true),
	FilterIdle:    lipgloss.NewStyle(),
	StatusInfo:    lipgloss.NewStyle(),
	StatusError:   lipgloss.NewStyle().Bold(true),
	StatusSuccess: lipgloss.NewStyle().Bold(true),
	RoundedBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
}

// ByName returns the theme registered under name, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "mono":
		return Mono
	default:
		return Default
	}
}
