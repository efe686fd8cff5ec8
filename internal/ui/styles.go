package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default: primary text
// - Accent (soft purple): names, paths
// - Muted (gray): secondary info, hints
// Status is carried by unicode symbols, not color.

const (
	accentHex = "#A78BFA"
	mutedHex  = "#6C7086"
)

var (
	// Accent style for project names and file paths
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accentHex))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedHex))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(accentHex)).Bold(true)
)
