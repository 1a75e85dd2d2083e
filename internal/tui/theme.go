package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cbd5e1"
	colorMuted   lipgloss.Color = "#64748b"
	colorBorder  lipgloss.Color = "#334155"
	colorAccent  lipgloss.Color = "#06b6d4"
	colorUser    lipgloss.Color = "#67e8f9"
	colorSuccess lipgloss.Color = "#34d399"
	colorError   lipgloss.Color = "#ef4444"
	colorWarning lipgloss.Color = "#facc15"
	colorPhoenyx lipgloss.Color = "#f97316"

	// gate indicator
	colorGateIdle   lipgloss.Color = "#0d9488"
	colorGateActive lipgloss.Color = "#7c3aed"
	colorGateAlert  lipgloss.Color = "#c2410c"
)

var (
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	titleBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	systemStyle  = lipgloss.NewStyle().Foreground(colorText)
	userStyle    = lipgloss.NewStyle().Foreground(colorUser)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
