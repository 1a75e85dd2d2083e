package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/phoenyx/internal/terminal"
)

const (
	frameInterval = 100 * time.Millisecond

	gateWidth  = 23
	gateHeight = 9
	gatePoints = 20
)

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// gate is the animated ring beside the login terminal. It only reads the
// engine's signals.
type gate struct {
	phase float64 // revolutions, kept in [0,1)
	sig   terminal.Signals
}

// gateSpeed is in revolutions per second.
func gateSpeed(sig terminal.Signals) float64 {
	speed := 0.5 + sig.ActivityLevel*2
	if sig.SecureMode {
		speed *= 2.5
	}
	return speed
}

func gateColor(sig terminal.Signals) lipgloss.Color {
	switch {
	case sig.SecureMode:
		return colorGateAlert
	case sig.ActivityLevel > 0.5:
		return colorGateActive
	default:
		return colorGateIdle
	}
}

func gateLabel(sig terminal.Signals) string {
	switch {
	case sig.SecureMode:
		return "ENCRYPT"
	case sig.ActivityLevel > 0.5:
		return "SYNC"
	default:
		return "IDLE"
	}
}

func (g *gate) Advance(sig terminal.Signals) {
	g.sig = sig
	g.phase += gateSpeed(sig) * frameInterval.Seconds()
	g.phase -= math.Floor(g.phase)
}

func (g gate) View() string {
	grid := make([][]string, gateHeight)
	for y := range grid {
		grid[y] = make([]string, gateWidth)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	lit := lipgloss.NewStyle().Foreground(gateColor(g.sig)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(colorBorder)
	head := int(g.phase*gatePoints) % gatePoints
	cx, cy := float64(gateWidth-1)/2, float64(gateHeight-1)/2
	rx, ry := cx, cy
	for i := 0; i < gatePoints; i++ {
		angle := 2 * math.Pi * float64(i) / gatePoints
		x := int(math.Round(cx + rx*math.Cos(angle)))
		y := int(math.Round(cy + ry*math.Sin(angle)))
		switch (head - i + gatePoints) % gatePoints {
		case 0:
			grid[y][x] = lit.Render("●")
		case 1:
			grid[y][x] = lit.Render("◉")
		case 2:
			grid[y][x] = lit.Render("○")
		default:
			grid[y][x] = dim.Render("·")
		}
	}

	rows := make([]string, gateHeight)
	for y := range grid {
		rows[y] = strings.Join(grid[y], "")
	}
	mid := gateHeight / 2
	rows[mid] = grid[mid][0] +
		lipgloss.PlaceHorizontal(gateWidth-2, lipgloss.Center, lit.Render(gateLabel(g.sig))) +
		grid[mid][gateWidth-1]
	return strings.Join(rows, "\n")
}
