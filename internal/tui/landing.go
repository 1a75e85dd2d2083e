package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/phoenyx/internal/content"
)

type landingTab int

const (
	tabHero landingTab = iota
	tabTrinity
	tabDNA
	tabNexus
)

var tabNames = []string{"HERO", "TRINITY", "SKILL DNA", "NEXUS"}

// dnaFrames is how many frames the DNA highlight rests on one topic.
const dnaFrames = 5

type landingKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Login  key.Binding
	Quit   key.Binding
	Escape key.Binding
}

var defaultLandingKeys = landingKeys{
	Next:   key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev")),
	Login:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

type landingScreen struct {
	app    *App
	active landingTab
	keys   landingKeys
	vp     viewport.Model
	nexus  *nexusPanel
	frame  int
	width  int
	height int
}

func newLanding(a *App) *landingScreen {
	l := &landingScreen{
		app:    a,
		keys:   defaultLandingKeys,
		width:  a.width,
		height: a.height,
	}
	l.nexus = newNexusPanel(a.ctx, a.deps.Nexus, a.newLogin)
	l.vp = viewport.New(l.width, l.bodyHeight())
	l.refresh()
	return l
}

func (l *landingScreen) Title() string { return "landing" }

func (l *landingScreen) Init() tea.Cmd { return nil }

func (l *landingScreen) Close() {}

func (l *landingScreen) bodyHeight() int {
	h := l.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (l *landingScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		l.width, l.height = m.Width, m.Height
		l.vp.Width, l.vp.Height = m.Width, l.bodyHeight()
		l.refresh()
		return l, nil, false
	case frameMsg:
		l.frame++
		if l.active == tabDNA && l.frame%dnaFrames == 0 {
			l.refresh()
		}
		return l, nil, false
	case tea.KeyMsg:
		return l.handleKey(m)
	}
	return l, l.nexus.Update(msg), false
}

func (l *landingScreen) handleKey(m tea.KeyMsg) (Screen, tea.Cmd, bool) {
	if key.Matches(m, l.keys.Next) && !(l.active == tabNexus && m.String() == "right") {
		return l, l.switchTab((l.active + 1) % landingTab(len(tabNames))), false
	}
	if key.Matches(m, l.keys.Prev) && !(l.active == tabNexus && m.String() == "left") {
		return l, l.switchTab((l.active + landingTab(len(tabNames)) - 1) % landingTab(len(tabNames))), false
	}
	if l.active == tabNexus {
		if key.Matches(m, l.keys.Escape) {
			return l, l.switchTab(tabHero), false
		}
		return l, l.nexus.Update(m), false
	}

	switch {
	case key.Matches(m, l.keys.Quit):
		return l, nil, true
	case key.Matches(m, l.keys.Login):
		return l, pushScreenCmd(l.app.newLogin()), false
	}
	if s := m.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '4' {
		return l, l.switchTab(landingTab(s[0] - '1')), false
	}
	var cmd tea.Cmd
	l.vp, cmd = l.vp.Update(m)
	return l, cmd, false
}

func (l *landingScreen) switchTab(t landingTab) tea.Cmd {
	if t == l.active {
		return nil
	}
	l.active = t
	l.vp.GotoTop()
	l.refresh()
	if t == tabNexus {
		return l.nexus.Focus()
	}
	l.nexus.Blur()
	return nil
}

func (l *landingScreen) refresh() {
	switch l.active {
	case tabHero:
		l.vp.SetContent(renderHero(l.width))
	case tabTrinity:
		l.vp.SetContent(renderTrinity(l.width))
	case tabDNA:
		l.vp.SetContent(renderDNA(l.width, l.frame/dnaFrames))
	}
}

func (l *landingScreen) View(width, height int) string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := string(rune('1'+i)) + " " + name
		if landingTab(i) == l.active {
			tabs[i] = activeTabStyle.Render("[" + label + "]")
		} else {
			tabs[i] = inactiveTabStyle.Render(" " + label + " ")
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body, help string
	if l.active == tabNexus {
		body = l.nexus.View(width, l.bodyHeight())
		help = "tab switch · esc back · enter send"
	} else {
		body = l.vp.View()
		help = "tab/1-4 switch · ↑/↓ scroll · l login · q quit"
	}
	return strings.Join([]string{bar, body, footerStyle.Render(help)}, "\n")
}

func renderHero(width int) string {
	h := content.HeroContent
	wrap := lipgloss.NewStyle().Width(min(width-2, 72))
	title := lipgloss.NewStyle().Foreground(colorPhoenyx).Bold(true).Render(h.Title)
	lines := []string{
		"",
		title,
		accentStyle.Render(h.Subtitle),
		"",
		warningStyle.Render(h.Tagline),
		"",
		wrap.Inherit(textStyle).Render(h.Description),
		"",
		mutedStyle.Render("$ ") + successStyle.Render(h.CodeLine),
		"",
		mutedStyle.Render("Press ") + keyStyle.Render("l") + mutedStyle.Render(" to enter the gateway."),
	}
	return strings.Join(lines, "\n")
}

func renderTrinity(width int) string {
	cardWidth := 30
	cards := make([]string, len(content.Personas))
	for i, p := range content.Personas {
		color := lipgloss.Color(p.Color)
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(p.Name))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(p.Title))
		b.WriteString("\n\n")
		b.WriteString(textStyle.Render(p.Description))
		b.WriteString("\n")
		for _, f := range p.Features {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render("◆ ") + textStyle.Render(f))
		}
		cards[i] = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Width(cardWidth).
			Render(b.String())
	}
	if width >= (cardWidth+4)*len(cards) {
		return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderDNA lays the topics out in a grid and lights one of them.
func renderDNA(width, highlight int) string {
	const cell = 18
	perRow := max(1, min(6, (width-2)/cell))
	lit := highlight % len(content.DNATopics)

	var rows []string
	var row []string
	for i, topic := range content.DNATopics {
		style := lipgloss.NewStyle().Width(cell).Foreground(colorMuted)
		if i == lit {
			style = style.Foreground(colorAccent).Bold(true)
			topic = "▣ " + topic
		} else {
			topic = "□ " + topic
		}
		row = append(row, style.Render(topic))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	header := accentStyle.Render("SKILL DNA MATRIX") + "\n" +
		mutedStyle.Render("Proficiency · Resilience · Communication") + "\n"
	return header + "\n" + strings.Join(rows, "\n")
}
