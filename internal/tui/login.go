package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/phoenyx/internal/clock"
	"github.com/jask/phoenyx/internal/config"
	"github.com/jask/phoenyx/internal/terminal"
)

const (
	loginTitle  = "NEXUS_GATEWAY_V4.1"
	loginFooter = "[ ESC: ESCAPE TO LANDING ]"
)

type loginKeys struct {
	Submit key.Binding
	Back   key.Binding
	Reset  key.Binding
}

var defaultLoginKeys = loginKeys{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "landing")),
	Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
}

type loginDeps struct {
	Scheduler clock.Scheduler
	Verifier  terminal.CredentialVerifier
	Terminal  config.TerminalConfig
	Logger    *zap.Logger
}

// loginScreen hosts the gateway terminal. The engine owns the transcript;
// the screen only mirrors the input buffer and renders.
type loginScreen struct {
	engine *terminal.Engine
	input  textinput.Model
	gate   gate
	keys   loginKeys
	exited bool
}

func newLoginScreen(d loginDeps) *loginScreen {
	if d.Scheduler == nil {
		d.Scheduler = clock.NewReal(nil)
	}
	s := &loginScreen{keys: defaultLoginKeys}

	in := textinput.New()
	in.Prompt = ""
	// unlimited, so the mask counts every rune typed
	in.CharLimit = 0
	in.Focus()
	if g := d.Terminal.Glyph(); g != 0 {
		in.EchoCharacter = g
	} else {
		in.EchoCharacter = '•'
	}
	s.input = in

	timings := terminal.DefaultTimings().Scale(d.Terminal.SpeedFactor())
	s.engine = terminal.New(terminal.Options{
		Scheduler: d.Scheduler,
		Verifier:  d.Verifier,
		Timings:   &timings,
		MaskGlyph: d.Terminal.Glyph(),
		Logger:    d.Logger,
		OnExit:    func() { s.exited = true },
	})
	return s
}

func (s *loginScreen) Title() string { return "login" }

func (s *loginScreen) Init() tea.Cmd {
	s.engine.Start()
	return textinput.Blink
}

func (s *loginScreen) Close() {
	s.engine.Close()
}

func (s *loginScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(m, s.keys.Back):
			return s, nil, true
		case key.Matches(m, s.keys.Reset):
			s.engine.Reset()
			s.input.Reset()
			s.syncEcho()
			return s, nil, false
		case key.Matches(m, s.keys.Submit):
			return s.submit()
		}
		if !s.engine.InputEnabled() {
			return s, nil, false
		}
		s.syncEcho()
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(m)
		s.engine.SetInput(s.input.Value())
		return s, cmd, false
	case frameMsg:
		s.gate.Advance(s.engine.Signals())
		s.syncEcho()
		return s, nil, false
	}
	s.syncEcho()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

func (s *loginScreen) submit() (Screen, tea.Cmd, bool) {
	if !s.engine.InputEnabled() {
		return s, nil, false
	}
	if s.engine.Submit(s.input.Value()) {
		s.input.Reset()
	}
	if s.exited {
		return s, func() tea.Msg { return exitFlowMsg{screen: s} }, false
	}
	s.syncEcho()
	return s, nil, false
}

func (s *loginScreen) syncEcho() {
	if s.engine.Masked() {
		s.input.EchoMode = textinput.EchoPassword
	} else {
		s.input.EchoMode = textinput.EchoNormal
	}
}

func (s *loginScreen) View(width, height int) string {
	// The step can change on a timer between frames.
	s.syncEcho()
	showGate := width >= 72
	termWidth := width - 2
	if showGate {
		termWidth -= gateWidth + 2
	}
	if termWidth < 20 {
		termWidth = 20
	}
	inner := termWidth - 4

	header := titleBarStyle.Render(loginTitle)
	footer := footerStyle.Render(loginFooter)
	prompt := ""
	if s.engine.InputEnabled() {
		prompt = accentStyle.Render(s.engine.Prompt()+">") + " " + s.input.View()
	}

	// header, footer, prompt, blank line and the window border
	bodyHeight := height - 6
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	body := tail(renderTranscript(s.engine.Lines(), inner), bodyHeight)

	content := strings.Join([]string{header, "", body, prompt, footer}, "\n")
	window := windowStyle.Width(termWidth - 2).Render(content)
	if !showGate {
		return window
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, s.gate.View(), "  ", window)
}

func renderTranscript(lines []terminal.Line, width int) []string {
	var out []string
	for _, l := range lines {
		var rendered string
		if l.Sender == terminal.SenderUser {
			rendered = lipgloss.NewStyle().Width(width).Align(lipgloss.Right).
				Render(userStyle.Render(l.Text))
		} else {
			rendered = variantStyle(l.Variant).Width(width).Render("> " + l.Text)
		}
		out = append(out, strings.Split(rendered, "\n")...)
	}
	return out
}

func variantStyle(v terminal.Variant) lipgloss.Style {
	switch v {
	case terminal.VariantError:
		return errorStyle
	case terminal.VariantSuccess:
		return successStyle
	case terminal.VariantWarning:
		return warningStyle
	default:
		return systemStyle
	}
}

// tail keeps the last n rows so the newest line stays in view.
func tail(rows []string, n int) string {
	if len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	return strings.Join(rows, "\n")
}
