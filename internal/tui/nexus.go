package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/phoenyx/internal/llm"
	"github.com/jask/phoenyx/internal/service"
)

const (
	thinkingText = "Analyzing Neural Pathways..."
	nexusHint    = "Query the Nexus... (/help for commands)"

	// maxSuggestDistance is the largest edit distance still offered as a
	// "did you mean".
	maxSuggestDistance = 2
)

var slashCommands = []struct {
	name string
	help string
}{
	{"/login", "open the gateway terminal"},
	{"/clear", "wipe the conversation"},
	{"/help", "list commands"},
	{"/quit", "leave Phoenyx"},
}

type nexusReplyMsg struct {
	gen  int
	text string
}

// nexusPanel is the chat tab. At most one query is in flight.
type nexusPanel struct {
	ctx       context.Context
	nexus     *service.Nexus
	conv      *service.Conversation
	openLogin func() Screen

	input   textinput.Model
	spinner spinner.Model
	busy    bool
	gen     int
	notice  string

	renderer      *glamour.TermRenderer
	rendererWidth int
	rendered      map[string]string
}

func newNexusPanel(ctx context.Context, nexus *service.Nexus, openLogin func() Screen) *nexusPanel {
	in := textinput.New()
	in.Placeholder = nexusHint
	in.Prompt = "❯ "
	in.PromptStyle = accentStyle
	in.CharLimit = 500

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(colorPhoenyx)

	return &nexusPanel{
		ctx:       ctx,
		nexus:     nexus,
		conv:      service.NewConversation(),
		openLogin: openLogin,
		input:     in,
		spinner:   sp,
		rendered:  make(map[string]string),
	}
}

func (n *nexusPanel) Focus() tea.Cmd {
	return n.input.Focus()
}

func (n *nexusPanel) Blur() {
	n.input.Blur()
}

func (n *nexusPanel) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.Type == tea.KeyEnter {
			return n.submit()
		}
	case nexusReplyMsg:
		if m.gen != n.gen {
			return nil
		}
		n.conv.Add(llm.RoleModel, m.text)
		n.busy = false
		return nil
	case spinner.TickMsg:
		if !n.busy {
			return nil
		}
		var cmd tea.Cmd
		n.spinner, cmd = n.spinner.Update(m)
		return cmd
	}
	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return cmd
}

func (n *nexusPanel) submit() tea.Cmd {
	text := strings.TrimSpace(n.input.Value())
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "/") {
		n.input.Reset()
		n.notice = ""
		return n.command(text)
	}
	// one query in flight; the text stays in the box
	if n.busy {
		return nil
	}
	n.input.Reset()
	n.notice = ""

	history := n.conv.History()
	n.conv.Add(llm.RoleUser, text)
	n.busy = true
	return tea.Batch(n.askCmd(text, history), n.spinner.Tick)
}

func (n *nexusPanel) askCmd(message string, history []llm.Turn) tea.Cmd {
	ctx, nexus, gen := n.ctx, n.nexus, n.gen
	return func() tea.Msg {
		return nexusReplyMsg{gen: gen, text: nexus.Ask(ctx, message, history)}
	}
}

func (n *nexusPanel) command(text string) tea.Cmd {
	name := strings.ToLower(strings.Fields(text)[0])
	switch name {
	case "/login":
		if n.openLogin == nil {
			return nil
		}
		return pushScreenCmd(n.openLogin())
	case "/clear":
		n.gen++
		n.busy = false
		n.conv.Clear()
	case "/help":
		parts := make([]string, 0, len(slashCommands))
		for _, c := range slashCommands {
			parts = append(parts, c.name+" "+c.help)
		}
		n.notice = strings.Join(parts, " · ")
	case "/quit":
		return popScreenCmd
	default:
		n.notice = unknownCommand(name)
	}
	return nil
}

func unknownCommand(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range slashCommands {
		if d := levenshtein.ComputeDistance(name, c.name); d < bestDist {
			best, bestDist = c.name, d
		}
	}
	if best == "" {
		return fmt.Sprintf("Unknown command %s. Type /help.", name)
	}
	return fmt.Sprintf("Unknown command %s. Did you mean %s?", name, best)
}

func (n *nexusPanel) View(width, height int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	var rows []string
	for _, m := range n.conv.Messages() {
		rows = append(rows, strings.Split(n.renderMessage(m, inner), "\n")...)
	}
	if n.busy {
		rows = append(rows, n.spinner.View()+" "+mutedStyle.Render(thinkingText))
	}

	footer := []string{n.input.View()}
	if n.notice != "" {
		footer = append(footer, warningStyle.Render(n.notice))
	}
	bodyHeight := height - len(footer) - 3
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	header := titleBarStyle.Render("NEURAL NEXUS")
	content := strings.Join(append([]string{header, tail(rows, bodyHeight)}, footer...), "\n")
	return windowStyle.Width(width - 2).Render(content)
}

func (n *nexusPanel) renderMessage(m service.Message, width int) string {
	if m.Role == llm.RoleUser {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(userStyle.Render(m.Text))
	}
	return n.markdown(m.Text, width)
}

// markdown renders model replies through glamour, caching per width. Plain
// text is used when the renderer cannot be built.
func (n *nexusPanel) markdown(text string, width int) string {
	if n.renderer == nil || n.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return textStyle.Width(width).Render(text)
		}
		n.renderer, n.rendererWidth = r, width
		n.rendered = make(map[string]string)
	}
	if out, ok := n.rendered[text]; ok {
		return out
	}
	out, err := n.renderer.Render(text)
	if err != nil {
		return textStyle.Width(width).Render(text)
	}
	out = strings.Trim(out, "\n")
	n.rendered[text] = out
	return out
}
