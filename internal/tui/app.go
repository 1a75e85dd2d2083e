// Package tui is the Bubble Tea front end: the landing page, the gateway
// login terminal and the Nexus chat panel.
package tui

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/phoenyx/internal/clock"
	"github.com/jask/phoenyx/internal/config"
	"github.com/jask/phoenyx/internal/service"
	"github.com/jask/phoenyx/internal/terminal"
)

// StartView selects the first screen on the stack.
type StartView int

const (
	StartLanding StartView = iota
	StartLogin
)

// Deps are the collaborators the screens share.
type Deps struct {
	Config   config.Config
	Nexus    *service.Nexus
	Verifier terminal.CredentialVerifier
	// Scheduler drives the login script. When nil, Run installs a real
	// clock that dispatches through the program.
	Scheduler clock.Scheduler
	Logger    *zap.Logger
}

// App is the root model. It owns the screen stack and forwards everything
// it does not handle itself to the top screen.
type App struct {
	ctx    context.Context
	deps   Deps
	log    *zap.Logger
	stack  ScreenStack
	width  int
	height int
}

func New(ctx context.Context, deps Deps, start StartView) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Verifier == nil {
		deps.Verifier = terminal.VerifierByName(deps.Config.Terminal.Verifier)
	}
	a := &App{
		ctx:    ctx,
		deps:   deps,
		log:    deps.Logger.Named("tui"),
		width:  80,
		height: 24,
	}
	switch start {
	case StartLogin:
		a.stack.Push(a.newLogin())
	default:
		a.stack.Push(newLanding(a))
	}
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTick()}
	if top := a.stack.Top(); top != nil {
		cmds = append(cmds, top.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, a.broadcast(msg)
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			a.closeAll()
			return a, tea.Quit
		}
	case timerFiredMsg:
		if m.fire != nil {
			m.fire()
		}
		return a, nil
	case pushScreenMsg:
		a.stack.Push(m.screen)
		a.log.Debug("push", zap.String("screen", m.screen.Title()))
		return a, m.screen.Init()
	case popScreenMsg:
		return a, a.pop()
	case exitFlowMsg:
		// The sender may already be gone, e.g. esc was handled first.
		if a.stack.Top() != m.screen {
			return a, nil
		}
		return a, a.pop()
	case nexusReplyMsg, spinner.TickMsg:
		// The chat may have been left for the login screen while a query ran.
		return a, a.broadcast(msg)
	case frameMsg:
		cmd := a.forward(msg)
		return a, tea.Batch(cmd, frameTick())
	}
	return a, a.forward(msg)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	top := a.stack.Top()
	if top == nil {
		return nil
	}
	next, cmd, done := top.Update(msg)
	if next != nil && next != top {
		a.stack.ReplaceTop(next)
	}
	if done {
		return tea.Batch(cmd, popScreenCmd)
	}
	return cmd
}

// broadcast delivers msg to every screen on the stack, bottom first.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, sc := range a.stack.items {
		_, cmd, _ := sc.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) pop() tea.Cmd {
	if s := a.stack.Pop(); s != nil {
		s.Close()
		a.log.Debug("pop", zap.String("screen", s.Title()))
	}
	if a.stack.Len() == 0 {
		return tea.Quit
	}
	return nil
}

func (a *App) closeAll() {
	for a.stack.Len() > 0 {
		a.stack.Pop().Close()
	}
}

func (a *App) View() string {
	top := a.stack.Top()
	if top == nil {
		return ""
	}
	return top.View(a.width, a.height)
}

func (a *App) newLogin() Screen {
	return newLoginScreen(loginDeps{
		Scheduler: a.deps.Scheduler,
		Verifier:  a.deps.Verifier,
		Terminal:  a.deps.Config.Terminal,
		Logger:    a.deps.Logger,
	})
}

// dispatcher hands fired timers to the running program. Until the program
// exists callbacks run inline.
type dispatcher struct {
	p atomic.Pointer[tea.Program]
}

func (d *dispatcher) dispatch(fn func()) {
	if p := d.p.Load(); p != nil {
		p.Send(timerFiredMsg{fire: fn})
		return
	}
	fn()
}

// Run starts the program and blocks until it quits.
func Run(ctx context.Context, deps Deps, start StartView, opts ...tea.ProgramOption) error {
	var d dispatcher
	if deps.Scheduler == nil {
		deps.Scheduler = clock.NewReal(d.dispatch)
	}
	app := New(ctx, deps, start)
	if deps.Config.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithContext(ctx))
	p := tea.NewProgram(app, opts...)
	d.p.Store(p)
	_, err := p.Run()
	app.closeAll()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
