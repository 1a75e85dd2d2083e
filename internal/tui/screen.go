package tui

import tea "github.com/charmbracelet/bubbletea"

// Screen is one full-window view on the stack. Update reports done=true when
// the screen wants to be popped.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Title() string
	// Close releases timers and anything else the screen owns.
	Close()
}

type ScreenStack struct {
	items []Screen
}

func (s *ScreenStack) Push(screen Screen) {
	if screen == nil {
		return
	}
	s.items = append(s.items, screen)
}

func (s *ScreenStack) Pop() Screen {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s *ScreenStack) ReplaceTop(screen Screen) {
	if len(s.items) == 0 || screen == nil {
		return
	}
	s.items[len(s.items)-1] = screen
}

func (s ScreenStack) Len() int {
	return len(s.items)
}

type pushScreenMsg struct {
	screen Screen
}

type popScreenMsg struct{}

// timerFiredMsg carries a scheduled callback onto the event loop.
type timerFiredMsg struct {
	fire func()
}

// frameMsg drives decorative animation.
type frameMsg struct{}

func pushScreenCmd(s Screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{screen: s} }
}

func popScreenCmd() tea.Msg { return popScreenMsg{} }

// exitFlowMsg is sent when the login flow hands control back.
type exitFlowMsg struct {
	screen Screen
}
