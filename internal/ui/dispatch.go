package ui

import (
	"context"

	"github.com/atomicstack/movie-booth/internal/data/dispatcher"
	tea "github.com/charmbracelet/bubbletea"
)

// waitForDispatch blocks off the Update loop until a callback is posted and
// hands it back as a message, so callbacks only ever run inside Update.
func waitForDispatch(d *dispatcher.Dispatcher) tea.Cmd {
	return func() tea.Msg {
		fn, ok := d.Next(context.Background())
		if !ok {
			return dispatchDoneMsg{}
		}
		return dispatchMsg{fn: fn}
	}
}

type dispatchMsg struct {
	fn func()
}

type dispatchDoneMsg struct{}

func (m *Model) handleDispatchMsg(msg tea.Msg) tea.Cmd {
	dispatched, ok := msg.(dispatchMsg)
	if !ok {
		return nil
	}
	if dispatched.fn != nil {
		dispatched.fn()
	}
	if m.listening {
		return waitForDispatch(m.dispatcher)
	}
	return nil
}

func (m *Model) handleDispatchDoneMsg(msg tea.Msg) tea.Cmd {
	m.listening = false
	return nil
}
