package ui

import (
	"github.com/atomicstack/movie-booth/internal/logging/events"
	uistate "github.com/atomicstack/movie-booth/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) startFilter() tea.Cmd {
	m.filtering = true
	return m.filter.Focus()
}

func (m *Model) stopFilter() {
	m.filtering = false
	m.filter.Blur()
}

// handleFilterKey routes keys to the filter prompt while it is focused.
// Enter keeps the query, esc drops it.
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.stopFilter()
		return nil
	case tea.KeyEsc:
		m.clearFilter()
		m.stopFilter()
		return nil
	case tea.KeyCtrlC:
		m.Shutdown()
		return tea.Quit
	case tea.KeyUp:
		m.moveCursor((*uistate.List).MoveCursorUp)
		return nil
	case tea.KeyDown:
		m.moveCursor((*uistate.List).MoveCursorDown)
		return nil
	}
	if key.Matches(msg, m.keys.FilterClear) {
		m.clearFilter()
		return nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if value := m.filter.Value(); value != before {
		m.applyFilter(value)
	}
	return cmd
}

func (m *Model) applyFilter(value string) {
	m.movieList.SetFilter(value)
	if value == "" {
		events.Filter.Cleared(m.movieList.ID)
	} else {
		events.Filter.Set(m.movieList.ID, value)
	}
	m.syncViewport()
}

func (m *Model) clearFilter() {
	if m.filter.Value() == "" && m.movieList.Filter == "" {
		return
	}
	m.filter.SetValue("")
	m.applyFilter("")
}
