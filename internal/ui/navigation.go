package ui

import (
	"github.com/atomicstack/movie-booth/internal/logging/events"
	uistate "github.com/atomicstack/movie-booth/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.filtering {
		return m.handleFilterKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.Shutdown()
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor((*uistate.List).MoveCursorUp)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor((*uistate.List).MoveCursorDown)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(func(l *uistate.List) bool { return l.MoveCursorPageUp(m.maxVisibleRows()) })
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(func(l *uistate.List) bool { return l.MoveCursorPageDown(m.maxVisibleRows()) })
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor((*uistate.List).MoveCursorHome)
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor((*uistate.List).MoveCursorEnd)
	case key.Matches(keyMsg, m.keys.NextPanel):
		next := PanelHistory
		if m.panel == PanelHistory {
			next = PanelMovies
		}
		m.switchPanel(next)
	case key.Matches(keyMsg, m.keys.Movies):
		m.switchPanel(PanelMovies)
	case key.Matches(keyMsg, m.keys.History):
		m.switchPanel(PanelHistory)
	case key.Matches(keyMsg, m.keys.Refresh):
		m.refreshPanel()
	case key.Matches(keyMsg, m.keys.Sort):
		if m.panel != PanelHistory {
			return nil
		}
		m.sortOrder = m.sortOrder.Next()
		events.UI.Sort(m.sortOrder.String())
		m.refreshHistory()
	case key.Matches(keyMsg, m.keys.Detail):
		if m.panel != PanelMovies {
			return nil
		}
		if movie, ok := m.selectedMovie(); ok {
			m.loadRoom(movie)
		}
	case key.Matches(keyMsg, m.keys.Book):
		if m.panel == PanelMovies {
			m.bookSelected()
		}
	case key.Matches(keyMsg, m.keys.FilterActivate):
		if m.panel == PanelMovies {
			return m.startFilter()
		}
	case key.Matches(keyMsg, m.keys.FilterClear):
		m.clearFilter()
	case key.Matches(keyMsg, m.keys.Dismiss):
		m.dismiss()
	}
	return nil
}

// switchPanel shows panel and reloads it, even when it is already visible.
func (m *Model) switchPanel(panel Panel) {
	if m.panel != panel {
		m.panel = panel
		events.UI.Panel(panel.String())
	}
	m.refreshPanel()
}

func (m *Model) refreshPanel() {
	if m.panel == PanelHistory {
		m.refreshHistory()
		return
	}
	m.refreshMovies()
}

func (m *Model) activeList() *uistate.List {
	if m.panel == PanelHistory {
		return m.historyList
	}
	return m.movieList
}

func (m *Model) moveCursor(move func(*uistate.List) bool) {
	list := m.activeList()
	if !move(list) {
		return
	}
	events.UI.Cursor(list.ID, list.Cursor)
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.activeList().EnsureCursorVisible(m.maxVisibleRows())
}
