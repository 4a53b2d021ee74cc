package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the customer screen.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Panels.
	NextPanel key.Binding
	Movies    key.Binding
	History   key.Binding

	Refresh key.Binding
	Sort    key.Binding // History only.
	Detail  key.Binding // Reload the selected row's room.
	Book    key.Binding

	FilterActivate key.Binding
	FilterClear    key.Binding
	Dismiss        key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "lên"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "xuống"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "trang trước"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "trang sau"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "đầu"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "cuối"),
	),
	NextPanel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "đổi mục"),
	),
	Movies: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "phim"),
	),
	History: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "lịch sử"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "f5"),
		key.WithHelp("r", "làm mới"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sắp xếp"),
	),
	Detail: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "tải phòng"),
	),
	Book: key.NewBinding(
		key.WithKeys("b", "enter"),
		key.WithHelp("b", "đặt vé"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "lọc"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "xóa lọc"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x", "esc"),
		key.WithHelp("x", "đóng thông báo"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "thoát"),
	),
}

func (k KeyMap) footerBindings(panel Panel) []key.Binding {
	if panel == PanelHistory {
		return []key.Binding{k.NextPanel, k.Refresh, k.Sort, k.Dismiss, k.Quit}
	}
	return []key.Binding{k.NextPanel, k.Refresh, k.Detail, k.Book, k.FilterActivate, k.Dismiss, k.Quit}
}
