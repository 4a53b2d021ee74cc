package state

import "strings"

// Row is one selectable line of a list. ID is stable across refreshes;
// Label is what the filter matches against.
type Row struct {
	ID    string
	Label string
}

// List tracks the rows, cursor, filter and viewport of one on-screen list.
type List struct {
	ID             string
	Rows           []Row
	Full           []Row
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List holding rows.
func NewList(id string, rows []Row) *List {
	l := &List{
		ID:         id,
		LastCursor: -1,
	}
	l.UpdateRows(rows)
	l.Cursor = 0
	return l
}

// IndexOf returns the index for a given row identifier.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, row := range l.Rows {
		if row.ID == id {
			return i
		}
	}
	if idx := strings.LastIndex(id, ":"); idx >= 0 {
		suffix := id[idx+1:]
		for i, row := range l.Rows {
			if row.ID == suffix {
				return i
			}
		}
	}
	return -1
}

// Current returns the row under the cursor.
func (l *List) Current() (Row, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Rows) {
		return Row{}, false
	}
	return l.Rows[l.Cursor], true
}

// UpdateRows replaces the rows, keeping the cursor on the same row id when
// it survives the update.
func (l *List) UpdateRows(rows []Row) {
	prevOffset := l.ViewportOffset
	prevID := ""
	if current, ok := l.Current(); ok {
		prevID = current.ID
	}
	l.Full = CloneRows(rows)
	l.applyFilter()
	if prevID != "" {
		if idx := l.IndexOf(prevID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if len(l.Rows) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Rows)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// MoveCursorUp moves the cursor one row up.
func (l *List) MoveCursorUp() bool {
	return l.moveCursorBy(-1)
}

// MoveCursorDown moves the cursor one row down.
func (l *List) MoveCursorDown() bool {
	return l.moveCursorBy(1)
}

// CloneRows produces a shallow copy of rows.
func CloneRows(rows []Row) []Row {
	dup := make([]Row, len(rows))
	copy(dup, rows)
	return dup
}
