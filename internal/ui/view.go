package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/movie-booth/internal/booking"
	"github.com/atomicstack/movie-booth/internal/format"
	"github.com/atomicstack/movie-booth/internal/format/table"
	"github.com/atomicstack/movie-booth/internal/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	rowIndicator     = "▌"
	roomLoadingText  = "Đang tải..."
	roomMissingText  = "Không có"
	roomFailedText   = "Lỗi tải dữ liệu"
	bookableText     = "Đặt vé"
	unavailableText  = "Không khả dụng"
	moviesLoadingMsg = "Đang tải danh sách phim..."
	historyLoading   = "Đang tải lịch sử đặt vé..."
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.tabsView(), raw: true})
	if status := m.statusLine(); status != "" {
		lines = append(lines, styledLine{text: status, style: styles.Loading})
	}
	if m.panel == PanelHistory {
		lines = append(lines, m.historyLines()...)
	} else {
		lines = append(lines, m.movieLines()...)
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{}, styledLine{text: m.errMsg, style: styles.Error})
	} else if m.infoMsg != "" {
		lines = append(lines, styledLine{}, styledLine{text: m.infoMsg, style: styles.Info})
	}
	if m.panel == PanelMovies && (m.filtering || m.filter.Value() != "") {
		lines = append(lines, styledLine{text: m.filter.View(), raw: true})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.footerView(), style: styles.Footer})
	}
	lines = applyWidth(lines, m.width)
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(lines)
}

func (m *Model) tabsView() string {
	render := func(label string, active bool) string {
		style := styles.Tab
		if active {
			style = styles.ActiveTab
		}
		if style == nil {
			return label
		}
		return style.Render(label)
	}
	tabs := render("1 Phim", m.panel == PanelMovies) + render("2 Lịch sử", m.panel == PanelHistory)
	if m.clock == "" {
		return tabs
	}
	clock := m.clock
	if styles.Clock != nil {
		clock = styles.Clock.Render(clock)
	}
	gap := 2
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(tabs) - ansi.StringWidth(m.clock); pad > gap {
			gap = pad
		}
	}
	return tabs + strings.Repeat(" ", gap) + clock
}

func (m *Model) statusLine() string {
	status := ""
	switch m.panel {
	case PanelHistory:
		if m.history.Status() == view.StatusLoading && m.history.HasContent() {
			status = historyLoading
		}
	default:
		if m.movies.Status() == view.StatusLoading && m.movies.HasContent() {
			status = moviesLoadingMsg
		}
	}
	if m.verbose {
		if n := len(m.runner.Pending()); n > 0 {
			status = strings.TrimSpace(fmt.Sprintf("%s (%d tác vụ nền)", status, n))
		}
	}
	return status
}

func (m *Model) movieLines() []styledLine {
	switch {
	case m.movies.Status() == view.StatusLoading && !m.movies.HasContent():
		return []styledLine{{text: moviesLoadingMsg, style: styles.Loading}}
	case !m.movies.HasContent():
		return nil
	case m.movies.Empty():
		return []styledLine{{text: moviesPlaceholder, style: styles.Placeholder}}
	}
	list := m.movieList
	if len(list.Rows) == 0 {
		return []styledLine{{text: fmt.Sprintf("Không có phim nào khớp %q", list.Filter), style: styles.Info}}
	}
	byID := make(map[string]booking.Movie, len(m.movies.Content()))
	for _, movie := range m.movies.Content() {
		byID[strconv.Itoa(movie.ID)] = movie
	}
	cells := make([][]string, len(list.Rows))
	bookable := make([]bool, len(list.Rows))
	for i, row := range list.Rows {
		movie := byID[row.ID]
		room, price, status, ok := m.roomCells(movie)
		avail := unavailableText
		if ok {
			avail = bookableText
		}
		bookable[i] = ok
		cells[i] = []string{movie.Title, room, price, status, avail}
	}
	formatted := table.Format(cells, []table.Alignment{
		table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignLeft, table.AlignLeft,
	})
	lines := make([]styledLine, 0, len(formatted)+2)
	start, end := m.visibleRange(list.ViewportOffset, len(formatted))
	for idx := start; idx < end; idx++ {
		style := styles.Item
		if !bookable[idx] {
			style = styles.Unavailable
		}
		lines = append(lines, m.buildRowLine(formatted[idx], idx == list.Cursor, style))
	}
	if movie, ok := m.selectedMovie(); ok && strings.TrimSpace(movie.Description) != "" {
		lines = append(lines, styledLine{text: "  " + movie.Description, style: styles.Detail})
	}
	return lines
}

// roomCells renders the per-row detail of movie. ok reports whether the
// book action is enabled.
func (m *Model) roomCells(movie booking.Movie) (room, price, status string, ok bool) {
	v, found := m.rooms[movie.ID]
	if !found {
		return roomLoadingText, "", "", false
	}
	if v.Status() == view.StatusFailed {
		return roomFailedText, "", "", false
	}
	if !v.HasContent() {
		return roomLoadingText, "", "", false
	}
	if v.Empty() {
		return roomMissingText, "", "", false
	}
	lookup := v.Content()
	return lookup.Room.Name, format.Price(lookup.Room.Price), string(lookup.Room.Status), lookup.Room.Bookable()
}

func (m *Model) historyLines() []styledLine {
	lines := []styledLine{{text: "Sắp xếp: " + m.sortOrder.String(), style: styles.Header}}
	switch {
	case m.history.Status() == view.StatusLoading && !m.history.HasContent():
		return append(lines, styledLine{text: historyLoading, style: styles.Loading})
	case !m.history.HasContent():
		return lines
	case m.history.Empty():
		return append(lines, styledLine{text: historyPlaceholder, style: styles.Placeholder})
	}
	records := m.history.Content()
	cells := make([][]string, len(records))
	for i, rec := range records {
		cells[i] = []string{rec.MovieTitle, rec.RoomName, "Ghế " + rec.SeatNumber, format.Price(rec.Price), format.BookedAt(rec.BookedAt)}
	}
	formatted := table.Format(cells, []table.Alignment{
		table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignLeft,
	})
	start, end := m.visibleRange(m.historyList.ViewportOffset, len(formatted))
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildRowLine(formatted[idx], idx == m.historyList.Cursor, styles.Item))
	}
	return lines
}

func (m *Model) visibleRange(offset, total int) (int, int) {
	maxRows := m.maxVisibleRows()
	if maxRows <= 0 || total <= maxRows {
		return 0, total
	}
	if offset < 0 {
		offset = 0
	}
	if offset+maxRows > total {
		offset = total - maxRows
	}
	return offset, offset + maxRows
}

func (m *Model) buildRowLine(text string, selected bool, style *lipgloss.Style) styledLine {
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		style = styles.SelectedItem
	}
	fullText := rowIndicator + " " + text
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         style,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) footerView() string {
	bindings := m.keys.footerBindings(m.panel)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.filter.Width = m.width - 4
	m.syncViewport()
	return nil
}

// maxVisibleRows returns how many list rows fit on screen, or -1 when the
// height is unknown.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // tabs + status
	if m.errMsg != "" || m.infoMsg != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if m.panel == PanelHistory {
		used++ // sort line
	} else {
		used += 2 // description + filter prompt
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
