package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/atomicstack/movie-booth/internal/booking"
	"github.com/atomicstack/movie-booth/internal/lifecycle"
	"github.com/atomicstack/movie-booth/internal/logging"
	"github.com/atomicstack/movie-booth/internal/logging/events"
	"github.com/atomicstack/movie-booth/internal/task"
	uistate "github.com/atomicstack/movie-booth/internal/ui/state"
	"github.com/atomicstack/movie-booth/internal/view"
)

// guarded drops a completion when the window closed before it was delivered.
func guarded[T any](gate *lifecycle.Gate, what string, fn func(T, error)) func(T, error) {
	return func(value T, err error) {
		gate.Guard(what, func() { fn(value, err) })()
	}
}

func (m *Model) refreshMovies() {
	g := m.movies.BeginRefresh()
	catalog := m.services.Catalog
	task.Submit(m.runner, "movies", uint64(g), func(ctx context.Context) ([]booking.Movie, error) {
		movies, err := catalog.ListMovies(ctx)
		if err != nil {
			return nil, booking.WrapDataAccess("movies", err)
		}
		return movies, nil
	}, guarded(m.gate, "movies", func(movies []booking.Movie, err error) {
		m.applyMovies(g, movies, err)
	}))
}

func (m *Model) applyMovies(g view.Generation, movies []booking.Movie, err error) {
	if !m.movies.Resolve(g, movies, err) {
		return
	}
	if err != nil {
		m.notifyError(err)
		return
	}
	m.resetRooms()
	rows := make([]uistate.Row, len(movies))
	for i, movie := range movies {
		rows[i] = uistate.Row{ID: strconv.Itoa(movie.ID), Label: movie.Title}
	}
	m.movieList.UpdateRows(rows)
	m.syncViewport()
	for _, movie := range movies {
		m.loadRoom(movie)
	}
}

// resetRooms invalidates every per-row lookup of the previous list.
func (m *Model) resetRooms() {
	for _, v := range m.rooms {
		v.Clear()
	}
	m.rooms = make(map[int]*view.View[roomLookup], len(m.rooms))
}

func (m *Model) roomView(movie booking.Movie) *view.View[roomLookup] {
	if v, ok := m.rooms[movie.ID]; ok {
		return v
	}
	v := view.New(fmt.Sprintf("room-for-movie:%d", movie.ID), func(r roomLookup) bool {
		return !r.Found
	})
	m.rooms[movie.ID] = v
	return v
}

func (m *Model) loadRoom(movie booking.Movie) {
	v := m.roomView(movie)
	g := v.BeginRefresh()
	op := v.Name()
	rooms := m.services.Rooms
	task.Submit(m.runner, op, uint64(g), func(ctx context.Context) (roomLookup, error) {
		list, err := rooms.ListRooms(ctx)
		if err != nil {
			return roomLookup{}, booking.WrapDataAccess(op, err)
		}
		room, found := booking.RoomForMovie(list, movie)
		return roomLookup{Room: room, Found: found}, nil
	}, guarded(m.gate, op, func(lookup roomLookup, err error) {
		if v.Resolve(g, lookup, err) && err != nil {
			logging.Error(err)
			events.Action.Error(err)
		}
	}))
}

func (m *Model) refreshHistory() {
	g := m.history.BeginRefresh()
	order := m.sortOrder
	customerID := m.customerID
	history := m.services.History
	task.Submit(m.runner, "history", uint64(g), func(ctx context.Context) ([]booking.Record, error) {
		records, err := history.ListBookingHistory(ctx, customerID)
		if err != nil {
			return nil, booking.WrapDataAccess("history", err)
		}
		sorted := make([]booking.Record, len(records))
		copy(sorted, records)
		booking.SortRecords(sorted, order)
		return sorted, nil
	}, guarded(m.gate, "history", func(records []booking.Record, err error) {
		m.applyHistory(g, records, err)
	}))
}

func (m *Model) applyHistory(g view.Generation, records []booking.Record, err error) {
	if !m.history.Resolve(g, records, err) {
		return
	}
	if err != nil {
		m.notifyError(err)
		return
	}
	rows := make([]uistate.Row, len(records))
	for i, rec := range records {
		rows[i] = uistate.Row{ID: strconv.Itoa(i), Label: rec.MovieTitle}
	}
	m.historyList.UpdateRows(rows)
	m.historyList.Cursor = 0
	m.syncViewport()
}

// bookSelected re-queries the selected movie's room off the consumer and
// hands the booking to the launcher when the room is selling tickets.
func (m *Model) bookSelected() {
	movie, ok := m.selectedMovie()
	if !ok {
		return
	}
	if v, ok := m.rooms[movie.ID]; ok && v.Status() == view.StatusFailed {
		m.setError(roomRetryMessage)
		return
	} else if ok && v.HasContent() {
		lookup := v.Content()
		if !lookup.Found {
			events.Booking.NoRoom(movie.ID, movie.Title)
			m.setError(noRoomMessage)
			return
		}
		if !lookup.Room.Bookable() {
			m.setError(notBookableMessage)
			return
		}
	}
	if m.bookings[movie.ID] {
		return
	}
	m.bookings[movie.ID] = true
	op := fmt.Sprintf("booking:%d", movie.ID)
	customerID := m.customerID
	rooms := m.services.Rooms
	launcher := m.services.Launcher
	task.Submit(m.runner, op, 0, func(ctx context.Context) (booking.Room, error) {
		list, err := rooms.ListRooms(ctx)
		if err != nil {
			return booking.Room{}, booking.WrapDataAccess(op, err)
		}
		room, found := booking.RoomForMovie(list, movie)
		if !found {
			return booking.Room{}, booking.ErrNoRoom
		}
		if !room.Bookable() {
			return booking.Room{}, booking.ErrNotBookable
		}
		events.Booking.Launch(customerID, room.ID, movie.ID)
		if err := launcher.Launch(ctx, customerID, room.ID, movie.ID); err != nil {
			return booking.Room{}, booking.WrapDataAccess(op, err)
		}
		return room, nil
	}, guarded(m.gate, op, func(room booking.Room, err error) {
		delete(m.bookings, movie.ID)
		switch {
		case errors.Is(err, booking.ErrNoRoom):
			events.Booking.NoRoom(movie.ID, movie.Title)
			m.setError(noRoomMessage)
		case errors.Is(err, booking.ErrNotBookable):
			m.setError(notBookableMessage)
		case err != nil:
			m.notifyError(err)
		default:
			info := fmt.Sprintf("Đã mở đặt vé: %s, %s.", movie.Title, room.Name)
			events.Action.Success(info)
			m.setInfo(info)
		}
	}))
}

func (m *Model) selectedMovie() (booking.Movie, bool) {
	row, ok := m.movieList.Current()
	if !ok {
		return booking.Movie{}, false
	}
	for _, movie := range m.movies.Content() {
		if strconv.Itoa(movie.ID) == row.ID {
			return movie, true
		}
	}
	return booking.Movie{}, false
}

// notifyError surfaces a failed operation as a dismissible notification.
func (m *Model) notifyError(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	events.Action.Error(err)
	var dae *booking.DataAccessError
	if errors.As(err, &dae) {
		m.setError(fmt.Sprintf("Lỗi truy cập dữ liệu (%s): %v", dae.Op, dae.Err))
		return
	}
	m.setError(err.Error())
}

func (m *Model) setError(message string) {
	m.errMsg = message
	m.infoMsg = ""
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.errMsg = ""
}

func (m *Model) dismiss() bool {
	switch {
	case m.errMsg != "":
		events.UI.Dismiss(m.errMsg)
		m.errMsg = ""
	case m.infoMsg != "":
		events.UI.Dismiss(m.infoMsg)
		m.infoMsg = ""
	default:
		return false
	}
	return true
}
