// Package store is the SQLite-backed implementation of the booking
// collaborators: catalog, rooms, booking history and the hand-off table the
// seat-selection workflow picks new bookings up from.
//
// The store wraps a zombiezen sqlitex.Pool. Every connection gets the same
// pragmas and the schema on first use. Each method takes its own connection
// for the duration of the call, so the store is safe for concurrent use by
// the fetch workers; cancelling the context interrupts a running query.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/atomicstack/movie-booth/internal/booking"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const defaultPoolSize = 4

// Config holds the parameters for opening a store.
type Config struct {
	// Path is the database file. It is created when missing.
	Path string
	// PoolSize is the number of pooled connections. Zero selects 4.
	PoolSize int
	// Logger receives open/close messages. Nil discards them.
	Logger *slog.Logger
}

// Store serves booking data from SQLite.
type Store struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
	now    func() time.Time
}

var (
	_ booking.Catalog       = (*Store)(nil)
	_ booking.RoomLister    = (*Store)(nil)
	_ booking.HistoryLister = (*Store)(nil)
	_ booking.Launcher      = (*Store)(nil)
)

// Open creates the pool. Connections are initialised lazily on first use.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store: Path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", cfg.Path, err)
	}
	logger.Info("store opened", "path", cfg.Path, "pool_size", poolSize)
	return &Store{pool: pool, logger: logger, path: cfg.Path, now: time.Now}, nil
}

// Services exposes the store as the screen's collaborators.
func (s *Store) Services() booking.Services {
	return booking.Services{Catalog: s, Rooms: s, History: s, Launcher: s}
}

// Close closes every connection. It blocks until borrowed connections are
// returned.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		s.logger.Error("store close error", "path", s.path, "error", err)
		return fmt.Errorf("store: closing %s: %w", s.path, err)
	}
	s.logger.Info("store closed", "path", s.path)
	return nil
}

func (s *Store) withConn(ctx context.Context, op string, fn func(conn *sqlite.Conn) error) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return booking.WrapDataAccess(op, err)
	}
	defer s.pool.Put(conn)
	return booking.WrapDataAccess(op, fn(conn))
}

// ListMovies returns the catalog ordered by id.
func (s *Store) ListMovies(ctx context.Context) ([]booking.Movie, error) {
	movies := []booking.Movie{}
	err := s.withConn(ctx, "movies", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT id, title, description, poster FROM movies ORDER BY id`, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				movies = append(movies, booking.Movie{
					ID:          stmt.ColumnInt(0),
					Title:       stmt.ColumnText(1),
					Description: stmt.ColumnText(2),
					Poster:      stmt.ColumnText(3),
				})
				return nil
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// ListRooms returns every room ordered by id.
func (s *Store) ListRooms(ctx context.Context) ([]booking.Room, error) {
	rooms := []booking.Room{}
	err := s.withConn(ctx, "rooms", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT id, name, movie_title, status, price FROM rooms ORDER BY id`, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				room := booking.Room{
					ID:     stmt.ColumnInt(0),
					Name:   stmt.ColumnText(1),
					Status: booking.RoomStatus(stmt.ColumnText(3)),
					Price:  stmt.ColumnFloat(4),
				}
				if !stmt.ColumnIsNull(2) {
					room.MovieTitle = stmt.ColumnText(2)
				}
				rooms = append(rooms, room)
				return nil
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListBookingHistory returns the customer's tickets in booking order.
func (s *Store) ListBookingHistory(ctx context.Context, customerID int) ([]booking.Record, error) {
	records := []booking.Record{}
	const query = `
		SELECT m.title, r.name, t.seat_number, t.price, t.booked_at
		FROM tickets t
		JOIN movies m ON m.id = t.movie_id
		JOIN rooms r ON r.id = t.room_id
		WHERE t.customer_id = ?
		ORDER BY t.booked_at, t.id`
	err := s.withConn(ctx, "history", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{int64(customerID)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				records = append(records, booking.Record{
					MovieTitle: stmt.ColumnText(0),
					RoomName:   stmt.ColumnText(1),
					SeatNumber: stmt.ColumnText(2),
					Price:      stmt.ColumnFloat(3),
					BookedAt:   time.Unix(stmt.ColumnInt64(4), 0),
				})
				return nil
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Launch records a booking request for the seat-selection workflow.
func (s *Store) Launch(ctx context.Context, customerID, roomID, movieID int) error {
	return s.withConn(ctx, "booking", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO booking_requests (customer_id, room_id, movie_id, requested_at, status) VALUES (?, ?, ?, ?, 'pending')`,
			&sqlitex.ExecOptions{
				Args: []any{int64(customerID), int64(roomID), int64(movieID), s.now().Unix()},
			})
	})
}

// BookingRequest is a row of the hand-off table.
type BookingRequest struct {
	ID          int64
	CustomerID  int
	RoomID      int
	MovieID     int
	RequestedAt time.Time
	Status      string
}

// BookingRequests lists the hand-off rows created for a customer.
func (s *Store) BookingRequests(ctx context.Context, customerID int) ([]BookingRequest, error) {
	var out []BookingRequest
	err := s.withConn(ctx, "booking-requests", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT id, customer_id, room_id, movie_id, requested_at, status FROM booking_requests WHERE customer_id = ? ORDER BY id`,
			&sqlitex.ExecOptions{
				Args: []any{int64(customerID)},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					out = append(out, BookingRequest{
						ID:          stmt.ColumnInt64(0),
						CustomerID:  stmt.ColumnInt(1),
						RoomID:      stmt.ColumnInt(2),
						MovieID:     stmt.ColumnInt(3),
						RequestedAt: time.Unix(stmt.ColumnInt64(4), 0),
						Status:      stmt.ColumnText(5),
					})
					return nil
				},
			})
	})
	return out, err
}
