package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/movie-booth/internal/booking"
	"github.com/atomicstack/movie-booth/internal/testutil"
)

const testFixture = `
movies:
  - id: 1
    title: Mai
    description: Drama
  - id: 2
    title: Lật Mặt 7
rooms:
  - id: 10
    name: P1
    movie: Mai
    status: Đang chiếu
    price: 90000
  - id: 11
    name: P2
    status: Đã đóng
    price: 70000
tickets:
  - customer: 7
    movie: 1
    room: 10
    seat: A5
    price: 90000
    booked_at: 2024-05-01T19:30:00Z
  - customer: 7
    movie: 2
    room: 11
    seat: B1
    price: 70000
    booked_at: 2024-05-02T19:30:00Z
  - customer: 8
    movie: 1
    room: 10
    seat: C3
    price: 90000
    booked_at: 2024-05-03T19:30:00Z
`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "booth.db"), PoolSize: 2})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func seedTestStore(t *testing.T, s *Store) {
	t.Helper()
	f, err := ParseFixture([]byte(testFixture))
	if err != nil {
		t.Fatalf("ParseFixture: %v", err)
	}
	if err := s.Seed(context.Background(), f); err != nil {
		t.Fatalf("Seed: %v", err)
	}
}

func TestEmptyStoreReturnsEmptyCatalog(t *testing.T) {
	s := openTestStore(t)
	movies, err := s.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected empty non-nil catalog, got %#v", movies)
	}
}

func TestListMoviesAndRooms(t *testing.T) {
	s := openTestStore(t)
	seedTestStore(t, s)
	ctx := context.Background()

	movies, err := s.ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(movies) != 2 || movies[0].Title != "Mai" || movies[1].Title != "Lật Mặt 7" {
		t.Fatalf("unexpected movies %#v", movies)
	}

	rooms, err := s.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].MovieTitle != "Mai" || !rooms[0].Bookable() || rooms[0].Price != 90000 {
		t.Fatalf("unexpected first room %#v", rooms[0])
	}
	if rooms[1].MovieTitle != "" || rooms[1].Bookable() {
		t.Fatalf("expected closed room without movie, got %#v", rooms[1])
	}
	room, ok := booking.RoomForMovie(rooms, movies[0])
	if !ok || room.ID != 10 {
		t.Fatalf("expected Mai to resolve to room 10, got %#v", room)
	}
}

func TestListBookingHistoryFiltersByCustomer(t *testing.T) {
	s := openTestStore(t)
	seedTestStore(t, s)

	records, err := s.ListBookingHistory(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListBookingHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for customer 7, got %d", len(records))
	}
	first := records[0]
	if first.MovieTitle != "Mai" || first.RoomName != "P1" || first.SeatNumber != "A5" {
		t.Fatalf("unexpected first record %#v", first)
	}
	want := time.Date(2024, 5, 1, 19, 30, 0, 0, time.UTC)
	if !first.BookedAt.Equal(want) {
		t.Fatalf("expected booked at %v, got %v", want, first.BookedAt)
	}

	none, err := s.ListBookingHistory(context.Background(), 99)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no history for unknown customer, got %v (%v)", none, err)
	}
}

func TestLaunchRecordsBookingRequest(t *testing.T) {
	s := openTestStore(t)
	seedTestStore(t, s)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Launch(context.Background(), 7, 10, 1); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	reqs, err := s.BookingRequests(context.Background(), 7)
	if err != nil {
		t.Fatalf("BookingRequests: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	got := reqs[0]
	if got.RoomID != 10 || got.MovieID != 1 || got.Status != "pending" || !got.RequestedAt.Equal(fixed) {
		t.Fatalf("unexpected request %#v", got)
	}
}

func TestCancelledContextIsDataAccessError(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.ListMovies(ctx)
	if err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	var dae *booking.DataAccessError
	if !errors.As(err, &dae) || dae.Op != "movies" {
		t.Fatalf("expected data access error for movies, got %v", err)
	}
}

func TestParseFixtureRejectsUntitledMovie(t *testing.T) {
	if _, err := ParseFixture([]byte("movies:\n  - id: 1\n")); err == nil {
		t.Fatalf("expected error for movie without title")
	}
	if _, err := ParseFixture([]byte("rooms: [")); err == nil {
		t.Fatalf("expected YAML syntax error")
	}
}

func TestSeedSampleFixture(t *testing.T) {
	f, err := LoadFixture(testutil.Testdata(t, "seed.yaml"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx, f); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	movies, err := s.ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	rooms, err := s.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(movies) != 3 || len(rooms) != 3 {
		t.Fatalf("expected 3 movies and 3 rooms, got %d and %d", len(movies), len(rooms))
	}
	if _, ok := booking.RoomForMovie(rooms, movies[2]); ok {
		t.Fatalf("expected %q to have no room", movies[2].Title)
	}
	records, err := s.ListBookingHistory(ctx, 7)
	if err != nil {
		t.Fatalf("ListBookingHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for customer 7, got %d", len(records))
	}
}
