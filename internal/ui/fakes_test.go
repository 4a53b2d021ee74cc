package ui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/movie-booth/internal/booking"
	"github.com/atomicstack/movie-booth/internal/data/dispatcher"
	"github.com/atomicstack/movie-booth/internal/logging"
	"github.com/atomicstack/movie-booth/internal/task"
	tea "github.com/charmbracelet/bubbletea"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "movie-booth-ui")
	if err == nil {
		logging.Configure(filepath.Join(dir, "test.log"))
	}
	code := m.Run()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

type launch struct {
	customer, room, movie int
}

// fakeServices implements every collaborator. Each hook may be replaced
// per test; calls counts invocations per operation.
type fakeServices struct {
	mu       sync.Mutex
	calls    map[string]int
	launches []launch

	movies  func(ctx context.Context, call int) ([]booking.Movie, error)
	rooms   func(ctx context.Context, call int) ([]booking.Room, error)
	history func(ctx context.Context, customerID int) ([]booking.Record, error)
	launch  func(ctx context.Context, customerID, roomID, movieID int) error
}

func newFakeServices(movies []booking.Movie, rooms []booking.Room) *fakeServices {
	return &fakeServices{
		calls: map[string]int{},
		movies: func(context.Context, int) ([]booking.Movie, error) {
			return movies, nil
		},
		rooms: func(context.Context, int) ([]booking.Room, error) {
			return rooms, nil
		},
		history: func(context.Context, int) ([]booking.Record, error) {
			return nil, nil
		},
	}
}

func (f *fakeServices) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.calls[op]
}

func (f *fakeServices) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeServices) ListMovies(ctx context.Context) ([]booking.Movie, error) {
	return f.movies(ctx, f.count("movies"))
}

func (f *fakeServices) ListRooms(ctx context.Context) ([]booking.Room, error) {
	return f.rooms(ctx, f.count("rooms"))
}

func (f *fakeServices) ListBookingHistory(ctx context.Context, customerID int) ([]booking.Record, error) {
	f.count("history")
	return f.history(ctx, customerID)
}

func (f *fakeServices) Launch(ctx context.Context, customerID, roomID, movieID int) error {
	f.count("launch")
	if f.launch != nil {
		if err := f.launch(ctx, customerID, roomID, movieID); err != nil {
			return err
		}
	}
	f.mu.Lock()
	f.launches = append(f.launches, launch{customer: customerID, room: roomID, movie: movieID})
	f.mu.Unlock()
	return nil
}

func (f *fakeServices) services() booking.Services {
	return booking.Services{Catalog: f, Rooms: f, History: f, Launcher: f}
}

func newTestModel(t *testing.T, f *fakeServices) *Model {
	t.Helper()
	d := dispatcher.New()
	runner := task.New(d, task.Options{Workers: 4})
	t.Cleanup(func() {
		runner.Close()
		runner.Wait()
		d.Close()
	})
	return NewModel(Config{
		Services:   f.services(),
		Dispatcher: d,
		Runner:     runner,
		CustomerID: 7,
	})
}

func waitForPosts(t *testing.T, d *dispatcher.Dispatcher, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for d.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d posted callbacks, have %d", n, d.Len())
		}
		time.Sleep(time.Millisecond)
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(keyRune(r))
	}
}

var (
	testMovies = []booking.Movie{
		{ID: 1, Title: "Mai", Description: "Chuyện tình của Mai."},
		{ID: 2, Title: "Lật Mặt 7"},
		{ID: 3, Title: "Đào, Phở và Piano"},
	}
	testRooms = []booking.Room{
		{ID: 10, Name: "P1", MovieTitle: "Mai", Status: booking.StatusShowing, Price: 90000},
		{ID: 11, Name: "P2", MovieTitle: "Lật Mặt 7", Status: booking.StatusClosed, Price: 120000},
		{ID: 12, Name: "P3", Status: booking.StatusUpcoming, Price: 80000},
	}
)
