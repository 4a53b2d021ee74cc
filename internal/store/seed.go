package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Fixture is the YAML document accepted by Seed.
//
//	movies:
//	  - id: 1
//	    title: Mai
//	rooms:
//	  - id: 1
//	    name: P1
//	    movie: Mai
//	    status: Đang chiếu
//	    price: 90000
//	tickets:
//	  - customer: 7
//	    movie: 1
//	    room: 1
//	    seat: A5
//	    price: 90000
//	    booked_at: 2024-05-01T19:30:00+07:00
type Fixture struct {
	Movies  []FixtureMovie  `yaml:"movies"`
	Rooms   []FixtureRoom   `yaml:"rooms"`
	Tickets []FixtureTicket `yaml:"tickets"`
}

type FixtureMovie struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Poster      string `yaml:"poster"`
}

type FixtureRoom struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name"`
	Movie  string  `yaml:"movie"`
	Status string  `yaml:"status"`
	Price  float64 `yaml:"price"`
}

type FixtureTicket struct {
	ID       int       `yaml:"id"`
	Customer int       `yaml:"customer"`
	Movie    int       `yaml:"movie"`
	Room     int       `yaml:"room"`
	Seat     string    `yaml:"seat"`
	Price    float64   `yaml:"price"`
	BookedAt time.Time `yaml:"booked_at"`
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	for i, m := range f.Movies {
		if m.Title == "" {
			return Fixture{}, fmt.Errorf("parse fixture: movie %d has no title", i)
		}
	}
	for i, r := range f.Rooms {
		if r.Name == "" {
			return Fixture{}, fmt.Errorf("parse fixture: room %d has no name", i)
		}
	}
	return f, nil
}

// Seed upserts the fixture in one transaction.
func (s *Store) Seed(ctx context.Context, f Fixture) error {
	return s.withConn(ctx, "seed", func(conn *sqlite.Conn) (err error) {
		endFn, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return err
		}
		defer endFn(&err)

		for _, m := range f.Movies {
			if err = sqlitex.Execute(conn,
				`INSERT OR REPLACE INTO movies (id, title, description, poster) VALUES (?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{int64(m.ID), m.Title, m.Description, m.Poster}}); err != nil {
				return fmt.Errorf("movie %q: %w", m.Title, err)
			}
		}
		for _, r := range f.Rooms {
			var movie any
			if r.Movie != "" {
				movie = r.Movie
			}
			if err = sqlitex.Execute(conn,
				`INSERT OR REPLACE INTO rooms (id, name, movie_title, status, price) VALUES (?, ?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{int64(r.ID), r.Name, movie, r.Status, r.Price}}); err != nil {
				return fmt.Errorf("room %q: %w", r.Name, err)
			}
		}
		for _, t := range f.Tickets {
			var id any
			if t.ID > 0 {
				id = int64(t.ID)
			}
			if err = sqlitex.Execute(conn,
				`INSERT OR REPLACE INTO tickets (id, customer_id, movie_id, room_id, seat_number, price, booked_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{id, int64(t.Customer), int64(t.Movie), int64(t.Room), t.Seat, t.Price, t.BookedAt.Unix()}}); err != nil {
				return fmt.Errorf("ticket %s: %w", t.Seat, err)
			}
		}
		return nil
	})
}
