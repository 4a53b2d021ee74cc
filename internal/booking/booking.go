// Package booking holds the customer-facing ticket domain: movies, rooms,
// booking history and the collaborator interfaces the screen fetches them
// through.
package booking

import (
	"context"
	"time"
)

// Movie is a catalog entry.
type Movie struct {
	ID          int
	Title       string
	Description string
	Poster      string
}

// RoomStatus is the screening status reported for a room.
type RoomStatus string

const (
	StatusShowing  RoomStatus = "Đang chiếu"
	StatusUpcoming RoomStatus = "Chuẩn bị chiếu"
	StatusClosed   RoomStatus = "Đã đóng"
)

// Bookable reports whether tickets can be sold for a room in this status.
func (s RoomStatus) Bookable() bool {
	return s == StatusShowing || s == StatusUpcoming
}

// Room describes a screening room and the movie currently assigned to it.
type Room struct {
	ID         int
	Name       string
	MovieTitle string
	Status     RoomStatus
	Price      float64
}

// Bookable reports whether the room accepts bookings.
func (r Room) Bookable() bool {
	return r.Status.Bookable()
}

// RoomForMovie returns the first room showing the movie, matched by title.
func RoomForMovie(rooms []Room, movie Movie) (Room, bool) {
	for _, room := range rooms {
		if room.MovieTitle != "" && room.MovieTitle == movie.Title {
			return room, true
		}
	}
	return Room{}, false
}

// Record is one line of a customer's booking history.
type Record struct {
	MovieTitle string
	RoomName   string
	SeatNumber string
	Price      float64
	BookedAt   time.Time
}

// Catalog lists the movies on sale.
type Catalog interface {
	ListMovies(ctx context.Context) ([]Movie, error)
}

// RoomLister lists screening rooms with their status and price.
type RoomLister interface {
	ListRooms(ctx context.Context) ([]Room, error)
}

// HistoryLister lists the bookings made by a customer.
type HistoryLister interface {
	ListBookingHistory(ctx context.Context, customerID int) ([]Record, error)
}

// Launcher hands a booking off to the seat-selection workflow.
type Launcher interface {
	Launch(ctx context.Context, customerID, roomID, movieID int) error
}

// Services bundles the collaborators used by the customer screen.
type Services struct {
	Catalog  Catalog
	Rooms    RoomLister
	History  HistoryLister
	Launcher Launcher
}
