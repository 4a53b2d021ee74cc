// Package format renders prices and timestamps the way the ticket screen
// shows them.
package format

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	clockLayout   = "02/01/2006 15:04:05"
	bookingLayout = "02/01/2006 15:04"
)

// Price renders a VND amount with thousands separators, e.g. "90,000 VND".
func Price(amount float64) string {
	return humanize.Comma(int64(math.Round(amount))) + " VND"
}

// Clock renders the header clock.
func Clock(t time.Time) string {
	return t.Format(clockLayout)
}

// BookedAt renders a booking timestamp.
func BookedAt(t time.Time) string {
	return t.Format(bookingLayout)
}
