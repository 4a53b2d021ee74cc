package format

import (
	"testing"
	"time"
)

func TestPrice(t *testing.T) {
	cases := map[float64]string{
		0:         "0 VND",
		90000:     "90,000 VND",
		1234567.6: "1,234,568 VND",
	}
	for in, want := range cases {
		if got := Price(in); got != want {
			t.Fatalf("Price(%v): expected %q, got %q", in, want, got)
		}
	}
}

func TestTimestamps(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 5, 2, 0, time.UTC)
	if got := Clock(ts); got != "07/03/2024 09:05:02" {
		t.Fatalf("unexpected clock %q", got)
	}
	if got := BookedAt(ts); got != "07/03/2024 09:05" {
		t.Fatalf("unexpected booking time %q", got)
	}
}
