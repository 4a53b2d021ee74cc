package booking

import (
	"fmt"
	"sort"
	"strings"
)

// SortOrder selects how booking history is ordered.
type SortOrder int

const (
	SortNewest SortOrder = iota
	SortOldest
	SortPriceHigh
	SortPriceLow
)

var sortLabels = map[SortOrder]string{
	SortNewest:    "Mới nhất",
	SortOldest:    "Cũ nhất",
	SortPriceHigh: "Giá cao",
	SortPriceLow:  "Giá thấp",
}

// SortOrders lists every order in the sequence the screen cycles through.
func SortOrders() []SortOrder {
	return []SortOrder{SortNewest, SortOldest, SortPriceHigh, SortPriceLow}
}

func (o SortOrder) String() string {
	if label, ok := sortLabels[o]; ok {
		return label
	}
	return fmt.Sprintf("SortOrder(%d)", int(o))
}

// Next returns the order after o, wrapping around.
func (o SortOrder) Next() SortOrder {
	orders := SortOrders()
	for i, candidate := range orders {
		if candidate == o {
			return orders[(i+1)%len(orders)]
		}
	}
	return SortNewest
}

// ParseSortOrder accepts either the display label or a short keyword
// (newest, oldest, price-high, price-low).
func ParseSortOrder(value string) (SortOrder, error) {
	trimmed := strings.TrimSpace(value)
	for order, label := range sortLabels {
		if strings.EqualFold(trimmed, label) {
			return order, nil
		}
	}
	switch strings.ToLower(trimmed) {
	case "", "newest":
		return SortNewest, nil
	case "oldest":
		return SortOldest, nil
	case "price-high":
		return SortPriceHigh, nil
	case "price-low":
		return SortPriceLow, nil
	}
	return SortNewest, fmt.Errorf("unknown sort order %q", value)
}

// SortRecords orders records in place. Ties keep their fetched order.
func SortRecords(records []Record, order SortOrder) {
	var less func(a, b Record) bool
	switch order {
	case SortOldest:
		less = func(a, b Record) bool { return a.BookedAt.Before(b.BookedAt) }
	case SortPriceHigh:
		less = func(a, b Record) bool { return a.Price > b.Price }
	case SortPriceLow:
		less = func(a, b Record) bool { return a.Price < b.Price }
	default:
		less = func(a, b Record) bool { return a.BookedAt.After(b.BookedAt) }
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}
