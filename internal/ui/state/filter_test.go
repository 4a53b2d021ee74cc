package state

import (
	"reflect"
	"testing"
)

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	list := newTestList("one", "two", "three")
	list.Cursor = 2
	list.SetFilter("two")

	if list.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", list.Filter)
	}
	if list.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", list.Cursor)
	}
	if len(list.Rows) != 1 || list.Rows[0].ID != "two" {
		t.Fatalf("expected filtered rows to contain only 'two', got %#v", list.Rows)
	}

	list.SetFilter("")
	if list.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", list.Cursor)
	}
	if list.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", list.LastCursor)
	}
}

func TestUpdateRowsReappliesFilter(t *testing.T) {
	list := newTestList("Mai", "Lật Mặt 7")
	list.SetFilter("mai")
	list.UpdateRows([]Row{{ID: "1", Label: "Mai"}, {ID: "2", Label: "Đào, Phở và Piano"}, {ID: "3", Label: "Mai Anh"}})
	if len(list.Rows) != 2 {
		t.Fatalf("expected filter to survive refresh, got %#v", list.Rows)
	}
	if len(list.Full) != 3 {
		t.Fatalf("expected full rows kept, got %d", len(list.Full))
	}
}

func TestFilterRowsAndClone(t *testing.T) {
	rows := []Row{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	filtered := FilterRows(rows, "alp")
	if len(filtered) != 1 || filtered[0].Label != "Alpha" {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}
	filtered = FilterRows(rows, "ta")
	if len(filtered) != 1 || filtered[0].Label != "Beta" {
		t.Fatalf("expected match for Beta, got %#v", filtered)
	}

	clone := CloneRows(rows)
	if &clone[0] == &rows[0] {
		t.Fatal("expected clone to allocate new backing array")
	}

	filtered[0].Label = "changed"
	if rows[1].Label != "Beta" {
		t.Fatal("expected original slice to remain unchanged")
	}

	if len(FilterRows(rows, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
}

func TestBestMatchIndex(t *testing.T) {
	rows := []Row{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}

	if idx := BestMatchIndex(rows, "Second"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(rows, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(rows, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestSetFilterSelectsFuzzyMatch(t *testing.T) {
	rows := []Row{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	list := NewList("movies", rows)
	list.SetFilter("alp")
	if list.Cursor != 0 {
		t.Fatalf("expected fuzzy match to select first row, got %d", list.Cursor)
	}
	if !reflect.DeepEqual(list.Rows, []Row{{ID: "1", Label: "Alpha"}}) {
		t.Fatalf("expected filtered rows to contain Alpha, got %#v", list.Rows)
	}
}
