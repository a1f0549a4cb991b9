package booking

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/state/timerange"
)

func filledForm(day int, start, end int) *Form {
	f := NewForm()
	f.Fill(calendar.NewDate(2025, time.January, day), timerange.TimeOfDay{Hour: start}, timerange.TimeOfDay{Hour: end})
	return f
}

func TestFromForm(t *testing.T) {
	b, err := FromForm(filledForm(5, 9, 10), " sitter-1 ", "Sam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID == "" || b.SitterID != "sitter-1" || b.Status != StatusPending || b.Schema != CurrentSchema {
		t.Fatalf("unexpected booking %+v", b)
	}
	if b.When() != "05 January, 2025 09:00-10:00" {
		t.Fatalf("unexpected When %q", b.When())
	}
	if len(b.ShortID()) != 8 {
		t.Fatalf("unexpected short id %q", b.ShortID())
	}
}

func TestFromFormRejectsIncompleteForm(t *testing.T) {
	if _, err := FromForm(NewForm(), "sitter-1", ""); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if _, err := FromForm(filledForm(5, 9, 10), "  ", ""); err == nil {
		t.Fatalf("expected error for missing sitter")
	}
}

func TestOverlaps(t *testing.T) {
	a, _ := FromForm(filledForm(5, 9, 11), "s1", "")
	b, _ := FromForm(filledForm(5, 10, 12), "s1", "")
	c, _ := FromForm(filledForm(5, 11, 12), "s1", "")
	d, _ := FromForm(filledForm(6, 9, 11), "s1", "")
	e, _ := FromForm(filledForm(5, 9, 11), "s2", "")

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatalf("expected overlap for 9-11 and 10-12")
	}
	if a.Overlaps(c) {
		t.Fatalf("adjacent ranges must not overlap")
	}
	if a.Overlaps(d) || a.Overlaps(e) || a.Overlaps(nil) {
		t.Fatalf("different day or sitter must not overlap")
	}
	_ = b.Cancel()
	if a.Overlaps(b) {
		t.Fatalf("cancelled booking must not overlap")
	}
}

func TestLifecycle(t *testing.T) {
	b, _ := FromForm(filledForm(5, 9, 10), "s1", "")
	if err := b.Confirm(); err != nil || b.Status != StatusConfirmed {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := b.Cancel(); err != nil || b.Status != StatusCancelled {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := b.Cancel(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if err := b.Confirm(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled on confirm, got %v", err)
	}
}

func TestJSONLayout(t *testing.T) {
	b, _ := FromForm(filledForm(5, 9, 10), "s1", "Sam")
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["date"] != "2025-01-05" || raw["start"] != "09:00" || raw["end"] != "10:00" {
		t.Fatalf("unexpected wire layout %s", data)
	}
	var out Booking
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(*b, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
