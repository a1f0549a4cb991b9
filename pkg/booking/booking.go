package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/state/timerange"
)

// CurrentSchema versions the persisted record layout.
const CurrentSchema = "v1"

// Status tracks a booking through its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ErrCancelled is returned when changing a booking that was already cancelled.
var ErrCancelled = errors.New("booking: already cancelled")

// Booking is a stored request for a sitter on a date between two times.
type Booking struct {
	Schema   string              `json:"schema,omitempty"`
	ID       string              `json:"id"`
	SitterID string              `json:"sitter"`
	Owner    string              `json:"owner,omitempty"`
	Date     calendar.Date       `json:"date"`
	Start    timerange.TimeOfDay `json:"start"`
	End      timerange.TimeOfDay `json:"end"`
	Notes    string              `json:"notes,omitempty"`
	Status   Status              `json:"status"`
	Created  time.Time           `json:"created"`
}

// FromForm builds a pending booking for sitterID from a submittable form.
func FromForm(f *Form, sitterID, owner string) (*Booking, error) {
	if strings.TrimSpace(sitterID) == "" {
		return nil, errors.New("booking: sitter required")
	}
	if _, _, err := f.Interval(nil); err != nil {
		return nil, err
	}
	return &Booking{
		Schema:   CurrentSchema,
		ID:       uuid.NewString(),
		SitterID: strings.TrimSpace(sitterID),
		Owner:    strings.TrimSpace(owner),
		Date:     *f.Date.Selected(),
		Start:    *f.Times.Start(),
		End:      *f.Times.End(),
		Notes:    strings.TrimSpace(f.Notes),
		Status:   StatusPending,
		Created:  time.Now().UTC(),
	}, nil
}

// Interval returns the booked interval in loc.
func (b *Booking) Interval(loc *time.Location) (time.Time, time.Time) {
	return b.Start.On(b.Date, loc), b.End.On(b.Date, loc)
}

// Overlaps reports whether b and other book the same sitter at overlapping
// times on the same day. Cancelled bookings never overlap.
func (b *Booking) Overlaps(other *Booking) bool {
	if other == nil || b.SitterID != other.SitterID {
		return false
	}
	if b.Status == StatusCancelled || other.Status == StatusCancelled {
		return false
	}
	if !b.Date.Equal(other.Date) {
		return false
	}
	as, ae := b.Interval(nil)
	bs, be := other.Interval(nil)
	return as.Before(be) && bs.Before(ae)
}

// Cancel marks b cancelled.
func (b *Booking) Cancel() error {
	if b.Status == StatusCancelled {
		return ErrCancelled
	}
	b.Status = StatusCancelled
	return nil
}

// Confirm marks a pending booking confirmed.
func (b *Booking) Confirm() error {
	if b.Status == StatusCancelled {
		return ErrCancelled
	}
	b.Status = StatusConfirmed
	return nil
}

// When renders the booked slot for display, e.g. "05 January, 2025 09:00-10:00".
func (b *Booking) When() string {
	d := b.Date
	return fmt.Sprintf("%s %s-%s", calendar.Format(&d), b.Start, b.End)
}

// ShortID returns the first block of the booking ID.
func (b *Booking) ShortID() string {
	if i := strings.IndexByte(b.ID, '-'); i > 0 {
		return b.ID[:i]
	}
	return b.ID
}
