// Package timerange tracks the start and end time of a booking and derives
// whether the pair forms a usable range.
package timerange

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/state"
)

// TimeOfDay is an hour and minute on an unspecified day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// At returns a pointer to the time of day hour:minute.
func At(hour, minute int) *TimeOfDay {
	return &TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay parses "15:04" formatted input.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("timerange: parse time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String renders t as "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On places t on day d in loc. A nil loc means UTC.
func (t TimeOfDay) On(d calendar.Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

// Add returns t shifted by delta minutes, wrapping around midnight.
func (t TimeOfDay) Add(delta int) TimeOfDay {
	m := ((t.Hour*60+t.Minute+delta)%(24*60) + 24*60) % (24 * 60)
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// referenceDay pins both ends of a range to the same day so comparisons only
// consider hour and minute.
var referenceDay = calendar.NewDate(2000, time.January, 1)

// Status classifies a range.
type Status int

const (
	// StatusIncomplete means at least one end is not set yet.
	StatusIncomplete Status = iota
	// StatusMisordered means both ends are set but start is not before end.
	StatusMisordered
	// StatusValid means start is strictly before end.
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusMisordered:
		return "misordered"
	case StatusValid:
		return "valid"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Snapshot is a copy of the state after a mutation.
type Snapshot struct {
	Start *TimeOfDay
	End   *TimeOfDay
	Valid bool
}

// State holds a start and end time.
type State struct {
	start *TimeOfDay
	end   *TimeOfDay

	notifier state.Notifier[Snapshot]
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// SetStart sets the start time. Nil clears it.
func (s *State) SetStart(t *TimeOfDay) {
	s.start = clone(t)
	s.notify()
}

// SetEnd sets the end time. Nil clears it. End may be set before start.
func (s *State) SetEnd(t *TimeOfDay) {
	s.end = clone(t)
	s.notify()
}

// Start returns a copy of the start time, or nil.
func (s *State) Start() *TimeOfDay { return clone(s.start) }

// End returns a copy of the end time, or nil.
func (s *State) End() *TimeOfDay { return clone(s.end) }

// IsValid reports whether both ends are set and start is strictly before end.
func (s *State) IsValid() bool {
	return s.Status() == StatusValid
}

// Status classifies the current pair.
func (s *State) Status() Status {
	if s.start == nil || s.end == nil {
		return StatusIncomplete
	}
	if !s.start.On(referenceDay, nil).Before(s.end.On(referenceDay, nil)) {
		return StatusMisordered
	}
	return StatusValid
}

// Duration returns the length of a valid range, or zero.
func (s *State) Duration() time.Duration {
	if !s.IsValid() {
		return 0
	}
	return s.end.On(referenceDay, nil).Sub(s.start.On(referenceDay, nil))
}

// Snapshot returns the current values.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Start: s.Start(), End: s.End(), Valid: s.IsValid()}
}

// Subscribe registers fn to be called after every mutation.
func (s *State) Subscribe(fn func(Snapshot)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}

func (s *State) notify() {
	s.notifier.Notify(s.Snapshot())
}

func clone(t *TimeOfDay) *TimeOfDay {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
