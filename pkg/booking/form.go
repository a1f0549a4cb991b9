// Package booking composes date and time selection into a submittable
// booking and defines the persisted booking record.
package booking

import (
	"errors"
	"time"

	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/state/dateselect"
	"tableflip.dev/petsit/pkg/state/timerange"
)

var (
	// ErrIncomplete is returned when a date or either time is missing.
	ErrIncomplete = errors.New("booking: date and time range required")
	// ErrInvalidRange is returned when the end time is not after the start time.
	ErrInvalidRange = errors.New("booking: end time must be after start time")
)

// Validation describes what the form still needs before it can be submitted.
type Validation int

const (
	// Ready means the form can be submitted.
	Ready Validation = iota
	// PromptDate means no date has been picked yet.
	PromptDate
	// PromptTimes means one or both times are missing.
	PromptTimes
	// Misordered means both times are set but the end is not after the start.
	Misordered
)

// Message returns the text shown next to the form.
func (v Validation) Message() string {
	switch v {
	case Ready:
		return "Ready to book"
	case PromptDate:
		return "Pick a date"
	case PromptTimes:
		return "Pick a start and end time"
	case Misordered:
		return "End time must be after start time"
	}
	return ""
}

// IsError reports whether v should be presented as an error rather than a
// prompt.
func (v Validation) IsError() bool {
	return v == Misordered
}

// Form pairs a booking date selection with a time range.
type Form struct {
	Date  *dateselect.State
	Times *timerange.State
	// Notes is free text for the sitter; it never affects validation.
	Notes string
}

// NewForm returns an empty form using the booking date configuration.
func NewForm() *Form {
	return &Form{
		Date:  dateselect.NewBooking(),
		Times: timerange.New(),
	}
}

// Validation reports the form's current validation state. A misordered range
// takes precedence over a missing date so the error shows as soon as it exists.
func (f *Form) Validation() Validation {
	switch f.Times.Status() {
	case timerange.StatusMisordered:
		return Misordered
	case timerange.StatusIncomplete:
		if f.Date.Selected() == nil {
			return PromptDate
		}
		return PromptTimes
	}
	if f.Date.Selected() == nil {
		return PromptDate
	}
	return Ready
}

// CanSubmit reports whether a date is selected and the time range is valid.
func (f *Form) CanSubmit() bool {
	return f.Date.Selected() != nil && f.Times.IsValid()
}

// Interval returns the booked interval on the selected date in loc.
func (f *Form) Interval(loc *time.Location) (time.Time, time.Time, error) {
	d := f.Date.Selected()
	start, end := f.Times.Start(), f.Times.End()
	if d == nil || start == nil || end == nil {
		return time.Time{}, time.Time{}, ErrIncomplete
	}
	if !f.Times.IsValid() {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start.On(*d, loc), end.On(*d, loc), nil
}

// Reset clears the date selection, both times and the notes.
func (f *Form) Reset() {
	f.Notes = ""
	f.Date.Select(nil)
	f.Times.SetStart(nil)
	f.Times.SetEnd(nil)
}

// Clone returns an independent form with the same date, times, visible
// month and notes. Listeners are not copied.
func (f *Form) Clone() *Form {
	out := NewForm()
	if vm := f.Date.VisibleMonth(); vm != nil {
		out.Date.SetVisibleMonth(vm)
	}
	if d := f.Date.Selected(); d != nil {
		out.Date.Select(d)
	}
	out.Times.SetStart(f.Times.Start())
	out.Times.SetEnd(f.Times.End())
	out.Notes = f.Notes
	return out
}

// Fill sets every field at once; used by non-interactive callers.
func (f *Form) Fill(d calendar.Date, start, end timerange.TimeOfDay) {
	f.Date.Select(&d)
	f.Times.SetStart(&start)
	f.Times.SetEnd(&end)
}
