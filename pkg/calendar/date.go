// Package calendar provides timezone-naive calendar dates and helpers for
// rendering them.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutISO     = "2006-01-02"
	layoutDisplay = "02 January, 2006"
)

// Date is a calendar date without a time-of-day or location. The zero value
// is not a valid date; absence is represented by a nil *Date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the normalized date for year, month and day. Out of range
// values roll over the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current date in the local timezone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO "2006-01-02" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(layoutISO, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("calendar: parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Ptr returns a pointer to a copy of d.
func (d Date) Ptr() *Date {
	return &d
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight of d in loc. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// String renders d in ISO form.
func (d Date) String() string {
	return d.Time(nil).Format(layoutISO)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time(nil).Before(other.Time(nil))
}

// Equal reports whether d and other name the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(nil).AddDate(0, 0, n))
}

// AddMonths returns the first of the month n months away from d.
func (d Date) AddMonths(n int) Date {
	return DateOf(d.FirstOfMonth().Time(nil).AddDate(0, n, 0))
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// SameMonth reports whether d and other fall in the same month of the same year.
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// MarshalText implements encoding.TextMarshaler using the ISO form.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Format renders d for display as "DD Month, YYYY", for example
// "05 January, 2025". A nil date renders as the empty string.
func Format(d *Date) string {
	if d == nil {
		return ""
	}
	return d.Time(nil).Format(layoutDisplay)
}

// DaysIn returns the number of days in d's month.
func DaysIn(d Date) int {
	return d.FirstOfMonth().AddMonths(1).AddDays(-1).Day
}
