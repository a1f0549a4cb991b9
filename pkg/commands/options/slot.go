package options

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/state/timerange"
	"tableflip.dev/petsit/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// SlotOptions selects the sitter and time of a booking.
type SlotOptions struct {
	Sitter string
	Owner  string
	Date   string
	Start  string
	End    string
	For    string
	Notes  string
}

func AddSlotArgs(cmd *cobra.Command, o *SlotOptions) {
	cmd.Flags().StringVar(&o.Sitter, "sitter", "",
		"ID of the sitter to book, see `petsit sitters`.")
	cmd.Flags().StringVar(&o.Owner, "owner", "",
		"Name of the pet owner making the booking.")
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Day of the booking, example: --date="2025-1-5" or --date="1/5".`)
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start time, example: --start=09:00.`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`End time, example: --end=10:30.`)
	cmd.Flags().StringVar(&o.For, "for", "",
		`Visit length used instead of --end, example: --for=1h30m.`)
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Notes for the sitter.")
}

// Complete reports whether every flag needed for a non-interactive booking
// was given.
func (o *SlotOptions) Complete() bool {
	return o.Sitter != "" && o.Date != "" && o.Start != "" && (o.End != "" || o.For != "")
}

// Empty reports whether no slot flag was given.
func (o *SlotOptions) Empty() bool {
	return o.Date == "" && o.Start == "" && o.End == "" && o.For == ""
}

// GetDate parses the --date flag relative to now.
func (o *SlotOptions) GetDate(now time.Time) (calendar.Date, error) {
	return ParseDay(o.Date, now)
}

// GetTimes parses the --start and --end flags. Without --end the end is
// --start plus --for.
func (o *SlotOptions) GetTimes() (timerange.TimeOfDay, timerange.TimeOfDay, error) {
	start, err := timerange.ParseTimeOfDay(o.Start)
	if err != nil {
		return timerange.TimeOfDay{}, timerange.TimeOfDay{}, err
	}
	if o.End == "" {
		end, err := endAfter(start, o.For)
		if err != nil {
			return timerange.TimeOfDay{}, timerange.TimeOfDay{}, err
		}
		return start, end, nil
	}
	end, err := timerange.ParseTimeOfDay(o.End)
	if err != nil {
		return timerange.TimeOfDay{}, timerange.TimeOfDay{}, err
	}
	return start, end, nil
}

// endAfter adds the --for length to start. Visits stay within one day.
func endAfter(start timerange.TimeOfDay, length string) (timerange.TimeOfDay, error) {
	d, label, err := timeutil.ParseLength(length)
	if err != nil {
		return timerange.TimeOfDay{}, err
	}
	minutes := timeutil.Minutes(d)
	if start.Hour*60+start.Minute+minutes >= 24*60 {
		return timerange.TimeOfDay{}, fmt.Errorf("options: a %s visit starting at %s runs past midnight", label, start)
	}
	return start.Add(minutes), nil
}

// PartialSlot is whatever part of a slot the flags named.
type PartialSlot struct {
	Date  *calendar.Date
	Start *timerange.TimeOfDay
	End   *timerange.TimeOfDay
}

// Partial parses the slot flags that were given, leaving the rest nil.
// --for needs --start to place its end.
func (o *SlotOptions) Partial(now time.Time) (PartialSlot, error) {
	var p PartialSlot
	if o.Date != "" {
		d, err := ParseDay(o.Date, now)
		if err != nil {
			return PartialSlot{}, err
		}
		p.Date = &d
	}
	if o.Start != "" {
		start, err := timerange.ParseTimeOfDay(o.Start)
		if err != nil {
			return PartialSlot{}, err
		}
		p.Start = &start
	}
	switch {
	case o.End != "":
		end, err := timerange.ParseTimeOfDay(o.End)
		if err != nil {
			return PartialSlot{}, err
		}
		p.End = &end
	case o.For != "" && p.Start == nil:
		return PartialSlot{}, errors.New("options: --for needs --start")
	case o.For != "":
		end, err := endAfter(*p.Start, o.For)
		if err != nil {
			return PartialSlot{}, err
		}
		p.End = &end
	}
	return p, nil
}

// ParseDay accepts "2025-1-5" or "1/5". A short date without a year that has
// already passed this year means next year.
func ParseDay(s string, now time.Time) (calendar.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return calendar.Date{}, errors.New("options: date required")
	}
	if t, err := time.Parse(layoutISO, s); err == nil {
		return calendar.DateOf(t), nil
	}
	t, err := time.Parse(layoutISOShort, s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("options: parse date %q: %w", s, err)
	}
	d := calendar.NewDate(now.Year(), t.Month(), t.Day())
	if d.Before(calendar.DateOf(now)) {
		d = calendar.NewDate(now.Year()+1, t.Month(), t.Day())
	}
	return d, nil
}
