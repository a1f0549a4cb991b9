package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/petsit/pkg/app"
	"tableflip.dev/petsit/pkg/booking"
	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/printers"
)

// List prints one page of stored bookings.
type List struct {
	Service  *app.Service
	SitterID string
	// All includes cancelled bookings.
	All    bool
	Page   int
	Size   int
	Month  string
	ShowID bool
	JSON   bool
	Out    io.Writer
}

type page struct {
	Page     int                `json:"page"`
	Pages    int                `json:"pages"`
	Total    int                `json:"total"`
	Bookings []*booking.Booking `json:"bookings"`
}

func (l *List) Do(ctx context.Context) error {
	out := writer(l.Out)
	filter := app.BookingFilter{SitterID: l.SitterID, IncludeCancelled: l.All}
	if l.Month != "" {
		m, err := ParseMonth(l.Month)
		if err != nil {
			return err
		}
		filter.Month = &m
	}

	items, p, err := l.Service.BookingsPage(ctx, filter, l.Page, l.Size)
	if err != nil {
		return err
	}

	if l.JSON {
		return json.NewEncoder(out).Encode(page{Page: p.Number, Pages: p.Pages(), Total: p.Total, Bookings: items})
	}

	pp := &printers.PrettyPrint{Out: out, ShowID: l.ShowID}
	if filter.Month != nil {
		booked, err := l.Service.BookedDays(ctx, l.SitterID, *filter.Month)
		if err != nil {
			return err
		}
		pp.Month(*filter.Month, booked)
	}
	names, err := sitterNames(ctx, l.Service)
	if err != nil {
		return err
	}
	pp.TitleWithCount("Bookings", p.Total, "booking")
	pp.Bookings(names, items...)
	if p.Pages() > 1 {
		pp.Page(p)
	}
	return nil
}

// Change cancels or confirms one booking. Purge also erases a cancelled
// booking from the store.
type Change struct {
	Service *app.Service
	ID      string
	Confirm bool
	Purge   bool
	JSON    bool
	Out     io.Writer
}

func (c *Change) Do(ctx context.Context) error {
	var (
		b    *booking.Booking
		err  error
		verb = "Cancelled"
	)
	switch {
	case c.Confirm:
		verb = "Confirmed"
		b, err = c.Service.Confirm(ctx, c.ID)
	case c.Purge:
		verb = "Purged"
		b, err = c.Service.Purge(ctx, c.ID)
	default:
		b, err = c.Service.Cancel(ctx, c.ID)
	}
	if err != nil {
		return err
	}
	out := writer(c.Out)
	if c.JSON {
		return json.NewEncoder(out).Encode(b)
	}
	names, err := sitterNames(ctx, c.Service)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{Out: out}
	pp.Booked(verb, names[b.SitterID], b)
	return nil
}

// ParseMonth accepts "2025-01", "2025-1" or "January 2025".
func ParseMonth(s string) (calendar.Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-1", s); err == nil {
		return calendar.DateOf(t), nil
	}
	if d, ok := calendar.ParseMonth(s); ok {
		return d, nil
	}
	return calendar.Date{}, fmt.Errorf("bookings: unknown month %q, want 2025-01 or \"January 2025\"", s)
}

func sitterNames(ctx context.Context, svc *app.Service) (map[string]string, error) {
	sitters, err := svc.Sitters(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(sitters))
	for _, s := range sitters {
		names[s.ID] = s.Name
	}
	return names, nil
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
