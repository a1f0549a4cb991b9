package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/petsit/pkg/app"
	"tableflip.dev/petsit/pkg/booking"
	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/printers"
	"tableflip.dev/petsit/pkg/sitter"
	"tableflip.dev/petsit/pkg/state/timerange"
	"tableflip.dev/petsit/pkg/state/viewmode"
	"tableflip.dev/petsit/pkg/tui/bookingform"
	"tableflip.dev/petsit/pkg/tui/sitterview"
)

// ErrAborted is returned when the interactive screen closes without a booking.
var ErrAborted = errors.New("book: no booking made")

// Slot is a fully specified booking request.
type Slot struct {
	Date  calendar.Date
	Start timerange.TimeOfDay
	End   timerange.TimeOfDay
}

// Book creates a booking either from Slot or through the booking screen.
type Book struct {
	Service  *app.Service
	SitterID string
	Owner    string
	Notes    string
	// Slot books without a screen when set.
	Slot *Slot
	// Draft seeds the booking screen when Slot is nil. Notes fills its notes
	// when Draft has none.
	Draft bookingform.Prefill
	// Today seeds the booking screen's calendar.
	Today calendar.Date
	// View is the sitter browser mode used when no sitter was given.
	View viewmode.Mode
	JSON bool
	Out  io.Writer
}

func (b *Book) Do(ctx context.Context) error {
	var (
		made *booking.Booking
		who  sitter.Sitter
		err  error
	)
	if b.Slot != nil {
		made, who, err = b.direct(ctx)
	} else {
		made, who, err = b.interactive(ctx)
	}
	if err != nil {
		return err
	}

	out := b.Out
	if out == nil {
		out = color.Output
	}
	if b.JSON {
		return json.NewEncoder(out).Encode(made)
	}
	pp := &printers.PrettyPrint{Out: out}
	pp.Booked("Booked", who.Name, made)
	return nil
}

func (b *Book) direct(ctx context.Context) (*booking.Booking, sitter.Sitter, error) {
	who, err := b.Service.Sitter(ctx, b.SitterID)
	if err != nil {
		return nil, sitter.Sitter{}, err
	}
	form := booking.NewForm()
	form.Fill(b.Slot.Date, b.Slot.Start, b.Slot.End)
	form.Notes = b.Notes
	made, err := b.Service.Book(ctx, form, who.ID, b.Owner)
	if err != nil {
		return nil, who, err
	}
	return made, who, nil
}

func (b *Book) interactive(ctx context.Context) (*booking.Booking, sitter.Sitter, error) {
	var who sitter.Sitter
	if b.SitterID != "" {
		found, err := b.Service.Sitter(ctx, b.SitterID)
		if err != nil {
			return nil, who, err
		}
		who = found
	} else {
		all, err := b.Service.Sitters(ctx, "")
		if err != nil {
			return nil, who, err
		}
		if len(all) == 0 {
			return nil, who, fmt.Errorf("%w: no sitters stored, run `petsit demo` first", app.ErrUnknownSitter)
		}
		chosen, err := sitterview.Run(all, viewmode.New(b.View))
		if err != nil {
			return nil, who, err
		}
		if chosen == nil {
			return nil, who, ErrAborted
		}
		who = *chosen
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	draft := b.Draft
	if draft.Notes == "" {
		draft.Notes = b.Notes
	}
	made, err := bookingform.Run(b.Service, bookingform.Config{
		Sitter:  who,
		Owner:   b.Owner,
		Today:   b.Today,
		Changes: b.bookingChanges(watchCtx),
		Prefill: draft,
	})
	if err != nil {
		return nil, who, err
	}
	if made == nil {
		return nil, who, ErrAborted
	}
	return made, who, nil
}

// bookingChanges watches the store for the booking screen. The screen still
// works without live updates, so a failed watch is only logged.
func (b *Book) bookingChanges(ctx context.Context) <-chan struct{} {
	changes, err := b.Service.BookingChanges(ctx)
	if err != nil {
		b.Service.Log().Warn("live booking updates unavailable", zap.Error(err))
		return nil
	}
	return changes
}
