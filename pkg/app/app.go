package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/petsit/pkg/booking"
	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/paging"
	"tableflip.dev/petsit/pkg/sitter"
	"tableflip.dev/petsit/pkg/store"
)

// Service provides high-level operations for sitters and bookings.
// It wraps persistence so the TUI and the CLI can share logic.
type Service struct {
	Persistence store.Persistence
	Logger      *zap.Logger

	// bookMu holds the overlap check and the write of a booking together.
	bookMu sync.Mutex
}

var (
	ErrNoPersistence  = errors.New("app: no persistence configured")
	ErrUnknownSitter  = errors.New("app: sitter not found")
	ErrConflict       = errors.New("app: sitter already booked at that time")
	ErrNotSubmittable = errors.New("app: booking form is not complete")
)

// Log returns the service logger, or a no-op logger when none is set.
func (s *Service) Log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Sitters lists stored sitters, optionally filtered by city.
func (s *Service) Sitters(ctx context.Context, city string) ([]sitter.Sitter, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	all, err := s.Persistence.Sitters(ctx)
	if err != nil {
		return nil, err
	}
	return sitter.Filter(all, city), nil
}

// Sitter returns the sitter with id.
func (s *Service) Sitter(ctx context.Context, id string) (sitter.Sitter, error) {
	all, err := s.Sitters(ctx, "")
	if err != nil {
		return sitter.Sitter{}, err
	}
	found, ok := sitter.Find(all, strings.TrimSpace(id))
	if !ok {
		return sitter.Sitter{}, fmt.Errorf("%w: %q", ErrUnknownSitter, id)
	}
	return found, nil
}

// SeedDemo stores the demo sitter directory and returns how many sitters
// were written.
func (s *Service) SeedDemo(ctx context.Context) (int, error) {
	if s.Persistence == nil {
		return 0, ErrNoPersistence
	}
	demo := sitter.Demo()
	for _, sit := range demo {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := s.Persistence.StoreSitter(sit); err != nil {
			return 0, err
		}
	}
	s.Log().Info("seeded demo sitters", zap.Int("count", len(demo)))
	return len(demo), nil
}

// Book turns a submittable form into a stored pending booking. It refuses
// forms that are incomplete or misordered, unknown sitters, and slots that
// overlap an existing booking for the same sitter.
func (s *Service) Book(ctx context.Context, form *booking.Form, sitterID, owner string) (*booking.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if form == nil || !form.CanSubmit() {
		if form != nil && form.Validation().IsError() {
			return nil, booking.ErrInvalidRange
		}
		return nil, ErrNotSubmittable
	}
	if _, err := s.Sitter(ctx, sitterID); err != nil {
		return nil, err
	}
	b, err := booking.FromForm(form, sitterID, owner)
	if err != nil {
		return nil, err
	}
	s.bookMu.Lock()
	defer s.bookMu.Unlock()
	existing, err := s.Persistence.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if b.Overlaps(other) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, other.When())
		}
	}
	if err := s.Persistence.StoreBooking(b); err != nil {
		return nil, err
	}
	s.Log().Info("booked sitter",
		zap.String("id", b.ID),
		zap.String("sitter", b.SitterID),
		zap.String("when", b.When()))
	return b, nil
}

// BookingFilter narrows Bookings results.
type BookingFilter struct {
	SitterID         string
	IncludeCancelled bool
	// Month keeps only bookings in the month containing it.
	Month *calendar.Date
}

// Bookings returns stored bookings matching f in date order.
func (s *Service) Bookings(ctx context.Context, f BookingFilter) ([]*booking.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	all, err := s.Persistence.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*booking.Booking, 0, len(all))
	for _, b := range all {
		if f.SitterID != "" && b.SitterID != f.SitterID {
			continue
		}
		if !f.IncludeCancelled && b.Status == booking.StatusCancelled {
			continue
		}
		if f.Month != nil && !b.Date.SameMonth(*f.Month) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// BookingsPage returns one page of Bookings along with the clamped page.
func (s *Service) BookingsPage(ctx context.Context, f BookingFilter, page, size int) ([]*booking.Booking, paging.Page, error) {
	all, err := s.Bookings(ctx, f)
	if err != nil {
		return nil, paging.Page{}, err
	}
	p := paging.New(page, size, len(all))
	return paging.Slice(all, p), p, nil
}

// BookedDays reports which days of month already hold an active booking for
// sitterID.
func (s *Service) BookedDays(ctx context.Context, sitterID string, month calendar.Date) (map[int]bool, error) {
	all, err := s.Bookings(ctx, BookingFilter{SitterID: sitterID, Month: &month})
	if err != nil {
		return nil, err
	}
	days := make(map[int]bool)
	for _, b := range all {
		days[b.Date.Day] = true
	}
	return days, nil
}

// Cancel cancels the booking whose ID or unique ID prefix is id.
func (s *Service) Cancel(ctx context.Context, id string) (*booking.Booking, error) {
	return s.transition(ctx, id, (*booking.Booking).Cancel)
}

// Confirm confirms the booking whose ID or unique ID prefix is id.
func (s *Service) Confirm(ctx context.Context, id string) (*booking.Booking, error) {
	return s.transition(ctx, id, (*booking.Booking).Confirm)
}

func (s *Service) transition(ctx context.Context, id string, apply func(*booking.Booking) error) (*booking.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	b, err := s.Persistence.Booking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(b); err != nil {
		return nil, err
	}
	if err := s.Persistence.StoreBooking(b); err != nil {
		return nil, err
	}
	s.Log().Info("booking status changed", zap.String("id", b.ID), zap.String("status", string(b.Status)))
	return b, nil
}

// Purge cancels the booking whose ID or unique ID prefix is id, if it is not
// already cancelled, and erases it from the store.
func (s *Service) Purge(ctx context.Context, id string) (*booking.Booking, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	b, err := s.Persistence.Booking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusCancelled {
		if err := b.Cancel(); err != nil {
			return nil, err
		}
	}
	if err := s.Persistence.DeleteBooking(b); err != nil {
		return nil, err
	}
	s.Log().Info("booking purged", zap.String("id", b.ID))
	return b, nil
}

// BookingChanges signals whenever stored bookings change, including writes
// from another process using the same store. The channel is nil when the
// store cannot watch, and closes when ctx is done.
func (s *Service) BookingChanges(ctx context.Context) (<-chan struct{}, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	w, ok := s.Persistence.(store.Watcher)
	if !ok {
		return nil, nil
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Type != store.EventBookingsChanged {
				continue
			}
			s.Log().Debug("bookings changed on disk")
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()
	return out, nil
}
