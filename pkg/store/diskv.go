// Package store persists bookings and sitter profiles on disk.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/petsit/pkg/booking"
	"tableflip.dev/petsit/pkg/sitter"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrAmbiguous is returned when an ID prefix matches more than one booking.
var ErrAmbiguous = errors.New("store: ambiguous id")

// Persistence defines the persistence contract for bookings and sitters.
type Persistence interface {
	Bookings(ctx context.Context) ([]*booking.Booking, error)
	Booking(ctx context.Context, id string) (*booking.Booking, error)
	StoreBooking(b *booking.Booking) error
	DeleteBooking(b *booking.Booking) error
	Sitters(ctx context.Context) ([]sitter.Sitter, error)
	StoreSitter(s sitter.Sitter) error
}

const (
	bookingsPrefix = "bookings"
	sittersPrefix  = "sitters"
	keySeparator   = "/"
)

// Load creates a Persistence backed by diskv using the provided config. A nil
// logger discards log output.
func Load(cfg Config, logger *zap.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	basePath := cfg.BasePath()
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		log:      logger.Named("store"),
		basePath: basePath,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	log      *zap.Logger
	basePath string
}

func (p *persistence) Bookings(ctx context.Context) ([]*booking.Booking, error) {
	all := make([]*booking.Booking, 0)
	for _, key := range p.keys(ctx, bookingsPrefix) {
		b, err := p.readBooking(key)
		if err != nil {
			p.log.Warn("skipping unreadable booking", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, b)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortBookings(all)
	return all, nil
}

// Booking finds a booking by full ID or by a unique ID prefix.
func (p *persistence) Booking(ctx context.Context, id string) (*booking.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	var matches []string
	for _, key := range p.keys(ctx, bookingsPrefix) {
		name := keyToPathTransform(key).FileName
		if name == id {
			return p.readBooking(key)
		}
		if strings.HasPrefix(name, id) {
			matches = append(matches, key)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: booking %q", ErrNotFound, id)
	case 1:
		return p.readBooking(matches[0])
	default:
		return nil, fmt.Errorf("%w: %q matches %d bookings", ErrAmbiguous, id, len(matches))
	}
}

func (p *persistence) StoreBooking(b *booking.Booking) error {
	if b == nil || b.ID == "" {
		return errors.New("store: booking id required")
	}
	if b.Schema == "" {
		b.Schema = booking.CurrentSchema
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("store: encode booking: %w", err)
	}
	key := bookingKey(b)
	// A booking whose date changed lives under a new month partition.
	for _, k := range p.keys(context.Background(), bookingsPrefix) {
		if k != key && keyToPathTransform(k).FileName == b.ID {
			if err := p.d.Erase(k); err != nil {
				return fmt.Errorf("store: move booking: %w", err)
			}
		}
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write booking: %w", err)
	}
	p.log.Debug("stored booking", zap.String("id", b.ID), zap.String("sitter", b.SitterID))
	return nil
}

func (p *persistence) DeleteBooking(b *booking.Booking) error {
	if b == nil {
		return nil
	}
	if err := p.d.Erase(bookingKey(b)); err != nil {
		return fmt.Errorf("store: delete booking: %w", err)
	}
	return nil
}

func (p *persistence) Sitters(ctx context.Context) ([]sitter.Sitter, error) {
	all := make([]sitter.Sitter, 0)
	for _, key := range p.keys(ctx, sittersPrefix) {
		val, err := p.d.Read(key)
		if err != nil {
			p.log.Warn("skipping unreadable sitter", zap.String("key", key), zap.Error(err))
			continue
		}
		var s sitter.Sitter
		if err := json.Unmarshal(val, &s); err != nil {
			p.log.Warn("skipping malformed sitter", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sitter.Sort(all)
	return all, nil
}

func (p *persistence) StoreSitter(s sitter.Sitter) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("store: sitter id required")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode sitter: %w", err)
	}
	if err := p.d.Write(sittersPrefix+keySeparator+s.ID, data); err != nil {
		return fmt.Errorf("store: write sitter: %w", err)
	}
	return nil
}

// keys drains the diskv key walk for prefix so callers may return early.
func (p *persistence) keys(ctx context.Context, prefix string) []string {
	var out []string
	for key := range p.d.KeysPrefix(prefix+keySeparator, ctx.Done()) {
		out = append(out, key)
	}
	return out
}

func (p *persistence) readBooking(key string) (*booking.Booking, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	b := &booking.Booking{}
	if err := json.Unmarshal(val, b); err != nil {
		return nil, err
	}
	if b.Schema == "" {
		b.Schema = booking.CurrentSchema
	}
	if b.ID == "" {
		b.ID = keyToPathTransform(key).FileName
	}
	return b, nil
}

func sortBookings(all []*booking.Booking) {
	sort.SliceStable(all, func(i, j int) bool {
		left, right := all[i], all[j]
		if !left.Date.Equal(right.Date) {
			return left.Date.Before(right.Date)
		}
		if left.Start != right.Start {
			return left.Start.String() < right.Start.String()
		}
		return left.ID < right.ID
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySeparator)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string(nil), pathKey.Path...), pathKey.FileName), keySeparator)
}

// bookingKey makes `bookings/<yyyy-mm>/<id>`.
func bookingKey(b *booking.Booking) string {
	month := fmt.Sprintf("%04d-%02d", b.Date.Year, int(b.Date.Month))
	return strings.Join([]string{bookingsPrefix, month, b.ID}, keySeparator)
}
