// Package dateselect tracks a chosen calendar date, the month visible in the
// picker, and the formatted display text derived from the choice.
package dateselect

import (
	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/state"
)

// Options configures a State.
type Options struct {
	// ManagesOpenState gives the state its own picker open/closed flag,
	// which is closed again after every Select.
	ManagesOpenState bool
	// Open is the initial open flag; ignored unless ManagesOpenState is set.
	Open bool
	// InitialMonth seeds the visible month. Nil leaves it unset.
	InitialMonth *calendar.Date
}

// Snapshot is a copy of the state after a mutation.
type Snapshot struct {
	Selected     *calendar.Date
	VisibleMonth *calendar.Date
	Display      string
	Open         bool
}

// State holds the current date selection.
type State struct {
	managesOpen bool

	selected     *calendar.Date
	visibleMonth *calendar.Date
	display      string
	open         bool

	notifier state.Notifier[Snapshot]
}

// New constructs a State with opts.
func New(opts Options) *State {
	s := &State{
		managesOpen:  opts.ManagesOpenState,
		visibleMonth: clone(opts.InitialMonth),
	}
	if s.managesOpen {
		s.open = opts.Open
	}
	return s
}

// NewBooking returns the booking form configuration: it owns a picker flag
// that starts closed.
func NewBooking() *State {
	return New(Options{ManagesOpenState: true})
}

// NewPicker returns the bare picker configuration without an open flag.
func NewPicker() *State {
	return New(Options{})
}

// Select replaces the selected date. A nil candidate clears the selection
// but keeps the previous display text. When the state manages the picker
// flag, the picker is closed whether or not a date was given.
func (s *State) Select(candidate *calendar.Date) {
	s.selected = clone(candidate)
	if candidate != nil {
		s.display = calendar.Format(candidate)
	}
	if s.managesOpen {
		s.open = false
	}
	s.notify()
}

// SetVisibleMonth sets the month shown by the picker. It is not tied to the
// selected date.
func (s *State) SetVisibleMonth(m *calendar.Date) {
	s.visibleMonth = clone(m)
	s.notify()
}

// SetOpen sets the picker flag. It does nothing for states that do not
// manage the flag.
func (s *State) SetOpen(open bool) {
	if !s.managesOpen {
		return
	}
	s.open = open
	s.notify()
}

// Toggle flips the picker flag.
func (s *State) Toggle() {
	s.SetOpen(!s.open)
}

// Selected returns a copy of the selected date, or nil.
func (s *State) Selected() *calendar.Date { return clone(s.selected) }

// VisibleMonth returns a copy of the visible month, or nil.
func (s *State) VisibleMonth() *calendar.Date { return clone(s.visibleMonth) }

// Display returns the formatted text of the last non-nil selection.
func (s *State) Display() string { return s.display }

// Open reports whether the picker is open.
func (s *State) Open() bool { return s.open }

// ManagesOpenState reports whether this state owns the picker flag.
func (s *State) ManagesOpenState() bool { return s.managesOpen }

// Snapshot returns the current values.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Selected:     s.Selected(),
		VisibleMonth: s.VisibleMonth(),
		Display:      s.display,
		Open:         s.open,
	}
}

// Subscribe registers fn to be called after every mutation.
func (s *State) Subscribe(fn func(Snapshot)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}

func (s *State) notify() {
	s.notifier.Notify(s.Snapshot())
}

func clone(d *calendar.Date) *calendar.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
