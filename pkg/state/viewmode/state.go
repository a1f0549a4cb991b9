// Package viewmode toggles search results between list and map presentation.
package viewmode

import (
	"fmt"
	"strings"

	"tableflip.dev/petsit/pkg/state"
)

// Mode is a result presentation.
type Mode int

const (
	// List shows results as rows.
	List Mode = iota
	// Map plots results by location.
	Map
)

func (m Mode) String() string {
	switch m {
	case List:
		return "list"
	case Map:
		return "map"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "list" or "map" (any case) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list", "":
		return List, nil
	case "map":
		return Map, nil
	}
	return List, fmt.Errorf("viewmode: unknown mode %q, want list or map", s)
}

// State holds the current mode. It always has a value.
type State struct {
	mode     Mode
	notifier state.Notifier[Mode]
}

// New returns a State starting in def. Unknown modes fall back to List.
func New(def Mode) *State {
	if def != List && def != Map {
		def = List
	}
	return &State{mode: def}
}

// NewDefault returns a State starting in List.
func NewDefault() *State {
	return New(List)
}

// SwitchToList selects the list view.
func (s *State) SwitchToList() { s.SetMode(List) }

// SwitchToMap selects the map view.
func (s *State) SwitchToMap() { s.SetMode(Map) }

// Toggle flips between the two views.
func (s *State) Toggle() {
	if s.mode == List {
		s.SwitchToMap()
		return
	}
	s.SwitchToList()
}

// SetMode sets m directly. Values other than List and Map are ignored.
func (s *State) SetMode(m Mode) {
	if m != List && m != Map {
		return
	}
	s.mode = m
	s.notifier.Notify(m)
}

// Mode returns the current mode.
func (s *State) Mode() Mode { return s.mode }

// IsListView reports whether the list view is active.
func (s *State) IsListView() bool { return s.mode == List }

// IsMapView reports whether the map view is active.
func (s *State) IsMapView() bool { return s.mode == Map }

// Subscribe registers fn to be called after every transition, including
// identity transitions.
func (s *State) Subscribe(fn func(Mode)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}
