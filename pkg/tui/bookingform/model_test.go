package bookingform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/petsit/pkg/booking"
	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/sitter"
	"tableflip.dev/petsit/pkg/state/timerange"
	"tableflip.dev/petsit/pkg/tui/theme"
)

type fakeBooker struct {
	booked  map[int]bool
	months  []calendar.Date
	calls   int
	sitters []string
	err     error
}

func (f *fakeBooker) Book(_ context.Context, form *booking.Form, sitterID, owner string) (*booking.Booking, error) {
	f.calls++
	f.sitters = append(f.sitters, sitterID)
	if f.err != nil {
		return nil, f.err
	}
	return booking.FromForm(form, sitterID, owner)
}

func (f *fakeBooker) BookedDays(_ context.Context, _ string, month calendar.Date) (map[int]bool, error) {
	f.months = append(f.months, month)
	return f.booked, nil
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func press(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func typed(s string) tea.KeyPressMsg { return tea.KeyPressMsg{Text: s, Code: rune(s[0])} }

var ctrlS = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}

func newTestModel(t *testing.T, svc *fakeBooker) *Model {
	t.Helper()
	return newWatchingModel(t, svc, nil)
}

func newWatchingModel(t *testing.T, svc *fakeBooker, changes <-chan struct{}) *Model {
	t.Helper()
	plain := theme.Plain()
	ava, _ := sitter.Find(sitter.Demo(), "ava")
	m := New(svc, Config{
		Sitter:  ava,
		Owner:   "sam",
		Today:   calendar.NewDate(2025, time.January, 10),
		Theme:   &plain,
		Changes: changes,
	})
	t.Cleanup(m.Close)
	deliver(t, m, m.Init())
	return m
}

// deliver runs cmd and feeds booking results back into m. Other messages,
// such as cursor blinks, are dropped. It reports whether cmd asked to quit.
func deliver(t *testing.T, m *Model, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		quit := false
		for _, c := range batch {
			if deliver(t, m, c) {
				quit = true
			}
		}
		return quit
	}
	switch msg.(type) {
	case tea.QuitMsg:
		return true
	case bookedMsg, bookedDaysMsg, storeChangedMsg:
		_, next := m.Update(msg)
		return deliver(t, m, next)
	}
	return false
}

func send(t *testing.T, m *Model, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var last tea.Cmd
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		if next.(*Model) != m {
			t.Fatalf("expected model to update in place")
		}
		last = cmd
	}
	return last
}

func view(m *Model) string { return stripANSI(m.View()) }

func TestInitialViewPromptsForDate(t *testing.T) {
	svc := &fakeBooker{booked: map[int]bool{3: true}}
	m := newTestModel(t, svc)

	out := view(m)
	for _, want := range []string{"Book Ava Moreno", "Portland", "not set", "--:--", "Pick a date"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
	if len(svc.months) != 1 || svc.months[0].Month != time.January {
		t.Fatalf("expected january booked days to load, got %v", svc.months)
	}
	if !m.booked[3] {
		t.Fatalf("expected booked days to be applied")
	}
}

func TestPickDateClosesPicker(t *testing.T) {
	m := newTestModel(t, &fakeBooker{})

	send(t, m, press(tea.KeyEnter))
	if !m.Form().Date.Open() {
		t.Fatalf("expected picker to open on enter")
	}
	out := view(m)
	if !strings.Contains(out, "January 2025") || !strings.Contains(out, "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("expected month grid:\n%s", out)
	}

	send(t, m, press(tea.KeyRight), press(tea.KeyRight), press(tea.KeyEnter))
	if m.Form().Date.Open() {
		t.Fatalf("expected picker to close after selecting")
	}
	sel := m.Form().Date.Selected()
	if sel == nil || !sel.Equal(calendar.NewDate(2025, time.January, 12)) {
		t.Fatalf("unexpected selection %v", sel)
	}
	out = view(m)
	if !strings.Contains(out, "12 January, 2025") || !strings.Contains(out, "Pick a start and end time") {
		t.Fatalf("expected formatted date and time prompt:\n%s", out)
	}
}

func TestPickerEscapeKeepsSelection(t *testing.T) {
	m := newTestModel(t, &fakeBooker{})
	send(t, m, press(tea.KeyEnter), press(tea.KeyEnter))
	send(t, m, press(tea.KeyEnter), press(tea.KeyDown), press(tea.KeyEscape))
	if m.Form().Date.Open() {
		t.Fatalf("expected escape to close the picker")
	}
	if sel := m.Form().Date.Selected(); sel == nil || sel.Day != 10 {
		t.Fatalf("expected original selection to remain, got %v", sel)
	}
}

func TestMonthNavigationLoadsBookedDays(t *testing.T) {
	svc := &fakeBooker{}
	m := newTestModel(t, svc)
	send(t, m, press(tea.KeyEnter))

	cmd := send(t, m, typed("]"))
	deliver(t, m, cmd)
	if vm := m.Form().Date.VisibleMonth(); vm == nil || vm.Month != time.February {
		t.Fatalf("expected february to be visible, got %v", vm)
	}
	if len(svc.months) != 2 || svc.months[1].Month != time.February {
		t.Fatalf("expected february booked days request, got %v", svc.months)
	}
	if !strings.Contains(view(m), "February 2025") {
		t.Fatalf("expected february grid:\n%s", view(m))
	}

	// Walking the cursor back across the month edge follows it.
	deliver(t, m, send(t, m, press(tea.KeyLeft)))
	if vm := m.Form().Date.VisibleMonth(); vm == nil || vm.Month != time.January {
		t.Fatalf("expected january after moving left from the 1st, got %v", vm)
	}
}

func TestTimeStepping(t *testing.T) {
	m := newTestModel(t, &fakeBooker{})
	send(t, m, press(tea.KeyTab), press(tea.KeyUp))
	if got := m.Form().Times.Start(); got == nil || *got != (timerange.TimeOfDay{Hour: 9}) {
		t.Fatalf("expected default start 09:00, got %v", got)
	}
	send(t, m, press(tea.KeyUp))
	if got := m.Form().Times.Start(); *got != (timerange.TimeOfDay{Hour: 9, Minute: 15}) {
		t.Fatalf("expected 09:15, got %v", got)
	}

	send(t, m, press(tea.KeyTab), press(tea.KeyUp))
	if got := m.Form().Times.End(); got == nil || *got != (timerange.TimeOfDay{Hour: 10, Minute: 15}) {
		t.Fatalf("expected end one hour after start, got %v", got)
	}

	send(t, m, press(tea.KeyDown), press(tea.KeyDown), press(tea.KeyDown), press(tea.KeyDown))
	if m.Form().Validation() != booking.Misordered {
		t.Fatalf("expected misordered range, got %v", m.Form().Validation())
	}
	if !strings.Contains(view(m), "End time must be after start time") {
		t.Fatalf("expected misordered message:\n%s", view(m))
	}

	send(t, m, typed("x"))
	if m.Form().Times.End() != nil {
		t.Fatalf("expected x to clear the end time")
	}
}

func TestSubmitIncompleteShowsPrompt(t *testing.T) {
	svc := &fakeBooker{}
	m := newTestModel(t, svc)
	if cmd := send(t, m, ctrlS); deliver(t, m, cmd) {
		t.Fatalf("incomplete form should not quit")
	}
	if svc.calls != 0 {
		t.Fatalf("expected no booking call, got %d", svc.calls)
	}
	if !strings.Contains(view(m), "Pick a date") {
		t.Fatalf("expected prompt after submit:\n%s", view(m))
	}
}

func fillForm(t *testing.T, m *Model) {
	t.Helper()
	// date, then start 09:00 and end 10:00
	send(t, m, press(tea.KeyEnter), press(tea.KeyEnter))
	send(t, m, press(tea.KeyTab), press(tea.KeyUp), press(tea.KeyTab), press(tea.KeyUp))
	if !m.Form().CanSubmit() {
		t.Fatalf("expected submittable form, got %v", m.Form().Validation())
	}
}

func TestSubmitBooksAndQuits(t *testing.T) {
	svc := &fakeBooker{}
	m := newTestModel(t, svc)
	fillForm(t, m)
	if !strings.Contains(view(m), "Ready to book") || !strings.Contains(view(m), "10:00 (1h)") {
		t.Fatalf("expected ready message:\n%s", view(m))
	}

	if !deliver(t, m, send(t, m, ctrlS)) {
		t.Fatalf("expected successful booking to quit")
	}
	if svc.calls != 1 || svc.sitters[0] != "ava" {
		t.Fatalf("unexpected booking calls %d %v", svc.calls, svc.sitters)
	}
	got := m.Result()
	if got == nil {
		t.Fatalf("expected a result booking")
	}
	if got.When() != "10 January, 2025 09:00-10:00" || got.Owner != "sam" {
		t.Fatalf("unexpected booking %q owner %q", got.When(), got.Owner)
	}
}

func TestSubmitButtonAndNotes(t *testing.T) {
	svc := &fakeBooker{}
	m := newTestModel(t, svc)
	fillForm(t, m)
	send(t, m, press(tea.KeyTab))
	send(t, m, typed("h"), typed("i"))
	if m.Form().Notes != "hi" {
		t.Fatalf("expected notes to follow the input, got %q", m.Form().Notes)
	}
	send(t, m, press(tea.KeyTab))
	if !deliver(t, m, send(t, m, press(tea.KeyEnter))) {
		t.Fatalf("expected enter on the button to submit")
	}
	if m.Result() == nil || m.Result().Notes != "hi" {
		t.Fatalf("expected notes on booking, got %+v", m.Result())
	}
}

func TestSubmitErrorIsShown(t *testing.T) {
	svc := &fakeBooker{err: errors.New("app: sitter already booked at that time")}
	m := newTestModel(t, svc)
	fillForm(t, m)
	if deliver(t, m, send(t, m, ctrlS)) {
		t.Fatalf("failed booking should not quit")
	}
	if m.Err() == nil || m.Result() != nil {
		t.Fatalf("expected error and no result")
	}
	if !strings.Contains(view(m), "already booked") {
		t.Fatalf("expected error in view:\n%s", view(m))
	}

	// Changing the times clears the error.
	send(t, m, press(tea.KeyUp))
	if m.Err() != nil {
		t.Fatalf("expected error to clear after editing")
	}
}

func TestStoreChangeReloadsBookedDays(t *testing.T) {
	svc := &fakeBooker{booked: map[int]bool{3: true}}
	changes := make(chan struct{})
	// A closed channel stops the wait loop so deliver never blocks.
	close(changes)
	m := newWatchingModel(t, svc, changes)

	svc.booked = map[int]bool{3: true, 7: true}
	deliver(t, m, send(t, m, storeChangedMsg{}))
	if len(svc.months) != 2 {
		t.Fatalf("expected a second booked days request, got %v", svc.months)
	}
	if !m.booked[7] {
		t.Fatalf("expected refreshed booked days, got %v", m.booked)
	}
}

// readingBooker keeps reading the submitted form until released, so edits
// made on the event loop meanwhile would show up as races.
type readingBooker struct {
	fakeBooker
	release chan struct{}
	drifted bool
}

func (r *readingBooker) Book(_ context.Context, form *booking.Form, sitterID, owner string) (*booking.Booking, error) {
	r.calls++
	for {
		select {
		case <-r.release:
			return booking.FromForm(form, sitterID, owner)
		default:
			if start := form.Times.Start(); start == nil || *start != (timerange.TimeOfDay{Hour: 9}) {
				r.drifted = true
			}
		}
	}
}

func TestSubmitBooksSnapshotWhileKeysArrive(t *testing.T) {
	svc := &readingBooker{release: make(chan struct{})}
	plain := theme.Plain()
	ava, _ := sitter.Find(sitter.Demo(), "ava")
	m := New(svc, Config{Sitter: ava, Owner: "sam", Today: calendar.NewDate(2025, time.January, 10), Theme: &plain})
	t.Cleanup(m.Close)
	fillForm(t, m)
	send(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})

	cmd := send(t, m, ctrlS)
	if cmd == nil || !m.Submitting() {
		t.Fatalf("expected a booking request in flight")
	}
	if again := send(t, m, ctrlS); again != nil {
		t.Fatalf("expected a second submit to be ignored while booking")
	}

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()
	for i := 0; i < 2000; i++ {
		send(t, m, press(tea.KeyUp), typed("x"))
	}
	close(svc.release)

	if !deliver(t, m, func() tea.Msg { return <-msgs }) {
		t.Fatalf("expected the booking to finish and quit")
	}
	if svc.calls != 1 || svc.drifted {
		t.Fatalf("expected one call on an unchanged form, got %d calls, drifted=%v", svc.calls, svc.drifted)
	}
	if got := m.Form().Times.Start(); got == nil || *got != (timerange.TimeOfDay{Hour: 9}) {
		t.Fatalf("expected edits to wait for the booking, start is %v", got)
	}
	if m.Result() == nil || m.Result().When() != "10 January, 2025 09:00-10:00" {
		t.Fatalf("unexpected result %+v", m.Result())
	}
	if m.Submitting() {
		t.Fatalf("expected submitting to clear after the result")
	}
}

func TestClearFormStartsOver(t *testing.T) {
	svc := &fakeBooker{}
	m := newTestModel(t, svc)
	fillForm(t, m)
	send(t, m, press(tea.KeyTab), typed("h"), typed("i"))

	send(t, m, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	f := m.Form()
	if f.Date.Selected() != nil || f.Times.Start() != nil || f.Times.End() != nil || f.Notes != "" {
		t.Fatalf("expected an empty form after clearing")
	}
	if f.Validation() != booking.PromptDate {
		t.Fatalf("expected the date prompt, got %v", f.Validation())
	}
	if !strings.Contains(view(m), "ctrl+r clear") {
		t.Fatalf("expected the clear key in the help line:\n%s", view(m))
	}
	if send(t, m, ctrlS) != nil || svc.calls != 0 {
		t.Fatalf("expected a cleared form not to submit")
	}
}

func TestPrefillFromFlags(t *testing.T) {
	svc := &fakeBooker{}
	plain := theme.Plain()
	ava, _ := sitter.Find(sitter.Demo(), "ava")
	d := calendar.NewDate(2025, time.March, 4)
	start := timerange.TimeOfDay{Hour: 14}
	m := New(svc, Config{
		Sitter:  ava,
		Owner:   "sam",
		Today:   calendar.NewDate(2025, time.January, 10),
		Theme:   &plain,
		Prefill: Prefill{Date: &d, Start: &start, Notes: "gate code 12"},
	})
	t.Cleanup(m.Close)
	deliver(t, m, m.Init())

	f := m.Form()
	if got := f.Date.Selected(); got == nil || *got != d {
		t.Fatalf("expected the given date selected, got %v", got)
	}
	if got := f.Date.VisibleMonth(); got == nil || !got.SameMonth(d) {
		t.Fatalf("expected March visible, got %v", got)
	}
	if len(svc.months) == 0 || !svc.months[len(svc.months)-1].SameMonth(d) {
		t.Fatalf("expected booked days loaded for March, got %v", svc.months)
	}
	if f.Validation() != booking.PromptTimes || f.Notes != "gate code 12" {
		t.Fatalf("unexpected form %v %q", f.Validation(), f.Notes)
	}

	// focus starts on the start time; tab to the end and step it up once
	send(t, m, press(tea.KeyTab), press(tea.KeyUp))
	if !deliver(t, m, send(t, m, ctrlS)) {
		t.Fatalf("expected the prefilled form to book")
	}
	if got := m.Result(); got == nil || got.When() != "04 March, 2025 14:00-15:00" || got.Notes != "gate code 12" {
		t.Fatalf("unexpected result %+v", got)
	}
}
