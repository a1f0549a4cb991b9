// Package bookingform is the Bubble Tea screen for booking a sitter: a
// date picker, a start and end time, notes, and a submit action.
package bookingform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/petsit/pkg/booking"
	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/sitter"
	"tableflip.dev/petsit/pkg/state/dateselect"
	"tableflip.dev/petsit/pkg/state/timerange"
	"tableflip.dev/petsit/pkg/timeutil"
	"tableflip.dev/petsit/pkg/tui/theme"
)

// Booker stores bookings and reports which days are taken.
type Booker interface {
	Book(ctx context.Context, form *booking.Form, sitterID, owner string) (*booking.Booking, error)
	BookedDays(ctx context.Context, sitterID string, month calendar.Date) (map[int]bool, error)
}

// StepMinutes is how far up/down moves a time field.
const StepMinutes = 15

var (
	defaultStart = timerange.TimeOfDay{Hour: 9}
	defaultSpan  = 60
)

type field int

const (
	fieldDate field = iota
	fieldStart
	fieldEnd
	fieldNotes
	fieldSubmit
	fieldCount
)

// Config describes the booking being made.
type Config struct {
	Sitter sitter.Sitter
	Owner  string
	// Today seeds the calendar cursor; zero means the current date.
	Today calendar.Date
	Theme *theme.Theme
	// Changes, when set, refreshes the booked days each time it fires.
	Changes <-chan struct{}
	// Prefill seeds the form with values given up front.
	Prefill Prefill
}

// Prefill holds the parts of a booking already known when the screen opens.
// Nil fields are left for the user.
type Prefill struct {
	Date  *calendar.Date
	Start *timerange.TimeOfDay
	End   *timerange.TimeOfDay
	Notes string
}

type bookedMsg struct {
	booking *booking.Booking
	err     error
}

type storeChangedMsg struct{}

type bookedDaysMsg struct {
	month calendar.Date
	days  map[int]bool
	err   error
}

// Model drives a booking.Form from key presses.
type Model struct {
	svc    Booker
	sitter sitter.Sitter
	owner  string
	theme  theme.Theme

	form   *booking.Form
	focus  field
	cursor calendar.Date
	today  calendar.Date
	notes  textinput.Model

	booked       map[int]bool
	monthPending bool
	changes      <-chan struct{}
	cancelSubs   []func()

	status string
	err    error
	result *booking.Booking

	// submitting is set while a Book call is in flight; edits wait for it.
	submitting bool

	width  int
	height int
}

// New constructs the booking screen for cfg.
func New(svc Booker, cfg Config) *Model {
	th := theme.Default()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}
	today := cfg.Today
	if today.IsZero() {
		today = calendar.Today()
	}

	ti := textinput.New()
	ti.Placeholder = "Feeding schedule, door codes…"
	ti.CharLimit = 280
	ti.Prompt = ""

	m := &Model{
		svc:     svc,
		sitter:  cfg.Sitter,
		owner:   cfg.Owner,
		theme:   th,
		form:    booking.NewForm(),
		cursor:  today,
		today:   today,
		notes:   ti,
		booked:  map[int]bool{},
		changes: cfg.Changes,
	}
	m.cancelSubs = append(m.cancelSubs,
		m.form.Date.Subscribe(m.onDateChange),
		m.form.Times.Subscribe(m.onTimesChange),
	)
	m.form.Date.SetVisibleMonth(today.FirstOfMonth().Ptr())
	m.apply(cfg.Prefill)
	// Init loads the first month.
	m.monthPending = false
	return m
}

func (m *Model) apply(p Prefill) {
	if p.Date != nil {
		m.form.Date.SetVisibleMonth(p.Date.FirstOfMonth().Ptr())
		m.cursor = *p.Date
		m.form.Date.Select(p.Date)
		m.focus = fieldStart
	}
	m.form.Times.SetStart(p.Start)
	m.form.Times.SetEnd(p.End)
	if p.Notes != "" {
		m.notes.SetValue(p.Notes)
		m.form.Notes = p.Notes
	}
}

// Run launches the booking screen and returns the stored booking, or nil if
// the user quit without booking.
func Run(svc Booker, cfg Config) (*booking.Booking, error) {
	m := New(svc, cfg)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return m.Result(), nil
}

// Form exposes the underlying form state.
func (m *Model) Form() *booking.Form { return m.form }

// Result returns the booking created by the last successful submit.
func (m *Model) Result() *booking.Booking { return m.result }

// Err returns the last submit error.
func (m *Model) Err() error { return m.err }

// Close detaches the model from its form state.
func (m *Model) Close() {
	for _, cancel := range m.cancelSubs {
		cancel()
	}
	m.cancelSubs = nil
}

func (m *Model) onDateChange(snap dateselect.Snapshot) {
	if snap.VisibleMonth == nil {
		return
	}
	if !snap.VisibleMonth.SameMonth(m.cursor) {
		m.cursor = snap.VisibleMonth.FirstOfMonth()
	}
	m.monthPending = true
}

func (m *Model) onTimesChange(timerange.Snapshot) {
	m.err = nil
	m.status = ""
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadBookedDays(), m.waitForChange())
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.notes.SetWidth(max(v.Width-12, 20))
	case storeChangedMsg:
		cmds = append(cmds, m.loadBookedDays(), m.waitForChange())
	case bookedDaysMsg:
		if v.err == nil && v.month.SameMonth(m.visibleMonth()) {
			m.booked = v.days
		}
	case bookedMsg:
		m.submitting = false
		if v.err != nil {
			m.err = v.err
			m.status = ""
			break
		}
		m.err = nil
		m.result = v.booking
		m.status = "Booked " + v.booking.When()
		return m, tea.Quit
	case tea.KeyPressMsg:
		if m.submitting && v.String() != "ctrl+c" {
			break
		}
		if cmd := m.handleKey(v); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.monthPending {
		m.monthPending = false
		cmds = append(cmds, m.loadBookedDays())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		m.form.Reset()
		m.notes.SetValue("")
		return m.setFocus(fieldDate)
	case "tab":
		return m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	if m.focus == fieldDate && m.form.Date.Open() {
		return m.handlePickerKey(msg)
	}

	switch m.focus {
	case fieldNotes:
		if msg.String() == "esc" {
			return m.setFocus(fieldSubmit)
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		m.form.Notes = m.notes.Value()
		return cmd
	case fieldStart, fieldEnd:
		return m.handleTimeKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		return tea.Quit
	case "enter", "space":
		if m.focus == fieldSubmit {
			return m.submit()
		}
		m.form.Date.SetOpen(true)
	case "down", "j":
		return m.setFocus(m.focus + 1)
	}
	return nil
}

func (m *Model) handlePickerKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.form.Date.SetOpen(false)
	case "enter", "space":
		picked := m.cursor
		m.form.Date.Select(&picked)
	case "left", "h":
		m.moveCursor(m.cursor.AddDays(-1))
	case "right", "l":
		m.moveCursor(m.cursor.AddDays(1))
	case "up", "k":
		m.moveCursor(m.cursor.AddDays(-7))
	case "down", "j":
		m.moveCursor(m.cursor.AddDays(7))
	case "[", "pgup":
		m.form.Date.SetVisibleMonth(m.visibleMonth().AddMonths(-1).Ptr())
	case "]", "pgdown":
		m.form.Date.SetVisibleMonth(m.visibleMonth().AddMonths(1).Ptr())
	case "t":
		m.moveCursor(m.today)
	}
	return nil
}

func (m *Model) moveCursor(to calendar.Date) {
	m.cursor = to
	if !to.SameMonth(m.visibleMonth()) {
		m.form.Date.SetVisibleMonth(to.FirstOfMonth().Ptr())
	}
}

func (m *Model) handleTimeKey(msg tea.KeyPressMsg) tea.Cmd {
	get, set := m.form.Times.Start, m.form.Times.SetStart
	if m.focus == fieldEnd {
		get, set = m.form.Times.End, m.form.Times.SetEnd
	}
	switch msg.String() {
	case "up", "k", "+":
		set(m.stepTime(get(), StepMinutes))
	case "down", "j", "-":
		set(m.stepTime(get(), -StepMinutes))
	case "backspace", "x":
		set(nil)
	case "enter":
		return m.setFocus(m.focus + 1)
	case "esc":
		return tea.Quit
	}
	return nil
}

// stepTime moves cur by delta minutes. An unset field starts at a default:
// the start at 09:00 and the end one hour after the start.
func (m *Model) stepTime(cur *timerange.TimeOfDay, delta int) *timerange.TimeOfDay {
	if cur != nil {
		next := cur.Add(delta)
		return &next
	}
	if m.focus == fieldEnd {
		base := defaultStart
		if start := m.form.Times.Start(); start != nil {
			base = *start
		}
		next := base.Add(defaultSpan)
		return &next
	}
	next := defaultStart
	return &next
}

func (m *Model) setFocus(f field) tea.Cmd {
	if f >= fieldCount {
		f = fieldCount - 1
	}
	if m.focus == fieldDate && f != fieldDate {
		m.form.Date.SetOpen(false)
	}
	m.focus = f
	if f == fieldNotes {
		cmd := m.notes.Focus()
		return tea.Batch(cmd, textinput.Blink)
	}
	m.notes.Blur()
	return nil
}

// Submitting reports whether a booking request is in flight.
func (m *Model) Submitting() bool { return m.submitting }

func (m *Model) submit() tea.Cmd {
	if m.submitting {
		return nil
	}
	if !m.form.CanSubmit() {
		m.status = m.form.Validation().Message()
		return nil
	}
	if m.svc == nil {
		m.err = errors.New("bookingform: no booking service")
		return nil
	}
	// The command runs off the event loop, so it books a copy.
	form, sitterID, owner := m.form.Clone(), m.sitter.ID, m.owner
	svc := m.svc
	m.submitting = true
	m.status = "Booking…"
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b, err := svc.Book(ctx, form, sitterID, owner)
		return bookedMsg{booking: b, err: err}
	}
}

func (m *Model) loadBookedDays() tea.Cmd {
	if m.svc == nil || m.sitter.ID == "" {
		return nil
	}
	svc, sitterID, month := m.svc, m.sitter.ID, m.visibleMonth()
	return func() tea.Msg {
		days, err := svc.BookedDays(context.Background(), sitterID, month)
		return bookedDaysMsg{month: month, days: days, err: err}
	}
}

func (m *Model) visibleMonth() calendar.Date {
	if vm := m.form.Date.VisibleMonth(); vm != nil {
		return *vm
	}
	return m.today.FirstOfMonth()
}

// View implements tea.Model.
func (m *Model) View() string {
	th := m.theme
	var lines []string

	title := "Book a sitter"
	if m.sitter.Name != "" {
		title = fmt.Sprintf("Book %s", m.sitter.Name)
	}
	lines = append(lines, th.Panel.Title.Render(title))
	if m.sitter.ID != "" {
		lines = append(lines, th.Form.Muted.Render(m.sitter.Description()))
	}
	lines = append(lines, "")

	date := m.form.Date.Display()
	if m.form.Date.Selected() == nil {
		date = th.Form.Muted.Render("not set")
	}
	lines = append(lines, m.row(fieldDate, "Date", date))
	if m.form.Date.Open() {
		sel := m.form.Date.Selected()
		cursor := m.cursor
		today := m.today
		grid := calendar.Render(m.visibleMonth(), calendar.Marks{
			Today:    &today,
			Selected: sel,
			Cursor:   &cursor,
			Marked:   m.booked,
		}, th.Calendar)
		lines = append(lines, indent(grid, 9), "")
	}
	lines = append(lines,
		m.row(fieldStart, "Start", m.timeText(m.form.Times.Start())),
		m.row(fieldEnd, "End", m.timeText(m.form.Times.End())+m.lengthText()),
		m.row(fieldNotes, "Notes", m.notes.View()),
	)

	button := "[ Book ]"
	if m.focus == fieldSubmit {
		button = th.Form.Focused.Render(button)
	}
	lines = append(lines, "", "  "+button, "")

	lines = append(lines, m.statusLine())
	lines = append(lines, th.Footer.Help.Render(m.helpText()))
	return strings.Join(lines, "\n")
}

func (m *Model) row(f field, label, value string) string {
	marker := "  "
	labelStyle := m.theme.Form.Label
	if m.focus == f {
		marker = m.theme.Form.Focused.Render("> ")
		labelStyle = labelStyle.Inherit(m.theme.Form.Focused)
	}
	return marker + labelStyle.Render(label) + m.theme.Form.Value.Render(value)
}

func (m *Model) timeText(t *timerange.TimeOfDay) string {
	if t == nil {
		return m.theme.Form.Muted.Render("--:--")
	}
	return t.String()
}

func (m *Model) lengthText() string {
	d := m.form.Times.Duration()
	if d <= 0 {
		return ""
	}
	return m.theme.Form.Muted.Render(" (" + timeutil.FormatLength(d) + ")")
}

func (m *Model) statusLine() string {
	th := m.theme
	if m.err != nil {
		return th.Footer.Error.Render(m.err.Error())
	}
	if m.status != "" {
		return th.Footer.Status.Render(m.status)
	}
	v := m.form.Validation()
	switch {
	case v.IsError():
		return th.Form.Invalid.Render(v.Message())
	case v == booking.Ready:
		return th.Form.Ready.Render(v.Message())
	}
	return th.Footer.Status.Render(v.Message())
}

func (m *Model) helpText() string {
	switch {
	case m.focus == fieldDate && m.form.Date.Open():
		return "←/→/↑/↓ move · [ ] month · t today · enter pick · esc close"
	case m.focus == fieldStart || m.focus == fieldEnd:
		return fmt.Sprintf("↑/↓ ±%d min · x clear · tab next · ctrl+s book", StepMinutes)
	case m.focus == fieldNotes:
		return "type notes · tab next · ctrl+s book"
	}
	return "tab next · enter open/submit · ctrl+s book · ctrl+r clear · esc quit"
}

func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
