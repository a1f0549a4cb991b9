package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

// Options controls month grid styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	TitleStyle    lipgloss.Style
	EmptyStyle    lipgloss.Style
	MarkedStyle   lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	CursorStyle   lipgloss.Style
	ShowTitle     bool
	ShowHeader    bool
}

// Marks carries the per-day highlights for a rendered month.
type Marks struct {
	Today    *Date
	Selected *Date
	Cursor   *Date
	// Marked days are shown in MarkedStyle, e.g. days that already have bookings.
	Marked map[int]bool
}

const weekHeader = "Su Mo Tu We Th Fr Sa"

// Render produces a multi-line calendar for the month containing month.
func Render(month Date, marks Marks, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := month.FirstOfMonth()

	var lines []string
	if opts.ShowTitle {
		title := first.Time(nil).Format("January 2006")
		pad := (len(weekHeader) - len(title)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+opts.TitleStyle.Render(title))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render(weekHeader))
	}

	for _, week := range Weeks(first) {
		var cells []string
		for _, day := range week {
			if day == 0 {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(first, day, marks, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

// Weeks lays out the days of month into Sunday-first rows. Cells outside the
// month hold 0.
func Weeks(month Date) [][]int {
	first := month.FirstOfMonth()
	offset := int(first.Time(nil).Weekday())
	days := DaysIn(first)
	rows := (offset + days + 6) / 7

	weeks := make([][]int, 0, rows)
	for row := 0; row < rows; row++ {
		week := make([]int, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day >= 1 && day <= days {
				week[col] = day
			}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func renderDay(month Date, day int, marks Marks, opts Options) string {
	text := fmt.Sprintf("%2d", day)
	d := Date{Year: month.Year, Month: month.Month, Day: day}

	style := opts.EmptyStyle
	if marks.Marked[day] {
		style = opts.MarkedStyle
	}
	if marks.Today != nil && marks.Today.Equal(d) {
		style = style.Inherit(opts.TodayStyle)
	}
	if marks.Selected != nil && marks.Selected.Equal(d) {
		style = opts.SelectedStyle.Inherit(style)
	}
	if marks.Cursor != nil && marks.Cursor.Equal(d) {
		style = opts.CursorStyle.Inherit(style)
	}
	return style.Render(text)
}

// ParseMonth attempts to parse "January 2006" names.
func ParseMonth(name string) (Date, bool) {
	if strings.TrimSpace(name) == "" {
		return Date{}, false
	}
	t, err := time.Parse("January 2006", strings.TrimSpace(name))
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	title := lipgloss.NewStyle().Bold(true)
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	marked := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	today := lipgloss.NewStyle().Underline(true)
	selected := lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	cursor := lipgloss.NewStyle().Reverse(true)
	return Options{
		HeaderStyle:   header,
		TitleStyle:    title,
		EmptyStyle:    empty,
		MarkedStyle:   marked,
		TodayStyle:    today,
		SelectedStyle: selected,
		CursorStyle:   cursor,
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// PlainOptions returns unstyled options; useful for tests and non-TTY output.
func PlainOptions() Options {
	plain := lipgloss.NewStyle()
	return Options{
		HeaderStyle:   plain,
		TitleStyle:    plain,
		EmptyStyle:    plain,
		MarkedStyle:   plain,
		TodayStyle:    plain,
		SelectedStyle: plain,
		CursorStyle:   plain,
		ShowTitle:     true,
		ShowHeader:    true,
	}
}
