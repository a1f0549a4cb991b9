package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/petsit/pkg/booking"
	"tableflip.dev/petsit/pkg/paging"
	"tableflip.dev/petsit/pkg/sitter"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

var statusColors = map[booking.Status]*color.Color{
	booking.StatusPending:   color.New(color.FgYellow),
	booking.StatusConfirmed: color.New(color.FgGreen, color.Bold),
	booking.StatusCancelled: color.New(color.Faint, color.CrossedOut),
}

// Bookings prints one row per booking. names maps sitter IDs to display
// names; unknown IDs print as-is.
func (pp *PrettyPrint) Bookings(names map[string]string, bookings ...*booking.Booking) {
	if len(bookings) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	b := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{b.Sprint("When"), b.Sprint("Sitter"), b.Sprint("Owner"), b.Sprint("Status")}
	if pp.ShowID {
		header = append([]interface{}{b.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, bk := range bookings {
		name := bk.SitterID
		if n, ok := names[bk.SitterID]; ok && n != "" {
			name = n
		}
		status := string(bk.Status)
		if c, ok := statusColors[bk.Status]; ok {
			status = c.Sprint(status)
		}
		row := []interface{}{bk.When(), name, bk.Owner, status}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(bk.ShortID())}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Page prints a "page n of m" footer with navigation hints.
func (pp *PrettyPrint) Page(p paging.Page) {
	f := color.New(color.Faint)
	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("--page %d for previous", p.Number-1))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("--page %d for more", p.Number+1))
	}
	line := fmt.Sprintf("page %d of %d", p.Number, p.Pages())
	if len(hints) > 0 {
		line += " (" + strings.Join(hints, ", ") + ")"
	}
	_, _ = f.Fprintln(pp.out(), line)
}

// Sitters prints the sitter directory as a table.
func (pp *PrettyPrint) Sitters(all ...sitter.Sitter) {
	if len(all) == 0 {
		pp.none()
		return
	}
	b := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(b.Sprint("ID"), b.Sprint("Name"), b.Sprint("City"), b.Sprint("Rate"), b.Sprint("About"))
	for _, s := range all {
		tbl.AddRow(y.Sprint(s.ID), s.Name, s.City, sitter.FormatRate(s.Rate)+"/h", s.Bio)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// SitterMap plots sitters on a width x height character grid followed by a
// legend.
func (pp *PrettyPrint) SitterMap(width, height int, all ...sitter.Sitter) {
	if len(all) == 0 {
		pp.none()
		return
	}
	land := color.New(color.Faint)
	marker := color.New(color.FgHiYellow, color.Bold)

	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = land.Sprint(".")
		}
	}
	for i, p := range sitter.Project(all, width, height) {
		grid[p.Y][p.X] = marker.Sprint(all[i].Initial())
	}
	for _, row := range grid {
		_, _ = fmt.Fprintln(pp.out(), strings.Join(row, ""))
	}
	pp.NewLine()
	for _, s := range all {
		_, _ = fmt.Fprintf(pp.out(), "%s %s · %s\n", marker.Sprint(s.Initial()), s.Name, s.City)
	}
}

// Booked prints a one line summary of b, e.g. after it was created or
// changed. verb leads the line.
func (pp *PrettyPrint) Booked(verb, sitterName string, b *booking.Booking) {
	g := color.New(color.FgGreen, color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	if sitterName == "" {
		sitterName = b.SitterID
	}
	_, _ = g.Fprint(pp.out(), verb)
	_, _ = fmt.Fprintf(pp.out(), " %s on %s ", sitterName, b.When())
	_, _ = y.Fprintf(pp.out(), "(%s, %s)", b.ShortID(), b.Status)
	_, _ = fmt.Fprintln(pp.out())
}
