package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/petsit/pkg/calendar"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints the month containing then, with booked days in bold.
func (pp *PrettyPrint) Month(then calendar.Date, booked map[int]bool) {
	tf := color.New(color.FgWhite, color.Italic)
	hf := color.New(color.Faint)

	m := then.FirstOfMonth().Time(nil).Format("January 2006")
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = hf.Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for _, week := range calendar.Weeks(then) {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			switch {
			case day == 0:
				cells = append(cells, "  ")
			case booked[day]:
				cells = append(cells, l2.Sprintf("%2d", day))
			default:
				cells = append(cells, l1.Sprintf("%2d", day))
			}
		}
		_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(strings.Join(cells, " "), " "))
	}
	pp.NewLine()
}
