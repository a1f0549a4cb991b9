package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/commands/options"
	"tableflip.dev/petsit/pkg/runner/book"
	"tableflip.dev/petsit/pkg/tui/bookingform"
)

func addBook(topLevel *cobra.Command) {
	so := &options.SlotOptions{}
	ino := &options.InteractiveOptions{}
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "book",
		Short: base.Wrap80("Book a visit with a sitter. Without a full set of slot flags the booking screen opens with the given flags filled in."),
		Example: `
petsit book
petsit book --sitter ava
petsit book --sitter ava --date 2025-1-5 --start 09:00
petsit book --sitter ava --date 2025-1-5 --start 09:00 --end 10:00 --owner sam
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			mode, err := vo.GetMode(config.View())
			if err != nil {
				return oo.HandleError(err)
			}
			b := &book.Book{
				Service:  svc,
				SitterID: so.Sitter,
				Owner:    so.Owner,
				Notes:    so.Notes,
				Today:    calendar.DateOf(now()),
				View:     mode,
				JSON:     oo.JSON,
			}
			if so.Complete() && !ino.Interactive {
				d, err := so.GetDate(now())
				if err != nil {
					return oo.HandleError(err)
				}
				start, end, err := so.GetTimes()
				if err != nil {
					return oo.HandleError(err)
				}
				b.Slot = &book.Slot{Date: d, Start: start, End: end}
			} else if !options.IsTerminal() {
				return oo.HandleError(errors.New("book: --sitter, --date, --start and --end are required without a terminal"))
			} else {
				part, err := so.Partial(now())
				if err != nil {
					return oo.HandleError(err)
				}
				b.Draft = bookingform.Prefill{Date: part.Date, Start: part.Start, End: part.End}
			}
			err = b.Do(context.Background())
			if errors.Is(err, book.ErrAborted) {
				return nil
			}
			return oo.HandleError(err)
		},
	}

	options.AddSlotArgs(cmd, so)
	options.InteractiveArgs(cmd, ino)
	options.AddViewArgs(cmd, vo)
	base.AddOutputArg(cmd, oo)
	registerSitterCompletion(cmd)

	topLevel.AddCommand(cmd)
}
