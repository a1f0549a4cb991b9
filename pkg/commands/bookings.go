package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/petsit/pkg/commands/options"
	"tableflip.dev/petsit/pkg/runner/bookings"
)

func addBookings(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	ido := &options.IDOptions{}
	var (
		sitterID string
		month    string
		all      bool
	)

	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"ls"},
		Short:   base.Wrap80("List stored bookings, soonest first."),
		Example: `
petsit bookings
petsit bookings --sitter ava --month 2025-01
petsit bookings --all --page 2 --size 5 -k
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			size := po.Size
			if size <= 0 {
				size = config.PageSize()
			}
			l := &bookings.List{
				Service:  svc,
				SitterID: sitterID,
				All:      all,
				Page:     po.Page,
				Size:     size,
				Month:    month,
				ShowID:   ido.ShowID,
				JSON:     oo.JSON,
			}
			err = l.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&sitterID, "sitter", "", "Only show bookings with this sitter.")
	cmd.Flags().StringVar(&month, "month", "", `Only show one month and print its calendar, example: --month=2025-01.`)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include cancelled bookings.")
	options.AddPageArgs(cmd, po)
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)
	registerSitterCompletion(cmd)

	topLevel.AddCommand(cmd)
}
