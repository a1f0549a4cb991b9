package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/petsit/pkg/runner/bookings"
)

func addCancel(topLevel *cobra.Command) {
	topLevel.AddCommand(changeCommand("cancel", "Cancel a booking, freeing its slot.", false))
}

func addConfirm(topLevel *cobra.Command) {
	topLevel.AddCommand(changeCommand("confirm", "Mark a pending booking as confirmed.", true))
}

func changeCommand(use, short string, confirm bool) *cobra.Command {
	purge := false
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: base.Wrap80(short),
		Example: `
petsit ` + use + ` 1f3a9c2e
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return bookingCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			c := &bookings.Change{
				Service: svc,
				ID:      args[0],
				Confirm: confirm,
				Purge:   purge,
				JSON:    oo.JSON,
			}
			err = c.Do(context.Background())
			return oo.HandleError(err)
		},
	}
	if !confirm {
		cmd.Example += "petsit cancel 1f3a9c2e --purge\n"
		cmd.Flags().BoolVar(&purge, "purge", false, "Also erase the booking from the store.")
	}
	base.AddOutputArg(cmd, oo)
	return cmd
}
