package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/petsit/pkg/calendar"
	"tableflip.dev/petsit/pkg/commands/options"
	"tableflip.dev/petsit/pkg/runner/book"
	"tableflip.dev/petsit/pkg/runner/sitters"
	"tableflip.dev/petsit/pkg/state/viewmode"
)

func addSitters(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "sitters",
		Short: base.Wrap80("Browse sitters as a list or on a map. Press enter on a sitter to book them."),
		Example: `
petsit sitters
petsit sitters --view map --city portland
petsit sitters --print --json
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
			s := &sitters.Sitters{
				Service:     svc,
				City:        vo.City,
				Mode:        viewmode.New(mode),
				Interactive: !printOnly && options.IsTerminal(),
				Book: &book.Book{
					Service: svc,
					Today:   calendar.DateOf(now()),
					View:    mode,
				},
				JSON: oo.JSON,
			}
			err = s.Do(context.Background())
			if errors.Is(err, book.ErrAborted) {
				return nil
			}
			return oo.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, vo)
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the list or map instead of opening the browser.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
