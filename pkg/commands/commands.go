package commands

import (
	"context"
	"strings"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/petsit/pkg/app"
	"tableflip.dev/petsit/pkg/logging"
	"tableflip.dev/petsit/pkg/store"
)

var (
	oo      = &base.OutputOptions{}
	verbose bool
	logger  = zap.NewNop()
	config  store.Config
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "petsit",
		Short: base.Wrap80("Find a pet sitter and book a visit from the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// version and completion work without a config.
			switch cmd.Name() {
			case "version", "completion":
				return nil
			}
			var err error
			if config, err = store.LoadConfig(); err != nil {
				return err
			}
			logger, err = logging.New(logging.Options{
				File:    config.LogFile(),
				Level:   config.LogLevel(),
				Verbose: verbose,
			})
			if err != nil {
				return err
			}
			logger.Debug("loaded config", zap.String("path", config.BasePath()), zap.String("file", store.ConfigFile(config)))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log at debug level to the configured log.file.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addBook(topLevel)
	addBookings(topLevel)
	addCancel(topLevel)
	addConfirm(topLevel)
	addSitters(topLevel)
	addDemo(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func service() (*app.Service, error) {
	p, err := store.Load(config, logger)
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p, Logger: logger.Named("app")}, nil
}

// now is the current time in the configured timezone.
func now() time.Time {
	if config != nil && config.Location() != nil {
		return time.Now().In(config.Location())
	}
	return time.Now()
}

func sitterCompletions(toComplete string) []string {
	svc, err := service()
	if err != nil {
		return nil
	}
	all, err := svc.Sitters(context.Background(), "")
	if err != nil {
		return nil
	}
	var ids []string
	for _, s := range all {
		if strings.HasPrefix(s.ID, toComplete) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func bookingCompletions(toComplete string) []string {
	svc, err := service()
	if err != nil {
		return nil
	}
	all, err := svc.Bookings(context.Background(), app.BookingFilter{})
	if err != nil {
		return nil
	}
	var ids []string
	for _, b := range all {
		if id := b.ShortID(); strings.HasPrefix(id, toComplete) {
			ids = append(ids, id+"\t"+b.When())
		}
	}
	return ids
}

func registerSitterCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("sitter", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sitterCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}
