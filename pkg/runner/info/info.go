package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/petsit/pkg/app"
	"tableflip.dev/petsit/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("PETSIT_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PETSIT_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "PETSIT_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if file := store.ConfigFile(n.Config); file != "" {
		_, _ = fmt.Fprintln(out, "Config file:", file)
	} else {
		_, _ = fmt.Fprintln(out, "Config file: none, using defaults")
	}
	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.view:", n.Config.View())
	_, _ = fmt.Fprintln(out, "Config.timezone:", n.Config.Location())
	if n.Config.LogFile() != "" {
		_, _ = fmt.Fprintf(out, "Config.log: %s (%s)\n", n.Config.LogFile(), n.Config.LogLevel())
	}

	if n.Service == nil {
		return fmt.Errorf("info: failed to create service")
	}

	sitters, err := n.Service.Sitters(ctx, "")
	if err != nil {
		return err
	}
	bookings, err := n.Service.Bookings(ctx, app.BookingFilter{IncludeCancelled: true})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Sitters: %d\n", len(sitters))
	if len(sitters) == 0 {
		_, _ = fmt.Fprintln(out, "  run `petsit demo` to add the demo directory")
	}
	_, _ = fmt.Fprintf(out, "Bookings: %d\n", len(bookings))
	return nil
}
