package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/petsit/pkg/app"
)

// Demo seeds the sample sitter directory.
type Demo struct {
	Service *app.Service
	Out     io.Writer
}

func (d *Demo) Do(ctx context.Context) error {
	n, err := d.Service.SeedDemo(ctx)
	if err != nil {
		return err
	}
	out := d.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "Added %d demo sitters. Try `petsit sitters --view map`.\n", n)
	return nil
}
