package options

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Open the interactive screen even when flags are given.`)
}

// IsTerminal reports whether stdin and stdout are both attached to a terminal,
// which the full screen UI needs.
func IsTerminal() bool {
	return terminal(os.Stdin.Fd()) && terminal(os.Stdout.Fd())
}

func terminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
