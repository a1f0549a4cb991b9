package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/petsit/pkg/state/viewmode"
)

// ViewOptions
type ViewOptions struct {
	View string
	City string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVar(&o.View, "view", "",
		"How to show sitters, one of 'list' or 'map'. Defaults to view from the config file.")
	cmd.Flags().StringVar(&o.City, "city", "",
		"Only show sitters whose city contains this text.")
}

// GetMode resolves --view, falling back to def when the flag is unset.
func (o *ViewOptions) GetMode(def string) (viewmode.Mode, error) {
	if o.View != "" {
		return viewmode.ParseMode(o.View)
	}
	return viewmode.ParseMode(def)
}
