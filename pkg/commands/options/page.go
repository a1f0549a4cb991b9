package options

import (
	"github.com/spf13/cobra"
)

// PageOptions
type PageOptions struct {
	Page int
	Size int
}

// AddPageArgs registers --page and --size. A zero size means the configured
// page_size.
func AddPageArgs(cmd *cobra.Command, o *PageOptions) {
	cmd.Flags().IntVar(&o.Page, "page", 1,
		"Page of results to show, starting at 1.")
	cmd.Flags().IntVar(&o.Size, "size", 0,
		"Results per page. Defaults to page_size from the config file.")
}
