package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newVersionCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the facelive version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			pterm.Fprintln(opts.Out, "facelive "+Version)
		},
	}
}
