package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/netexval"
	"github.com/erraggy/netexval/internal/cliutil"
)

func newVersionCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the netexval version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if full {
				cliutil.Writef(cmd.OutOrStdout(), "%s", netexval.BuildInfo())
				return
			}
			cliutil.Writef(cmd.OutOrStdout(), "%s\n", netexval.Short())
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print commit, build time and Go version")
	return cmd
}
