package commands

import (
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	Verbose bool
}

// NewRootCmd creates a new root command instance with every subcommand.
// Each call returns a fresh command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "netexval",
		Short:         "Validate NeTEx transit-schedule documents and datasets",
		Long:          "netexval validates NeTEx documents against the XML schema, the structural rule catalog, identifier and reference rules, and business rules over the object graph.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Enable debug logging to stderr")

	cmd.AddCommand(
		newValidateCmd(g),
		newDatasetCmd(g),
		newRulesCmd(g),
		newMCPCmd(),
		newVersionCmd(),
	)
	return cmd
}
