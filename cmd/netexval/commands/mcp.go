package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/netexval/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the validator as MCP tools over stdio",
		Long:  "Start a Model Context Protocol server over stdio exposing the validate, validate_dataset and rule_catalog tools. Defaults come from NETEXVAL_* environment variables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
