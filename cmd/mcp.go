package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/mcp"
)

// mcpServeCmd exposes the catalog as MCP tools over stdio
var mcpServeCmd = &cobra.Command{
	Use:    "mcp-serve",
	Short:  "Serve the catalog as MCP tools over stdio",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info().Str("version", version).Msg("Starting MCP server on stdio")
		return mcp.NewServer(operations, version, logger).ServeStdio(cmd.Context())
	},
}
