package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weft-labs/sigscout-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Runs the Model Context Protocol server, letting AI assistants browse
the signal log and drive the ingestion pipeline through tool calls.

The default transport is stdio, which is what Claude Desktop and most
MCP clients launch the binary with. Pass --port to expose the
streamable HTTP transport instead, useful for the MCP Inspector or a
long-running shared instance.

Examples:
  sigscout mcp serve
  sigscout mcp serve --port 8080

A Claude Desktop entry pointing at the stdio transport:
  "sigscout": { "command": "/path/to/sigscout", "args": ["mcp", "serve"] }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Signals:  signalService,
		Pipeline: pipelineService,
	})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
