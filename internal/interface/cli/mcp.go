package cli

import (
	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/cmd/femstage/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for agent integration",
	Long: `Start a Model Context Protocol server that exposes staging tools
(resolve_working_directory, list_members, get_mesh_to_solve) over
stdio, so agents can stage solver runs without shelling out.

Example MCP client config:
  {
    "mcpServers": {
      "femstage": {
        "command": "femstage",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	return mcp.StartServer(ledgerPath)
}
