package commands

import (
	"os"

	"github.com/abdul-hamid-achik/flatroutes/pkg/mcp"
	"github.com/spf13/cobra"
)

var mcpWorkdir string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the manifest compiler over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the tools
build_manifest, route_path, match_path, generate_route and info.

Examples:
  flatroutes mcp
  flatroutes mcp --workdir ./web`,
	Run: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpWorkdir, "workdir", "", "Project directory (default: current directory)")
}

func runMCP(cmd *cobra.Command, args []string) {
	workdir := mcpWorkdir
	if workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fail("Failed to resolve working directory", err)
		}
		workdir = wd
	}

	if err := mcp.NewServer(workdir).ServeStdio(); err != nil {
		fail("MCP server error", err)
	}
}
