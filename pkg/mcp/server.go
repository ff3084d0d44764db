// Package mcp exposes the route manifest compiler over the Model Context
// Protocol so editors and agents can inspect a project's routes.
package mcp

import (
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/flatroutes/internal/version"
	"github.com/abdul-hamid-achik/flatroutes/pkg/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps an MCP server bound to a project directory.
type Server struct {
	workdir   string
	mcpServer *server.MCPServer
}

// NewServer creates a Server whose relative paths resolve against workdir.
func NewServer(workdir string) *Server {
	s := &Server{
		workdir: workdir,
		mcpServer: server.NewMCPServer(
			"flatroutes",
			version.GetVersion(),
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// ServeStdio serves MCP over standard input and output until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("build_manifest",
		mcp.WithDescription("Scan an app directory and build its route manifest. Returns the manifest and any id or path collisions."),
		mcp.WithString("app_dir",
			mcp.Description("App directory, relative to the project root (default from flatroutes.yaml, else \"app\")"),
		),
		mcp.WithString("convention",
			mcp.Description("File naming convention"),
			mcp.Enum("flat", "extensions"),
		),
	), s.handleBuildManifest)

	s.mcpServer.AddTool(mcp.NewTool("route_path",
		mcp.WithDescription("Convert a route id such as \"blog.$slug\" into its URL path template."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Route id"),
		),
	), s.handleRoutePath)

	s.mcpServer.AddTool(mcp.NewTool("generate_route",
		mcp.WithDescription("Create an empty route module for a route id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Route id, e.g. \"blog.$slug\""),
		),
		mcp.WithString("extension",
			mcp.Description("File extension (default: tsx)"),
		),
	), s.handleGenerateRoute)

	s.mcpServer.AddTool(mcp.NewTool("match_path",
		mcp.WithDescription("Resolve a URL path to the route that renders it, with its params and parent chain."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("URL path, e.g. \"/blog/hello\""),
		),
		mcp.WithString("app_dir",
			mcp.Description("App directory, relative to the project root (default from flatroutes.yaml, else \"app\")"),
		),
	), s.handleMatchPath)

	s.mcpServer.AddTool(mcp.NewTool("info",
		mcp.WithDescription("Report the flatroutes version and the resolved project configuration."),
	), s.handleInfo)
}

// resolve makes p relative to the server's workdir.
func (s *Server) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || s.workdir == "" {
		return p
	}
	return filepath.Join(s.workdir, p)
}

// loadConfig reads flatroutes.yaml from the workdir when present.
func (s *Server) loadConfig() (*config.Config, error) {
	path := s.resolve(config.FileName)
	if path == "" {
		path = config.FileName
	}
	if _, err := os.Stat(path); err != nil {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}
