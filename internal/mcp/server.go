// Package mcp serves the layout and configuration tooling over the Model
// Context Protocol so an assistant can plan window arrangements.
package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wintk/internal/config"
)

const (
	ServerName    = "wintk"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for wintk.
type Server struct {
	mcpServer *mcpsdk.Server
	loaded    *config.LoadResult
	logger    *slog.Logger
}

// NewServer creates a server answering from the loaded configuration.
func NewServer(loaded *config.LoadResult, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{loaded: loaded, logger: logger}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect serves one session over t.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "layout_dump",
		Description: "Tile a number of windows on an off-screen desktop and report each window's frame and client rectangle. Modes: grid, vertical, horizontal, master_stack. Defaults to 4 windows on 640x480 with the configured preset.",
	}, s.handleLayoutDump)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_presets",
		Description: "List the builtin configuration presets with their metrics.",
	}, s.handleListPresets)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "explain_config",
		Description: "Show the effective value of a configuration path (e.g. metrics.button_size) and where it came from: a file location, the preset or the defaults.",
	}, s.handleExplainConfig)
}
