package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"

	"github.com/alex-galey/cloudpilot/pkg/config"
)

// NewMCPServerInstance creates a new MCP server instance.
func NewMCPServerInstance(cfg *config.ServerConfig, logger *slog.Logger) *server.MCPServer {
	logger.Debug("Creating MCP server instance")
	version := "dev"
	mcpServer := server.NewMCPServer(
		"CloudPilot MCP Server",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
	)
	logger.Debug("MCP server instance created successfully")
	return mcpServer
}

var Module = fx.Module("server",
	fx.Provide(
		NewMCPServerInstance,
		NewMCPAdapter,
	),
	fx.Invoke(registerServerHooks),
)
