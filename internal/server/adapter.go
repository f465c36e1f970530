package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alex-galey/cloudpilot/internal/agent"
	"github.com/alex-galey/cloudpilot/internal/directive"
	"github.com/alex-galey/cloudpilot/internal/provision"
	"github.com/alex-galey/cloudpilot/internal/shared"
	"github.com/alex-galey/cloudpilot/internal/shared/metrics"
	"github.com/alex-galey/cloudpilot/internal/tool"
	"github.com/alex-galey/cloudpilot/pkg/logger"
)

const (
	recentLogsURI = "cloudpilot://logs/recent"
	metricsURI    = "cloudpilot://metrics"
	resourcesURI  = "cloudpilot://resources"
)

// MCPAdapter exposes the provisioning agent over MCP.
// Single responsibility: adapt agent capabilities to MCP server registration.
type MCPAdapter struct {
	controller *agent.Controller
	dispatcher *tool.Dispatcher
	provider   provision.Provider
	mcpServer  *mcpserver.MCPServer
	logBuffer  *logger.RingBuffer
	collector  *metrics.InMemoryCollector
	logger     *slog.Logger
}

// NewMCPAdapter creates a new MCP adapter.
func NewMCPAdapter(controller *agent.Controller, dispatcher *tool.Dispatcher, provider provision.Provider, mcpServer *mcpserver.MCPServer, logBuffer *logger.RingBuffer, collector *metrics.InMemoryCollector, logger *slog.Logger) *MCPAdapter {
	return &MCPAdapter{
		controller: controller,
		dispatcher: dispatcher,
		provider:   provider,
		mcpServer:  mcpServer,
		logBuffer:  logBuffer,
		collector:  collector,
		logger:     logger,
	}
}

// Register registers the agent's tools and resources with the MCP server.
func (a *MCPAdapter) Register(ctx context.Context) error {
	a.registerChatTool()
	a.registerEstimateTool()
	a.registerLogsResource()
	a.registerMetricsResource()
	a.registerResourcesResource()

	a.logger.Info("MCP capabilities registered",
		"tools", 2,
		"resources", 3)
	return nil
}

// registerChatTool exposes the conversational provisioning entrypoint.
// Resource creation inside a chat turn stays behind plan confirmation.
func (a *MCPAdapter) registerChatTool() {
	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the cloud provisioning assistant. Deployments require confirming a proposed plan."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The user message for this turn"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session identifier for conversation continuity; omit to use the default session"),
		),
	)

	a.mcpServer.AddTool(chatTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		message, _ := args["message"].(string)
		if strings.TrimSpace(message) == "" {
			return Error("invalid_arguments", "message is required", "Provide the user message in the 'message' argument"), nil
		}

		sessionID, _ := args["session_id"].(string)
		if sessionID == "" {
			sessionID = "default"
		}
		ctx = shared.WithSessionContext(ctx, &shared.SessionContext{
			SessionID: sessionID,
			StartedAt: time.Now(),
		})

		reply, err := a.controller.Turn(ctx, sessionID, message)
		if err != nil {
			a.logger.Error("Chat turn failed", "session_id", sessionID, "error", err)
			return Error("chat_failed", fmt.Sprintf("failed to process message: %v", err), ""), nil
		}

		return OK(reply, map[string]any{"session_id": sessionID}), nil
	})
}

// registerEstimateTool exposes cost estimation directly, outside any chat
// session. Estimation never creates resources, so it bypasses the plan gate.
func (a *MCPAdapter) registerEstimateTool() {
	estimateTool := mcp.NewTool("estimate-cost",
		mcp.WithDescription("Estimate the monthly cost of cloud resources without creating anything"),
		mcp.WithString("type",
			mcp.Description("Resource type: compute, storage, database or function"),
		),
		mcp.WithString("sizeClass",
			mcp.Description("Instance type or class, e.g. t2.micro or db.t3.micro"),
		),
		mcp.WithNumber("quantity",
			mcp.Description("Number of resources (default 1)"),
		),
		mcp.WithNumber("durationMonths",
			mcp.Description("Commitment length in months (default 1)"),
		),
		mcp.WithString("termType",
			mcp.Description("Pricing term: on-demand, reserved or spot"),
		),
		mcp.WithNumber("storageGB",
			mcp.Description("Storage size in GB for storage and database resources"),
		),
	)

	a.mcpServer.AddTool(estimateTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := a.dispatcher.Dispatch(ctx, directive.Directive{
			Kind:     directive.KindAction,
			Function: "estimate-cost",
			Params:   req.GetArguments(),
		})
		if !result.Success {
			return Error("estimate_failed", result.Message, "Provide at least a resource type and size class"), nil
		}
		return OK(result.Message, nil), nil
	})
}

// registerLogsResource exposes recent server logs, redacted of credentials.
func (a *MCPAdapter) registerLogsResource() {
	resource := mcp.NewResource(
		recentLogsURI,
		"Recent server logs",
		mcp.WithResourceDescription("The most recent server log lines with credentials redacted"),
		mcp.WithMIMEType("text/plain"),
	)

	a.mcpServer.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		lines := SanitizeLogLines(a.logBuffer.GetLast(200))
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      recentLogsURI,
				MIMEType: "text/plain",
				Text:     strings.Join(lines, "\n"),
			},
		}, nil
	})
}

// registerResourcesResource exposes the provisioning inventory.
func (a *MCPAdapter) registerResourcesResource() {
	resource := mcp.NewResource(
		resourcesURI,
		"Provisioned resources",
		mcp.WithResourceDescription("Every resource created since startup, in creation order"),
		mcp.WithMIMEType("application/json"),
	)

	a.mcpServer.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		contents, err := a.inventoryContents()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      resourcesURI,
				MIMEType: "application/json",
				Text:     contents,
			},
		}, nil
	})
}

func (a *MCPAdapter) inventoryContents() (string, error) {
	data, err := json.MarshalIndent(a.provider.Resources(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal resource inventory: %w", err)
	}
	return string(data), nil
}

// registerMetricsResource exposes tool and model call counters.
func (a *MCPAdapter) registerMetricsResource() {
	resource := mcp.NewResource(
		metricsURI,
		"Server metrics",
		mcp.WithResourceDescription("Per-tool and per-model call counters since startup"),
		mcp.WithMIMEType("application/json"),
	)

	a.mcpServer.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.MarshalIndent(a.collector.Snapshot(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metrics snapshot: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      metricsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
