// Package mcptools exposes the vault registries as MCP tools, so an MCP client can list and
// manage the servers and conversations of the vault a window works in.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stacklok/vault-mcp-registry/internal/filtering"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
	"github.com/stacklok/vault-mcp-registry/internal/service"
)

// ServerName is the implementation name reported to MCP clients
const ServerName = "vault-registry"

const (
	argWindow      = "window"
	argID          = "id"
	argName        = "name"
	argDescription = "description"
	argTransport   = "transport"
	argCommand     = "command"
	argArgs        = "args"
	argURL         = "url"
	argConfig      = "config"
	argInclude     = "include"
	argExclude     = "exclude"
)

type tools struct {
	svc service.RegistryService
}

// NewServer creates an MCP server whose tools call svc
func NewServer(svc service.RegistryService, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	t := &tools{svc: svc}
	s.AddTool(listVaultsTool(), t.listVaults)
	s.AddTool(activeVaultTool(), t.activeVault)
	s.AddTool(listMcpServersTool(), t.listMcpServers)
	s.AddTool(addMcpServerTool(), t.addMcpServer)
	s.AddTool(removeMcpServerTool(), t.removeMcpServer)
	s.AddTool(importMcpServersTool(), t.importMcpServers)
	s.AddTool(listConversationsTool(), t.listConversations)
	return s
}

func windowArg() mcp.ToolOption {
	return mcp.WithString(argWindow,
		mcp.Description("Window id whose active vault is used; the first vault when omitted"),
	)
}

func listVaultsTool() mcp.Tool {
	return mcp.NewTool("list_vaults",
		mcp.WithDescription("Lists registered vaults with their server and conversation counts."),
	)
}

func activeVaultTool() mcp.Tool {
	return mcp.NewTool("get_active_vault",
		mcp.WithDescription("Returns the vault registry operations for a window act on."),
		windowArg(),
	)
}

func listMcpServersTool() mcp.Tool {
	return mcp.NewTool("list_mcp_servers",
		mcp.WithDescription("Lists the MCP servers registered in the active vault, keyed by id."),
		windowArg(),
	)
}

func addMcpServerTool() mcp.Tool {
	return mcp.NewTool("add_mcp_server",
		mcp.WithDescription("Registers an MCP server in the active vault and returns its id."),
		mcp.WithString(argName, mcp.Description("Display name"), mcp.Required()),
		mcp.WithString(argDescription, mcp.Description("What the server provides")),
		mcp.WithString(argTransport,
			mcp.Description("Transport, inferred from command or url when omitted"),
			mcp.Enum(mcpserver.TransportStdio, mcpserver.TransportSSE, mcpserver.TransportStreamableHTTP),
		),
		mcp.WithString(argCommand, mcp.Description("Command of a stdio server")),
		mcp.WithArray(argArgs,
			mcp.Description("Command arguments"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString(argURL, mcp.Description("URL of a remote server")),
		windowArg(),
	)
}

func removeMcpServerTool() mcp.Tool {
	return mcp.NewTool("remove_mcp_server",
		mcp.WithDescription("Removes an MCP server from the active vault."),
		mcp.WithString(argID, mcp.Description("Server id"), mcp.Required()),
		windowArg(),
	)
}

func importMcpServersTool() mcp.Tool {
	return mcp.NewTool("import_mcp_servers",
		mcp.WithDescription("Imports servers from an MCP client configuration such as claude_desktop_config.json. "+
			"Servers whose name is already registered are skipped."),
		mcp.WithString(argConfig, mcp.Description("Configuration file content (JSON or JSONC)"), mcp.Required()),
		mcp.WithArray(argInclude,
			mcp.Description("Only import names matching one of these glob patterns"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray(argExclude,
			mcp.Description("Skip names matching one of these glob patterns"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		windowArg(),
	)
}

func listConversationsTool() mcp.Tool {
	return mcp.NewTool("list_conversations",
		mcp.WithDescription("Lists the conversations stored in the active vault, keyed by id."),
		windowArg(),
	)
}

func (t *tools) listVaults(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.svc.VaultSummaries(ctx))
}

func (t *tools) activeVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, ok := t.svc.ActiveVault(ctx, req.GetString(argWindow, ""))
	if !ok {
		return mcp.NewToolResultError("no vault available"), nil
	}
	return jsonResult(v)
}

func (t *tools) listMcpServers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.svc.GetMcpServers(ctx, req.GetString(argWindow, "")))
}

func (t *tools) addMcpServer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString(argName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s := mcpserver.Server{
		Name:        name,
		Description: req.GetString(argDescription, ""),
		Transport:   req.GetString(argTransport, ""),
		Command:     req.GetString(argCommand, ""),
		Args:        req.GetStringSlice(argArgs, nil),
		URL:         req.GetString(argURL, ""),
	}
	if s.Transport == "" {
		s.Transport = s.EffectiveTransport()
	}

	added, ok := t.svc.AddMcpServer(ctx, s, req.GetString(argWindow, ""))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add MCP server %s", name)), nil
	}
	return mcp.NewToolResultText(added.ID), nil
}

func (t *tools) removeMcpServer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString(argID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !t.svc.RemoveMcpServer(ctx, id, req.GetString(argWindow, "")) {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove MCP server %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed %s", id)), nil
}

func (t *tools) importMcpServers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := req.RequireString(argConfig)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filter := filtering.NameFilter{
		Include: req.GetStringSlice(argInclude, nil),
		Exclude: req.GetStringSlice(argExclude, nil),
	}
	if err := filter.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n, ok := t.svc.ImportMcpServers(ctx, []byte(data), filter, req.GetString(argWindow, ""))
	if !ok {
		return mcp.NewToolResultError("failed to import MCP servers"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("imported %d", n)), nil
}

func (t *tools) listConversations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.svc.GetConversations(ctx, req.GetString(argWindow, "")))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
