package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"

	"github.com/stacklok/vault-mcp-registry/internal/filtering"
)

// ErrInvalidClientConfig is returned when an imported client configuration cannot be read
var ErrInvalidClientConfig = errors.New("invalid MCP client configuration")

// clientServer is one entry of an MCP client configuration file
type clientServer struct {
	Type        string            `json:"type"`
	Transport   string            `json:"transport"`
	Description string            `json:"description"`
	Command     string            `json:"command"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers"`
	Disabled    bool              `json:"disabled"`
}

// ParseClientConfig reads the servers declared in an MCP client configuration, such as
// the files written by desktop assistants and editors. Comments and trailing commas are
// accepted. Servers are read from the "mcpServers" object, or "servers" when absent,
// and returned sorted by name without ids. A repeated key yields one entry per occurrence
// in document order.
func ParseClientConfig(data []byte) ([]Server, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClientConfig, err)
	}

	section := gjson.GetBytes(standard, "mcpServers")
	if !section.Exists() {
		section = gjson.GetBytes(standard, "servers")
	}
	if !section.IsObject() {
		return nil, fmt.Errorf("%w: no mcpServers object found", ErrInvalidClientConfig)
	}

	var (
		servers []Server
		errs    []error
	)
	section.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		server, err := convertClientServer(name, value)
		if err != nil {
			errs = append(errs, err)
			return true
		}
		servers = append(servers, server)
		return true
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClientConfig, errors.Join(errs...))
	}

	sort.SliceStable(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	return servers, nil
}

func convertClientServer(name string, value gjson.Result) (Server, error) {
	if !value.IsObject() {
		return Server{}, fmt.Errorf("server %q is not an object", name)
	}

	var entry clientServer
	if err := json.Unmarshal([]byte(value.Raw), &entry); err != nil {
		return Server{}, fmt.Errorf("server %q: %w", name, err)
	}

	transport, err := inferTransport(entry)
	if err != nil {
		return Server{}, fmt.Errorf("server %q: %w", name, err)
	}

	return Server{
		Name:        name,
		Description: entry.Description,
		Transport:   transport,
		Command:     entry.Command,
		Args:        entry.Args,
		Env:         entry.Env,
		URL:         entry.URL,
		Headers:     entry.Headers,
		Disabled:    entry.Disabled,
	}, nil
}

func inferTransport(entry clientServer) (string, error) {
	declared := entry.Type
	if declared == "" {
		declared = entry.Transport
	}

	switch declared {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
		return declared, nil
	case "http", "streamableHttp":
		return TransportStreamableHTTP, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported transport %q", declared)
	}

	switch {
	case entry.Command != "":
		return TransportStdio, nil
	case entry.URL != "":
		return TransportStreamableHTTP, nil
	default:
		return "", errors.New("neither command nor url is set")
	}
}

// Import adds the servers of an MCP client configuration to the active vault of windowID.
// Servers rejected by filter or whose name is already registered in that vault are
// skipped. It returns the number of servers added.
func Import(ctx context.Context, reg *Registry, data []byte, filter filtering.NameFilter, windowID string) (int, error) {
	if err := filter.Validate(); err != nil {
		return 0, err
	}

	servers, err := ParseClientConfig(data)
	if err != nil {
		return 0, err
	}

	existing, err := reg.List(ctx, windowID)
	if err != nil {
		return 0, err
	}
	names := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		names[s.Name] = struct{}{}
	}

	imported := 0
	for _, server := range servers {
		if include, reason := filter.ShouldInclude(server.Name); !include {
			slog.DebugContext(ctx, "Skipping filtered MCP server", "name", server.Name, "reason", reason)
			continue
		}
		if _, ok := names[server.Name]; ok {
			slog.InfoContext(ctx, "Skipping already registered MCP server", "name", server.Name)
			continue
		}
		if _, err := reg.Add(ctx, server, windowID); err != nil {
			return imported, fmt.Errorf("failed to import server %q: %w", server.Name, err)
		}
		names[server.Name] = struct{}{}
		imported++
	}

	slog.InfoContext(ctx, "Imported MCP servers", "imported", imported, "total", len(servers))
	return imported, nil
}
