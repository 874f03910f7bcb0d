// Package mcpserver is the vault-scoped registry of MCP server definitions.
package mcpserver

import (
	_ "embed"
	"strings"

	"github.com/stacklok/vault-mcp-registry/internal/docstore"
	"github.com/stacklok/vault-mcp-registry/internal/registry"
)

const (
	// RegistryName identifies the MCP server registry in logs and metrics
	RegistryName = "mcp-servers"
	// FileName is the registry document inside the vault metadata directory
	FileName = "mcp-servers-registry.json"
	// Field is the top-level document field holding the servers
	Field = "servers"
)

// Transport types accepted in a server definition
const (
	TransportStdio          = "stdio"
	TransportSSE            = "sse"
	TransportStreamableHTTP = "streamable-http"
)

// ErrServerNotFound is returned when an update or removal targets an unknown server id
var ErrServerNotFound = registry.ErrRecordNotFound

//go:embed schema.json
var schemaJSON []byte

var schema = docstore.MustCompileSchema("mcp-servers-registry.schema.json", schemaJSON)

// Server is one MCP server definition. Only ID is required.
type Server struct {
	ID          string            `json:"id"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Transport   string            `json:"transport,omitempty"`
	Command     string            `json:"command,omitempty"`
	Args        []string          `json:"args,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	URL         string            `json:"url,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`

	// Extra carries fields written by other tools, such as cwd or timeout
	Extra registry.Extra `json:"-"`
}

// plainServer has Server's fields without its JSON methods
type plainServer Server

// UnmarshalJSON decodes the declared fields and keeps every other member in Extra
func (s *Server) UnmarshalJSON(data []byte) error {
	var p plainServer
	extra, err := registry.DecodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*s = Server(p)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes the declared fields followed by Extra
func (s Server) MarshalJSON() ([]byte, error) {
	return registry.EncodeWithExtra(plainServer(s), s.Extra)
}

// EffectiveTransport returns the declared transport, or the one implied by the
// command or url when none is declared
func (s Server) EffectiveTransport() string {
	switch {
	case s.Transport != "":
		return s.Transport
	case s.Command != "":
		return TransportStdio
	case s.URL != "":
		return TransportStreamableHTTP
	default:
		return ""
	}
}

// Target returns the command line of a local server or the url of a remote one
func (s Server) Target() string {
	if s.EffectiveTransport() == TransportStdio {
		return strings.Join(append([]string{s.Command}, s.Args...), " ")
	}
	return s.URL
}

// Registry is the collection of MCP servers in the active vault
type Registry = registry.Collection[Server]

// Definition describes the MCP server registry document
func Definition() registry.Definition[Server] {
	return registry.Definition[Server]{
		Name:     RegistryName,
		FileName: FileName,
		Field:    Field,
		Schema:   schema,
		ID:       func(s Server) string { return s.ID },
		WithID: func(s Server, id string) Server {
			s.ID = id
			return s
		},
	}
}

// NewRegistry creates the MCP server registry
func NewRegistry(resolver registry.VaultResolver, opts ...registry.Option) *Registry {
	return registry.NewCollection(Definition(), resolver, opts...)
}
