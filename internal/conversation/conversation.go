// Package conversation is the vault-scoped registry of chat conversations.
package conversation

import (
	"context"
	_ "embed"
	"time"

	"github.com/stacklok/vault-mcp-registry/internal/docstore"
	"github.com/stacklok/vault-mcp-registry/internal/registry"
)

const (
	// RegistryName identifies the conversation registry in logs and metrics
	RegistryName = "conversations"
	// FileName is the registry document inside the vault metadata directory
	FileName = "conversations-registry.json"
	// Field is the top-level document field holding the conversations
	Field = "conversations"
)

//go:embed schema.json
var schemaJSON []byte

var schema = docstore.MustCompileSchema("conversations-registry.schema.json", schemaJSON)

// Conversation is the metadata of one conversation held in a vault
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Model     string     `json:"model,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Archived  bool       `json:"archived,omitempty"`

	// Extra carries fields written by other tools
	Extra registry.Extra `json:"-"`
}

type plainConversation Conversation

// UnmarshalJSON decodes the declared fields and keeps every other member in Extra
func (c *Conversation) UnmarshalJSON(data []byte) error {
	var p plainConversation
	extra, err := registry.DecodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*c = Conversation(p)
	c.Extra = extra
	return nil
}

// MarshalJSON encodes the declared fields followed by Extra
func (c Conversation) MarshalJSON() ([]byte, error) {
	return registry.EncodeWithExtra(plainConversation(c), c.Extra)
}

// Definition describes the conversation registry document
func Definition() registry.Definition[Conversation] {
	return registry.Definition[Conversation]{
		Name:     RegistryName,
		FileName: FileName,
		Field:    Field,
		Schema:   schema,
		ID:       func(c Conversation) string { return c.ID },
		WithID: func(c Conversation, id string) Conversation {
			c.ID = id
			return c
		},
	}
}

// Registry stores conversations in the active vault and keeps their timestamps current
type Registry struct {
	*registry.Collection[Conversation]
	now func() time.Time
}

// NewRegistry creates the conversation registry
func NewRegistry(resolver registry.VaultResolver, opts ...registry.Option) *Registry {
	return &Registry{
		Collection: registry.NewCollection(Definition(), resolver, opts...),
		now:        time.Now,
	}
}

// Add stores c, stamping CreatedAt and UpdatedAt when they are unset
func (r *Registry) Add(ctx context.Context, c Conversation, windowID string) (Conversation, error) {
	now := r.now().UTC()
	if c.CreatedAt == nil {
		c.CreatedAt = &now
	}
	if c.UpdatedAt == nil {
		c.UpdatedAt = &now
	}
	return r.Collection.Add(ctx, c, windowID)
}

// Update replaces the conversation stored under id and refreshes UpdatedAt
func (r *Registry) Update(ctx context.Context, id string, c Conversation, windowID string) (Conversation, error) {
	now := r.now().UTC()
	c.UpdatedAt = &now
	return r.Collection.Update(ctx, id, c, windowID)
}
