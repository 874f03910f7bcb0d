// Package registry implements vault-scoped registries: keyed collections of records
// persisted as a single JSON document inside each vault's metadata directory.
//
// Every operation resolves the active vault for the calling window, then runs a
// whole-document read-modify-write through the document store. Operations are not
// serialised against each other; concurrent writers to the same vault may lose updates.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/vault-mcp-registry/internal/docstore"
	"github.com/stacklok/vault-mcp-registry/internal/otel"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

var (
	// ErrRecordNotFound is returned when an update or removal targets an unknown id
	ErrRecordNotFound = errors.New("record not found")
	// ErrRecordExists is returned by Add under CollisionReject when the id is taken
	ErrRecordExists = errors.New("record already exists")
)

// CollisionPolicy decides what Add does when the record id is already present
type CollisionPolicy string

const (
	// CollisionOverwrite replaces the existing record
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionReject fails the add with ErrRecordExists
	CollisionReject CollisionPolicy = "reject"
)

// ParseCollisionPolicy parses a policy name. The empty string selects CollisionOverwrite.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionReject:
		return CollisionReject, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q (expected %q or %q)", s, CollisionOverwrite, CollisionReject)
	}
}

// VaultResolver resolves the vault for an optional window id
type VaultResolver interface {
	ResolveActiveVault(ctx context.Context, windowID string) (vault.Vault, error)
}

// Document is the on-disk shape of a registry: one named field holding the id-keyed records
type Document[T any] map[string]map[string]T

// Definition describes one kind of registry
type Definition[T any] struct {
	// Name identifies the registry in logs, spans and metrics (e.g. "mcp-servers")
	Name string
	// FileName is the document name inside the vault metadata directory
	FileName string
	// Field is the top-level JSON field holding the records (e.g. "servers")
	Field string
	// Schema validates the whole document
	Schema *docstore.Schema
	// ID returns the id stored in a record
	ID func(T) string
	// WithID returns a copy of the record carrying id
	WithID func(T, string) T
}

// Option configures a Collection
type Option func(*collectionOptions)

type collectionOptions struct {
	policy       CollisionPolicy
	newID        func() string
	tracer       trace.Tracer
	storeOptions []docstore.Option
}

// WithCollisionPolicy sets the policy applied when Add meets an existing id
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(o *collectionOptions) {
		o.policy = p
	}
}

// WithIDGenerator replaces the random UUID generator used for records without an id
func WithIDGenerator(fn func() string) Option {
	return func(o *collectionOptions) {
		o.newID = fn
	}
}

// WithTracer enables tracing of registry operations
func WithTracer(t trace.Tracer) Option {
	return func(o *collectionOptions) {
		o.tracer = t
	}
}

// WithStoreOptions passes options to the underlying document store
func WithStoreOptions(opts ...docstore.Option) Option {
	return func(o *collectionOptions) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}

// Collection is a vault-scoped registry of records of type T
type Collection[T any] struct {
	def      Definition[T]
	resolver VaultResolver
	store    *docstore.Store[Document[T]]
	policy   CollisionPolicy
	newID    func() string
	tracer   trace.Tracer
}

// NewCollection creates a Collection for the given definition
func NewCollection[T any](def Definition[T], resolver VaultResolver, opts ...Option) *Collection[T] {
	o := collectionOptions{
		policy: CollisionOverwrite,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	field := def.Field
	return &Collection[T]{
		def:      def,
		resolver: resolver,
		store: docstore.New(def.Schema, func() Document[T] {
			return Document[T]{field: map[string]T{}}
		}, o.storeOptions...),
		policy: o.policy,
		newID:  o.newID,
		tracer: o.tracer,
	}
}

// Name returns the registry name
func (c *Collection[T]) Name() string {
	return c.def.Name
}

// Path returns the registry document location inside v
func (c *Collection[T]) Path(v vault.Vault) string {
	return filepath.Join(v.MetadataDir(), c.def.FileName)
}

// List returns every record in the active vault of windowID
func (c *Collection[T]) List(ctx context.Context, windowID string) (map[string]T, error) {
	ctx, span := c.startSpan(ctx, "list", windowID)
	defer span.End()

	v, err := c.resolve(ctx, windowID)
	if err != nil {
		otel.RecordError(span, err)
		return nil, err
	}

	records := c.ListInVault(ctx, v)
	span.SetAttributes(otel.AttrVaultID.String(v.ID), otel.AttrResultCount.Int(len(records)))
	return records, nil
}

// ListInVault returns every record stored in v without any window resolution
func (c *Collection[T]) ListInVault(ctx context.Context, v vault.Vault) map[string]T {
	return c.records(ctx, c.store.Read(ctx, c.Path(v)), v)
}

// Get returns the record with the given id from the active vault of windowID
func (c *Collection[T]) Get(ctx context.Context, id, windowID string) (T, error) {
	var zero T
	records, err := c.List(ctx, windowID)
	if err != nil {
		return zero, err
	}
	record, ok := records[id]
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", c.def.Name, id, ErrRecordNotFound)
	}
	return record, nil
}

// Add stores record in the active vault of windowID, generating an id if it has none.
// It returns the stored record.
func (c *Collection[T]) Add(ctx context.Context, record T, windowID string) (T, error) {
	id := c.def.ID(record)
	if id == "" {
		id = c.newID()
		record = c.def.WithID(record, id)
	}

	err := c.mutate(ctx, "add", id, windowID, func(records map[string]T) error {
		if _, exists := records[id]; exists {
			if c.policy == CollisionReject {
				return fmt.Errorf("%s %s: %w", c.def.Name, id, ErrRecordExists)
			}
			slog.WarnContext(ctx, "Overwriting existing record on add", "registry", c.def.Name, "id", id)
		}
		records[id] = record
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Update replaces the record stored under id. The id inside record is ignored and
// forced to id. Update never creates records.
func (c *Collection[T]) Update(ctx context.Context, id string, record T, windowID string) (T, error) {
	record = c.def.WithID(record, id)

	err := c.mutate(ctx, "update", id, windowID, func(records map[string]T) error {
		if _, exists := records[id]; !exists {
			return fmt.Errorf("%s %s: %w", c.def.Name, id, ErrRecordNotFound)
		}
		records[id] = record
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Remove deletes the record stored under id
func (c *Collection[T]) Remove(ctx context.Context, id, windowID string) error {
	return c.mutate(ctx, "remove", id, windowID, func(records map[string]T) error {
		if _, exists := records[id]; !exists {
			return fmt.Errorf("%s %s: %w", c.def.Name, id, ErrRecordNotFound)
		}
		delete(records, id)
		return nil
	})
}

func (c *Collection[T]) mutate(
	ctx context.Context,
	op, id, windowID string,
	fn func(records map[string]T) error,
) error {
	ctx, span := c.startSpan(ctx, op, windowID)
	defer span.End()
	span.SetAttributes(otel.AttrRecordID.String(id))

	v, err := c.resolve(ctx, windowID)
	if err != nil {
		otel.RecordError(span, err)
		return err
	}
	span.SetAttributes(otel.AttrVaultID.String(v.ID))

	_, err = c.store.Update(ctx, c.Path(v), func(doc Document[T]) (Document[T], error) {
		records := c.records(ctx, doc, v)
		if err := fn(records); err != nil {
			return doc, err
		}
		doc[c.def.Field] = records
		return doc, nil
	})
	if err != nil {
		otel.RecordError(span, err)
		return err
	}
	return nil
}

func (c *Collection[T]) resolve(ctx context.Context, windowID string) (vault.Vault, error) {
	v, err := c.resolver.ResolveActiveVault(ctx, windowID)
	if err != nil {
		return vault.Vault{}, fmt.Errorf("failed to resolve vault for %s: %w", c.def.Name, err)
	}
	return v, nil
}

// records extracts the record map from doc, repairing entries whose id does not match
// their key so the key always wins.
func (c *Collection[T]) records(ctx context.Context, doc Document[T], v vault.Vault) map[string]T {
	records := doc[c.def.Field]
	if records == nil {
		return map[string]T{}
	}
	for key, record := range records {
		if c.def.ID(record) != key {
			slog.DebugContext(ctx, "Record id does not match its key, using key",
				"registry", c.def.Name,
				"vault_id", v.ID,
				"key", key,
				"id", c.def.ID(record),
			)
			records[key] = c.def.WithID(record, key)
		}
	}
	return records
}

func (c *Collection[T]) startSpan(ctx context.Context, op, windowID string) (context.Context, trace.Span) {
	return otel.StartSpan(ctx, c.tracer, c.def.Name+"."+op,
		trace.WithAttributes(
			otel.AttrRegistryName.String(c.def.Name),
			otel.AttrWindowID.String(windowID),
		),
	)
}
