package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/vault-mcp-registry/internal/docstore"
)

// CatalogFileName is the name of the catalog document inside the data directory
const CatalogFileName = "vaults.json"

const catalogSchema = `{
  "type": "object",
  "required": ["vaults"],
  "properties": {
    "vaults": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "path"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "path": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "createdAt": {"type": "string"}
        }
      }
    }
  }
}`

type catalogDocument struct {
	Vaults []Vault `json:"vaults"`
}

// Catalog is the file-backed list of known vaults, kept in insertion order
type Catalog struct {
	path  string
	store *docstore.Store[catalogDocument]
	now   func() time.Time
}

// NewCatalog creates a catalog stored at <dataDir>/vaults.json
func NewCatalog(dataDir string, opts ...docstore.Option) *Catalog {
	schema := docstore.MustCompileSchema("vault-catalog.json", []byte(catalogSchema))
	return &Catalog{
		path: filepath.Join(dataDir, CatalogFileName),
		store: docstore.New(schema, func() catalogDocument {
			return catalogDocument{Vaults: []Vault{}}
		}, opts...),
		now: time.Now,
	}
}

// Path returns the location of the catalog document
func (c *Catalog) Path() string {
	return c.path
}

// Check reports whether the catalog document can be read. A catalog that does not exist
// yet is fine; one that is unreadable or fails validation is not.
func (c *Catalog) Check(context.Context) error {
	if err := c.store.Check(c.path); err != nil {
		return fmt.Errorf("vault catalog %s: %w", c.path, err)
	}
	return nil
}

// GetVaults returns all vaults in insertion order
func (c *Catalog) GetVaults(ctx context.Context) ([]Vault, error) {
	return c.store.Read(ctx, c.path).Vaults, nil
}

// Get returns the vault with the given id
func (c *Catalog) Get(ctx context.Context, id string) (Vault, error) {
	for _, v := range c.store.Read(ctx, c.path).Vaults {
		if v.ID == id {
			return v, nil
		}
	}
	return Vault{}, fmt.Errorf("%w: %s", ErrVaultNotFound, id)
}

// Add registers the directory at path as a new vault
func (c *Catalog) Add(ctx context.Context, path, name string) (Vault, error) {
	absPath, err := normalizePath(path)
	if err != nil {
		return Vault{}, err
	}

	var added Vault
	_, err = c.store.Update(ctx, c.path, func(doc catalogDocument) (catalogDocument, error) {
		if slices.ContainsFunc(doc.Vaults, func(v Vault) bool { return v.Path == absPath }) {
			return doc, fmt.Errorf("%w: %s", ErrVaultExists, absPath)
		}
		created := c.now().UTC()
		added = Vault{
			ID:        uuid.NewString(),
			Path:      absPath,
			Name:      name,
			CreatedAt: &created,
		}
		doc.Vaults = append(doc.Vaults, added)
		return doc, nil
	})
	if err != nil {
		return Vault{}, err
	}
	return added, nil
}

// Ensure returns the vault registered at path, adding it first if needed
func (c *Catalog) Ensure(ctx context.Context, path, name string) (Vault, error) {
	absPath, err := normalizePath(path)
	if err != nil {
		return Vault{}, err
	}
	for _, v := range c.store.Read(ctx, c.path).Vaults {
		if v.Path == absPath {
			return v, nil
		}
	}
	return c.Add(ctx, absPath, name)
}

// Remove unregisters a vault. The vault directory itself is left untouched.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	_, err := c.store.Update(ctx, c.path, func(doc catalogDocument) (catalogDocument, error) {
		idx := slices.IndexFunc(doc.Vaults, func(v Vault) bool { return v.ID == id })
		if idx < 0 {
			return doc, fmt.Errorf("%w: %s", ErrVaultNotFound, id)
		}
		doc.Vaults = slices.Delete(doc.Vaults, idx, idx+1)
		return doc, nil
	})
	return err
}

func normalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("vault path cannot be empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve vault path %s: %w", path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat vault path %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("vault path %s is not a directory", absPath)
	}
	return absPath, nil
}
