// Package templates holds the built-in layout templates and their version.
//
// The default catalog is embedded in the binary and may be replaced by a
// catalog file named in the configuration. Template ids are recognized by
// naming convention: ids carrying a user-authored prefix are never
// templates, whatever the catalog contains.
package templates

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
)

//go:embed defaults/catalog.json
var defaultCatalog []byte

const (
	// GeneratedPrefix starts every id generated for a new or duplicated layout.
	GeneratedPrefix = "layout-"

	// CustomPrefix marks ids users chose for their own layouts.
	CustomPrefix = "custom"

	// DerivedPrefix starts legacy ids of layouts instantiated from a template.
	DerivedPrefix = "template-"
)

// ErrUnknownTemplate is returned when instantiating an id the catalog lacks.
var ErrUnknownTemplate = errors.New("unknown template")

// CatalogFile is the on-disk form of a template catalog.
type CatalogFile struct {
	Version int             `json:"version" yaml:"version"`
	Layouts []layout.Layout `json:"layouts" yaml:"layouts"`
}

// Validate checks the catalog version and every template. A catalog is all
// or nothing: one bad template rejects the file.
func (f CatalogFile) Validate() error {
	if f.Version < 1 {
		return fmt.Errorf("catalog version must be >= 1, got %d", f.Version)
	}
	if len(f.Layouts) == 0 {
		return fmt.Errorf("catalog has no templates")
	}
	seen := make(map[string]bool, len(f.Layouts))
	for _, l := range f.Layouts {
		if err := layout.Validate(l).Err(); err != nil {
			return fmt.Errorf("template %q: %w", l.ID, err)
		}
		if !IsTemplateID(l.ID) {
			return fmt.Errorf("template id %q uses a user-authored prefix", l.ID)
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate template id %q", l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}

// Catalog is an immutable, validated set of templates.
type Catalog struct {
	version int
	layouts []layout.Layout
	index   map[string]int
}

// New validates file and builds a Catalog from it.
func New(file CatalogFile) (*Catalog, error) {
	if err := file.Validate(); err != nil {
		return nil, err
	}
	c := &Catalog{
		version: file.Version,
		layouts: layout.CloneAll(file.Layouts),
		index:   make(map[string]int, len(file.Layouts)),
	}
	for i, l := range c.layouts {
		c.index[l.ID] = i
	}
	return c, nil
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	file, err := Parse(defaultCatalog, "catalog.json")
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return New(file)
}

// DefaultBytes returns the raw embedded catalog.
func DefaultBytes() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// Parse decodes a catalog file. The format is chosen from name's extension:
// .yaml and .yml are YAML, everything else is JSON.
func Parse(data []byte, name string) (CatalogFile, error) {
	var file CatalogFile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return CatalogFile{}, fmt.Errorf("failed to parse catalog %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &file); err != nil {
			return CatalogFile{}, fmt.Errorf("failed to parse catalog %s: %w", name, err)
		}
	}
	return file, nil
}

// Version returns the catalog version.
func (c *Catalog) Version() int {
	return c.version
}

// All returns deep copies of every template in catalog order.
func (c *Catalog) All() []layout.Layout {
	return layout.CloneAll(c.layouts)
}

// IDs returns the template ids in catalog order.
func (c *Catalog) IDs() []string {
	return layout.IDs(c.layouts)
}

// Has reports whether the catalog defines id.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Get returns a deep copy of the template with the given id.
func (c *Catalog) Get(id string) (layout.Layout, bool) {
	i, ok := c.index[id]
	if !ok {
		return layout.Layout{}, false
	}
	return c.layouts[i].Clone(), true
}

// Instantiate copies a template under its stable derived id.
func (c *Catalog) Instantiate(templateID string) (layout.Layout, error) {
	l, ok := c.Get(templateID)
	if !ok {
		return layout.Layout{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}
	l.ID = DerivedID(templateID)
	return l, nil
}

// Tracks reports whether id is a catalog template or a derived instance of
// one. Migration replaces these; any other id it would drop is unsafe for
// user layouts.
func (c *Catalog) Tracks(id string) bool {
	if c.Has(id) {
		return true
	}
	tid, ok := DerivedTemplateID(id)
	return ok && c.Has(tid)
}

// Reserved reports whether saving a user layout under id would lose it on
// the next catalog upgrade.
func (c *Catalog) Reserved(id string) bool {
	return IsTemplateID(id) && !c.Tracks(id)
}

// IsTemplateID reports whether id is a template id by naming convention.
func (c *Catalog) IsTemplateID(id string) bool {
	return IsTemplateID(id)
}

// IsTemplateID reports whether id names a template-derived layout. Ids with
// the generated or custom prefix are user-authored; every other non-empty
// id is treated as template-derived.
func IsTemplateID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.HasPrefix(id, GeneratedPrefix) && !strings.HasPrefix(id, CustomPrefix)
}

// DerivedID returns the stable id given to an instance of templateID.
func DerivedID(templateID string) string {
	return DerivedPrefix + templateID
}

// DerivedTemplateID extracts the template id from a legacy derived id.
func DerivedTemplateID(id string) (string, bool) {
	templateID, ok := strings.CutPrefix(id, DerivedPrefix)
	if !ok || templateID == "" {
		return "", false
	}
	return templateID, true
}
