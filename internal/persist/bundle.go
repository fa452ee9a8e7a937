// Package persist exports and imports layout bundles.
//
// A bundle is a portable file holding layouts and an optional display
// order, written as JSON or YAML depending on the file extension. Imports
// validate each entry on its own and upsert the valid ones through the
// engine, so a partly broken bundle still imports everything it can.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
)

// Bundle is the exported form of a set of layouts.
type Bundle struct {
	Layouts     []layout.Layout `json:"layouts" yaml:"layouts"`
	LayoutOrder []string        `json:"layout_order" yaml:"layout_order"`
}

// yamlBundle keeps entries as nodes so each one decodes independently.
type yamlBundle struct {
	Layouts     []yaml.Node `yaml:"layouts"`
	LayoutOrder []string    `yaml:"layout_order"`
}

// IsYAML reports whether path names a YAML file.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// BundleManager reads and writes bundle files.
type BundleManager struct {
	fs fsops.FS
}

// NewBundleManager creates a new BundleManager.
func NewBundleManager(fs fsops.FS) *BundleManager {
	return &BundleManager{fs: fs}
}

// Encode renders b as YAML or JSON.
func Encode(b *Bundle, asYAML bool) ([]byte, error) {
	if b.Layouts == nil {
		b.Layouts = []layout.Layout{}
	}
	if b.LayoutOrder == nil {
		b.LayoutOrder = []string{}
	}
	if asYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return nil, fmt.Errorf("failed to encode bundle: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode bundle: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}
	return append(data, '\n'), nil
}

// Export writes b to path atomically.
func (m *BundleManager) Export(path string, b *Bundle) error {
	data, err := Encode(b, IsYAML(path))
	if err != nil {
		return err
	}
	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := m.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return nil
}

// Load reads the bundle at path. Entries that fail to decode or validate
// are returned as rejections instead of failing the whole file.
func (m *BundleManager) Load(path string) (*Bundle, []stores.Rejection, error) {
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	if IsYAML(path) {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*Bundle, []stores.Rejection, error) {
	var file stores.LayoutsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse bundle: %w", err)
	}
	valid, rejected := file.Decode()
	return &Bundle{Layouts: valid, LayoutOrder: file.LayoutOrder}, rejected, nil
}

func decodeYAML(data []byte) (*Bundle, []stores.Rejection, error) {
	var raw yamlBundle
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse bundle: %w", err)
	}

	b := &Bundle{LayoutOrder: raw.LayoutOrder}
	var rejected []stores.Rejection
	for i := range raw.Layouts {
		var l layout.Layout
		if err := raw.Layouts[i].Decode(&l); err != nil {
			rejected = append(rejected, stores.Rejection{
				Index:  i,
				Result: layout.Result{Check: layout.CheckDecode, Reason: err.Error()},
			})
			continue
		}
		if res := layout.Validate(l); !res.OK() {
			rejected = append(rejected, stores.Rejection{Index: i, ID: l.ID, Result: res})
			continue
		}
		b.Layouts = append(b.Layouts, l)
	}
	return b, rejected, nil
}
