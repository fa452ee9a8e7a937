// Package stores is the persistence port for layout data.
//
// It owns the on-disk layouts file (user layouts plus custom order), its
// backup copy, and the template catalog file. All file access goes through
// fsops.FS so the engine can be exercised against an in-memory filesystem.
//
// Key components:
//   - LayoutRepo: Interface the engine depends on
//   - FileLayoutRepo: LayoutRepo over fsops.FS
//   - LayoutsFile: The layouts.json document
package stores

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/hash"
	"github.com/hamiltonia/zoned-sub004/internal/templates"
)

// BackupSuffix is appended to the layouts file path to name its backup.
const BackupSuffix = ".backup"

// ErrBackupMismatch is returned when a backup copy does not match its source.
var ErrBackupMismatch = errors.New("backup does not match source")

// LayoutRepo provides access to persisted layout data.
type LayoutRepo interface {
	// LoadUserLayouts loads the layouts file.
	// Returns os.ErrNotExist if the file doesn't exist.
	LoadUserLayouts() (*LayoutsFile, error)

	// SaveUserLayouts writes the layouts file atomically.
	SaveUserLayouts(file *LayoutsFile) error

	// Backup copies the layouts file next to itself. A missing layouts
	// file is not an error.
	Backup() error

	// LoadCatalog loads the template catalog.
	LoadCatalog() (*templates.Catalog, error)

	// Exists reports whether the layouts file exists.
	Exists() (bool, error)
}

// FileLayoutRepo implements LayoutRepo using files on disk.
type FileLayoutRepo struct {
	fs          fsops.FS
	hasher      hash.Hasher
	layoutsPath string
	catalogPath string
}

// NewFileLayoutRepo creates a new FileLayoutRepo. An empty catalogPath
// selects the catalog embedded in the binary.
func NewFileLayoutRepo(fs fsops.FS, hasher hash.Hasher, layoutsPath, catalogPath string) *FileLayoutRepo {
	return &FileLayoutRepo{
		fs:          fs,
		hasher:      hasher,
		layoutsPath: layoutsPath,
		catalogPath: catalogPath,
	}
}

// LayoutsPath returns the path of the layouts file.
func (r *FileLayoutRepo) LayoutsPath() string {
	return r.layoutsPath
}

// BackupPath returns the path of the layouts file backup.
func (r *FileLayoutRepo) BackupPath() string {
	return r.layoutsPath + BackupSuffix
}

// LoadUserLayouts loads the layouts file.
func (r *FileLayoutRepo) LoadUserLayouts() (*LayoutsFile, error) {
	data, err := r.fs.ReadFile(r.layoutsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read layouts file: %w", err)
	}

	var file LayoutsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layouts file: %w", err)
	}
	if file.Layouts == nil {
		file.Layouts = []json.RawMessage{}
	}
	if file.LayoutOrder == nil {
		file.LayoutOrder = []string{}
	}

	return &file, nil
}

// SaveUserLayouts writes the layouts file atomically.
func (r *FileLayoutRepo) SaveUserLayouts(file *LayoutsFile) error {
	if file.Layouts == nil {
		file.Layouts = []json.RawMessage{}
	}
	if file.LayoutOrder == nil {
		file.LayoutOrder = []string{}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layouts file: %w", err)
	}

	if err := r.fs.MkdirAll(filepath.Dir(r.layoutsPath), 0755); err != nil {
		return fmt.Errorf("failed to create layouts directory: %w", err)
	}
	if err := r.fs.AtomicWrite(r.layoutsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write layouts file: %w", err)
	}

	return nil
}

// Backup copies the layouts file to its backup path and verifies the copy.
func (r *FileLayoutRepo) Backup() error {
	exists, err := r.fs.Exists(r.layoutsPath)
	if err != nil {
		return fmt.Errorf("failed to check layouts file: %w", err)
	}
	if !exists {
		return nil
	}

	if err := r.fs.Copy(r.layoutsPath, r.BackupPath()); err != nil {
		return fmt.Errorf("failed to back up layouts file: %w", err)
	}

	src, err := r.fs.ReadFile(r.layoutsPath)
	if err != nil {
		return fmt.Errorf("failed to read layouts file: %w", err)
	}
	dst, err := r.fs.ReadFile(r.BackupPath())
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if r.hasher.Sum(src) != r.hasher.Sum(dst) {
		return fmt.Errorf("%w: %s", ErrBackupMismatch, r.BackupPath())
	}

	return nil
}

// LoadCatalog loads the configured catalog file, or the embedded default.
func (r *FileLayoutRepo) LoadCatalog() (*templates.Catalog, error) {
	if r.catalogPath == "" {
		return templates.Default()
	}

	data, err := r.fs.ReadFile(r.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	file, err := templates.Parse(data, r.catalogPath)
	if err != nil {
		return nil, err
	}

	catalog, err := templates.New(file)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", r.catalogPath, err)
	}
	return catalog, nil
}

// Exists reports whether the layouts file exists.
func (r *FileLayoutRepo) Exists() (bool, error) {
	return r.fs.Exists(r.layoutsPath)
}
