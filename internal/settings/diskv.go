package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"github.com/hamiltonia/zoned-sub004/internal/fsops"
)

// DiskvBackend stores each setting as a file under a base directory. Keys
// are file names and must pass fsops.ValidateIdentifier.
type DiskvBackend struct {
	d *diskv.Diskv
}

// NewDiskv creates a DiskvBackend rooted at dir.
func NewDiskv(dir string) *DiskvBackend {
	return &DiskvBackend{d: diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
		FilePerm:     0644,
		PathPerm:     0755,
	})}
}

func (b *DiskvBackend) Read(key string) ([]byte, error) {
	if !b.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	v, err := b.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return v, nil
}

func (b *DiskvBackend) Write(key string, value []byte) error {
	if err := fsops.ValidateIdentifier(key); err != nil {
		return fmt.Errorf("setting key %q: %w", key, err)
	}
	return b.d.Write(key, value)
}

func (b *DiskvBackend) Erase(key string) error {
	if !b.d.Has(key) {
		return nil
	}
	return b.d.Erase(key)
}

func (b *DiskvBackend) Keys() ([]string, error) {
	var keys []string
	for k := range b.d.Keys(nil) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *DiskvBackend) Close() error {
	return nil
}
