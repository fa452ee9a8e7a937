package settings

import (
	"fmt"
	"sort"
)

// Backend kinds accepted by Open.
const (
	KindDiskv  = "diskv"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open creates the backend named by kind. dir is the diskv base directory
// and dbPath the sqlite database file.
func Open(kind, dir, dbPath string) (Backend, error) {
	switch kind {
	case "", KindDiskv:
		return NewDiskv(dir), nil
	case KindSQLite:
		return NewSQLite(dbPath)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown settings backend %q", kind)
	}
}

// MemoryBackend keeps settings in a map.
type MemoryBackend struct {
	values map[string][]byte
}

// NewMemory creates an empty MemoryBackend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Read(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Write(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Erase(key string) error {
	delete(m.values, key)
	return nil
}

func (m *MemoryBackend) Keys() ([]string, error) {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
