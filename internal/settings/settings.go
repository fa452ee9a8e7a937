// Package settings is zoned's key/value settings store.
//
// Values are JSON encoded and kept in a Backend. Three backends exist:
// diskv (one file per key, the default), sqlite (a single database file)
// and memory (tests and --dry-run style callers).
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known setting keys.
const (
	KeyCurrentLayoutID  = "current-layout-id"
	KeyCurrentZoneIndex = "current-zone-index"
	KeyLayoutOrder      = "layout-order"
	KeyTemplatesVersion = "templates-version"
	KeySpaceStates      = "space-states"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("setting not found")

// Backend stores raw setting values.
type Backend interface {
	// Read returns the value stored under key, or ErrNotFound.
	Read(key string) ([]byte, error)

	// Write stores value under key, replacing any previous value.
	Write(key string, value []byte) error

	// Erase removes key. Erasing a missing key is not an error.
	Erase(key string) error

	// Keys returns every stored key.
	Keys() ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

// Settings reads and writes typed values over a Backend.
type Settings struct {
	backend Backend
}

// New wraps backend.
func New(backend Backend) *Settings {
	return &Settings{backend: backend}
}

// Backend returns the underlying backend.
func (s *Settings) Backend() Backend {
	return s.backend
}

// Close closes the underlying backend.
func (s *Settings) Close() error {
	return s.backend.Close()
}

// Has reports whether key has a stored value.
func (s *Settings) Has(key string) (bool, error) {
	_, err := s.backend.Read(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// GetJSON decodes the value stored under key into v.
func (s *Settings) GetJSON(key string, v any) error {
	data, err := s.backend.Read(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func (s *Settings) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	if err := s.backend.Write(key, data); err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// GetString returns the string stored under key.
func (s *Settings) GetString(key string) (string, error) {
	var v string
	err := s.GetJSON(key, &v)
	return v, err
}

// SetString stores a string under key.
func (s *Settings) SetString(key, value string) error {
	return s.SetJSON(key, value)
}

// GetInt returns the integer stored under key.
func (s *Settings) GetInt(key string) (int, error) {
	var v int
	err := s.GetJSON(key, &v)
	return v, err
}

// SetInt stores an integer under key.
func (s *Settings) SetInt(key string, value int) error {
	return s.SetJSON(key, value)
}

// GetStrings returns the string list stored under key.
func (s *Settings) GetStrings(key string) ([]string, error) {
	var v []string
	err := s.GetJSON(key, &v)
	return v, err
}

// SetStrings stores a string list under key. A nil list is stored as [].
func (s *Settings) SetStrings(key string, value []string) error {
	if value == nil {
		value = []string{}
	}
	return s.SetJSON(key, value)
}

// Erase removes key.
func (s *Settings) Erase(key string) error {
	return s.backend.Erase(key)
}

// Dump returns every stored value keyed by setting name.
func (s *Settings) Dump() (map[string]json.RawMessage, error) {
	keys, err := s.backend.Keys()
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		data, err := s.backend.Read(k)
		if err != nil {
			return nil, err
		}
		out[k] = json.RawMessage(data)
	}
	return out, nil
}
