package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/hamiltonia/zoned-sub004/internal/settings"
)

// StateStore provides an interface for persisting space state.
type StateStore interface {
	// LoadSpaces loads the persisted space map.
	// Returns os.ErrNotExist if nothing has been persisted.
	LoadSpaces() (map[SpaceKey]SpaceState, error)

	// SaveSpaces replaces the persisted space map.
	SaveSpaces(spaces map[SpaceKey]SpaceState) error
}

// SettingsStateStore implements StateStore on the space-states setting.
type SettingsStateStore struct {
	settings *settings.Settings
}

// NewSettingsStateStore creates a new SettingsStateStore.
func NewSettingsStateStore(s *settings.Settings) *SettingsStateStore {
	return &SettingsStateStore{settings: s}
}

// LoadSpaces loads the space map from settings.
func (s *SettingsStateStore) LoadSpaces() (map[SpaceKey]SpaceState, error) {
	var spaces map[SpaceKey]SpaceState
	if err := s.settings.GetJSON(settings.KeySpaceStates, &spaces); err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to load space states: %w", err)
	}
	if spaces == nil {
		spaces = make(map[SpaceKey]SpaceState)
	}
	return spaces, nil
}

// SaveSpaces writes the space map to settings.
func (s *SettingsStateStore) SaveSpaces(spaces map[SpaceKey]SpaceState) error {
	if err := s.settings.SetJSON(settings.KeySpaceStates, spaces); err != nil {
		return fmt.Errorf("failed to save space states: %w", err)
	}
	return nil
}
