package state

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/logfields"
)

// LayoutResolver answers the questions the spatial store has about layouts.
type LayoutResolver interface {
	// HasLayout reports whether id is in the merged layout list.
	HasLayout(id string) bool

	// DefaultLayoutID returns the current global layout id.
	DefaultLayoutID() string

	// FallbackLayoutID returns the first available layout id, or "".
	FallbackLayoutID() string

	// ZoneCount returns the number of zones in layout id, or 0.
	ZoneCount(id string) int
}

// SpatialStore tracks the layout and zone selected in each space.
//
// Reads never return a dangling layout id: a space whose layout has
// disappeared is remapped to the fallback layout, and the remap is
// persisted so it is only reported once.
type SpatialStore struct {
	store         StateStore
	resolver      LayoutResolver
	logger        *slog.Logger
	defaultLayout string

	spaces map[SpaceKey]SpaceState
	loaded bool
	warned map[SpaceKey]bool
}

// SpatialOption configures a SpatialStore.
type SpatialOption func(*SpatialStore)

// WithDefaultLayout sets the layout new spaces start with. It is used only
// while the resolver knows the id.
func WithDefaultLayout(id string) SpatialOption {
	return func(s *SpatialStore) { s.defaultLayout = id }
}

// WithLogger sets the logger for remap warnings and persistence failures.
func WithLogger(logger *slog.Logger) SpatialOption {
	return func(s *SpatialStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSpatialStore creates a SpatialStore. Persisted state is read on first use.
func NewSpatialStore(store StateStore, resolver LayoutResolver, opts ...SpatialOption) *SpatialStore {
	s := &SpatialStore{
		store:    store,
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		spaces:   make(map[SpaceKey]SpaceState),
		warned:   make(map[SpaceKey]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SpatialStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	spaces, err := s.store.LoadSpaces()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Failed to load space states, starting empty", logfields.Error(err))
		}
		return
	}
	for k, v := range spaces {
		if _, ok := s.spaces[k]; !ok {
			s.spaces[k] = v
		}
	}
}

func (s *SpatialStore) persist() error {
	if err := s.store.SaveSpaces(maps.Clone(s.spaces)); err != nil {
		s.logger.Error("Failed to persist space states", logfields.Error(err))
		return err
	}
	return nil
}

func (s *SpatialStore) initialLayout() string {
	if s.defaultLayout != "" && s.resolver.HasLayout(s.defaultLayout) {
		return s.defaultLayout
	}
	return s.resolver.DefaultLayoutID()
}

// GetState returns the state of key. A space seen for the first time starts
// on the default layout at zone 0, and that state is persisted. When no
// layouts exist at all the zero SpaceState is returned.
func (s *SpatialStore) GetState(key SpaceKey) SpaceState {
	s.load()

	st, ok := s.spaces[key]
	if !ok {
		id := s.initialLayout()
		if id == "" {
			return SpaceState{}
		}
		st = SpaceState{LayoutID: id}
		s.spaces[key] = st
		_ = s.persist()
		return st
	}

	changed := false
	if !s.resolver.HasLayout(st.LayoutID) {
		fallback := s.resolver.FallbackLayoutID()
		if fallback == "" {
			return SpaceState{}
		}
		if !s.warned[key] {
			s.logger.Warn("Space references a missing layout, using fallback",
				logfields.SpaceKey(string(key)),
				logfields.LayoutID(st.LayoutID),
				slog.String("fallback", fallback))
			s.warned[key] = true
		}
		st = SpaceState{LayoutID: fallback}
		changed = true
	}

	if idx := s.ValidateZoneIndex(st.ZoneIndex, s.resolver.ZoneCount(st.LayoutID)); idx != st.ZoneIndex {
		st.ZoneIndex = idx
		changed = true
	}

	if changed {
		s.spaces[key] = st
		_ = s.persist()
	}
	return st
}

// SetState records layoutID and zoneIndex for key and persists the map.
// The zone index is clamped against the layout's zone count.
func (s *SpatialStore) SetState(key SpaceKey, layoutID string, zoneIndex int) error {
	s.load()

	st := SpaceState{
		LayoutID:  layoutID,
		ZoneIndex: s.ValidateZoneIndex(zoneIndex, s.resolver.ZoneCount(layoutID)),
	}
	if err := st.Validate(); err != nil {
		return err
	}
	s.spaces[key] = st
	delete(s.warned, key)
	return s.persist()
}

// SetZoneIndex updates only the zone index of key and persists the map.
func (s *SpatialStore) SetZoneIndex(key SpaceKey, zoneIndex int) error {
	st := s.GetState(key)
	if st.LayoutID == "" {
		return errors.New("no layout available for space " + string(key))
	}
	st.ZoneIndex = s.ValidateZoneIndex(zoneIndex, s.resolver.ZoneCount(st.LayoutID))
	s.spaces[key] = st
	return s.persist()
}

// ValidateZoneIndex clamps index into [0,count).
func (s *SpatialStore) ValidateZoneIndex(index, count int) int {
	return layout.ClampIndex(index, count)
}

// Keys returns every known space key, sorted.
func (s *SpatialStore) Keys() []SpaceKey {
	s.load()
	return slices.Sorted(maps.Keys(s.spaces))
}

// Reset forgets the in-memory map. Persisted state is untouched and is
// read again on next use.
func (s *SpatialStore) Reset() {
	s.spaces = make(map[SpaceKey]SpaceState)
	s.warned = make(map[SpaceKey]bool)
	s.loaded = false
}
