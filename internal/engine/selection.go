package engine

import (
	"fmt"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/logfields"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
	"github.com/hamiltonia/zoned-sub004/internal/state"
)

// global reports whether key addresses the global selection.
func (e *Engine) global(key state.SpaceKey) bool {
	return !e.perSpace || key == "" || key.IsGlobal()
}

// CurrentLayout returns the layout selected for key. An empty key, the
// global key, or per-space mode being off all select the global layout.
func (e *Engine) CurrentLayout(key state.SpaceKey) (*layout.Layout, error) {
	if !e.global(key) {
		return e.LayoutForSpace(key)
	}
	l, ok := e.lookup(e.currentID)
	if !ok {
		return nil, ErrNoLayouts
	}
	return &l, nil
}

// CurrentZoneIndex returns the current zone index for key.
func (e *Engine) CurrentZoneIndex(key state.SpaceKey) int {
	if !e.global(key) {
		return e.spaces.GetState(key).ZoneIndex
	}
	return e.zoneIndex
}

// Status returns the full selection for key.
func (e *Engine) Status(key state.SpaceKey) (*Status, error) {
	l, err := e.CurrentLayout(key)
	if err != nil {
		return nil, err
	}
	if e.global(key) {
		key = state.GlobalKey
	}
	idx := e.CurrentZoneIndex(key)
	zone, _ := l.ZoneAt(idx)
	return &Status{
		SpaceKey:  key,
		Layout:    *l,
		ZoneIndex: idx,
		Zone:      zone,
		Temporary: e.isTemporary(l.ID),
	}, nil
}

// LayoutForSpace returns the layout selected in space key. A space seen for
// the first time starts on the default layout.
func (e *Engine) LayoutForSpace(key state.SpaceKey) (*layout.Layout, error) {
	st := e.spaces.GetState(key)
	if st.LayoutID == "" {
		return nil, ErrNoLayouts
	}
	l, ok := e.lookup(st.LayoutID)
	if !ok {
		return nil, fmt.Errorf("%w: layout %s", ErrNotFound, st.LayoutID)
	}
	return &l, nil
}

// SetLayoutForSpace selects layout id in space key, starting at zone 0.
func (e *Engine) SetLayoutForSpace(key state.SpaceKey, id string) error {
	if !e.has(id) {
		return fmt.Errorf("%w: layout %s", ErrNotFound, id)
	}
	if err := e.spaces.SetState(key, id, 0); err != nil {
		e.storageFailure("settings", err)
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	e.logger.Debug("Selected layout for space", logfields.SpaceKey(key.String()), logfields.LayoutID(id))
	return nil
}

// SetLayout selects layout id globally, starting at zone 0. An unknown id
// returns ErrNotFound and changes nothing.
func (e *Engine) SetLayout(id string) error {
	if !e.has(id) {
		return fmt.Errorf("%w: layout %s", ErrNotFound, id)
	}
	e.currentID = id
	e.zoneIndex = 0
	e.logger.Debug("Selected layout", logfields.LayoutID(id))
	return e.persistSelection()
}

// CycleZone moves the current zone by direction, wrapping in both
// directions, and returns the new zone. Outside per-space mode, or for the
// global key, it acts on the global selection.
func (e *Engine) CycleZone(direction int, key state.SpaceKey) (*layout.Zone, error) {
	if !e.global(key) {
		return e.CycleZoneForSpace(direction, key)
	}

	l, ok := e.lookup(e.currentID)
	if !ok || len(l.Zones) == 0 {
		return nil, ErrNoLayouts
	}
	e.recorder.IncCycle("global")
	e.zoneIndex = layout.Cycle(e.zoneIndex, direction, len(l.Zones))
	zone := l.Zones[e.zoneIndex]

	if err := e.settings.SetInt(settings.KeyCurrentZoneIndex, e.zoneIndex); err != nil {
		e.storageFailure("settings", err)
	}
	return &zone, nil
}

// CycleZoneForSpace moves the zone of space key by direction and returns
// the new zone.
func (e *Engine) CycleZoneForSpace(direction int, key state.SpaceKey) (*layout.Zone, error) {
	l, err := e.LayoutForSpace(key)
	if err != nil {
		return nil, err
	}
	if len(l.Zones) == 0 {
		return nil, ErrNoLayouts
	}
	e.recorder.IncCycle("space")

	next := layout.Cycle(e.spaces.GetState(key).ZoneIndex, direction, len(l.Zones))
	if err := e.spaces.SetZoneIndex(key, next); err != nil {
		e.storageFailure("settings", err)
	}
	zone := l.Zones[next]
	return &zone, nil
}
