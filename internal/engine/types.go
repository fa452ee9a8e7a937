package engine

import (
	"time"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/state"
)

// MigrationResult summarizes a completed template migration.
type MigrationResult struct {
	// FromVersion is the catalog version installed before the migration
	FromVersion int `json:"from_version"`

	// ToVersion is the catalog version after the migration
	ToVersion int `json:"to_version"`

	// Kept is the list of user-authored layout ids preserved
	Kept []string `json:"kept"`

	// Added is the list of template ids written from the catalog
	Added []string `json:"added"`

	// Dropped is the list of template-derived layout ids removed
	Dropped []string `json:"dropped"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Status describes the selection seen from one space.
type Status struct {
	// SpaceKey is the space the status was resolved for
	SpaceKey state.SpaceKey `json:"space_key"`

	// Layout is the selected layout
	Layout layout.Layout `json:"layout"`

	// ZoneIndex is the current zone within Layout
	ZoneIndex int `json:"zone_index"`

	// Zone is the current zone
	Zone layout.Zone `json:"zone"`

	// Temporary is true when Layout exists only in memory
	Temporary bool `json:"temporary"`
}
