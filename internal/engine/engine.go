// Package engine provides the core layout configuration logic for zoned.
//
// The engine package is the orchestration layer between collaborators (the
// CLI, keybinding handlers, pickers) and the lower-level stores. It loads
// and merges layouts, migrates them when the template catalog changes,
// tracks the current selection globally or per space, and persists every
// change.
//
// Key components:
//   - Engine: Main orchestrator and public contract
//   - Load/Migrate: Seeding, migration, merge, validation, order, restore
//   - Selection: Current layout and zone, globally or per space
//   - Mutations: Save, delete, duplicate, reset, reorder
package engine

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hamiltonia/zoned-sub004/internal/clock"
	"github.com/hamiltonia/zoned-sub004/internal/diag"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
	"github.com/hamiltonia/zoned-sub004/internal/state"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
	"github.com/hamiltonia/zoned-sub004/internal/templates"
)

// Engine orchestrates all layout operations.
// It is the main API surface called by the CLI.
//
// Engine is not safe for concurrent use; every operation runs to
// completion before the next one starts.
type Engine struct {
	repo     stores.LayoutRepo
	settings *settings.Settings
	spaces   *state.SpatialStore
	logger   *slog.Logger
	recorder diag.Recorder
	clock    clock.Clock
	newID    func() string

	perSpace     bool
	spaceDefault string

	catalog       *templates.Catalog
	layouts       *layoutSet
	temporary     *layoutSet
	order         []string
	currentID     string
	zoneIndex     int
	lastMigration *MigrationResult
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the diagnostics recorder.
func WithRecorder(r diag.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithClock sets the clock used for migration timestamps and load timing.
func WithClock(clk clock.Clock) Option {
	return func(e *Engine) {
		if clk != nil {
			e.clock = clk
		}
	}
}

// WithIDGenerator sets the generator for new layout ids.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// WithPerSpace enables per-space layout selection.
func WithPerSpace(enabled bool) Option {
	return func(e *Engine) { e.perSpace = enabled }
}

// WithSpaceDefault sets the layout new spaces start with.
func WithSpaceDefault(id string) Option {
	return func(e *Engine) { e.spaceDefault = id }
}

// New creates a new Engine over the given layout repository and settings.
// Call LoadLayouts before any other operation.
func New(repo stores.LayoutRepo, s *settings.Settings, opts ...Option) *Engine {
	e := &Engine{
		repo:      repo,
		settings:  s,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:  diag.NoopRecorder{},
		clock:     &clock.RealClock{},
		newID:     generateID,
		layouts:   newLayoutSet(0),
		temporary: newLayoutSet(0),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.spaces = state.NewSpatialStore(
		state.NewSettingsStateStore(s),
		spaceResolver{e: e},
		state.WithDefaultLayout(e.spaceDefault),
		state.WithLogger(e.logger),
	)
	return e
}

func generateID() string {
	return templates.GeneratedPrefix + uuid.NewString()
}

// PerSpace reports whether per-space selection is enabled.
func (e *Engine) PerSpace() bool {
	return e.perSpace
}

// Spaces returns the spatial state store.
func (e *Engine) Spaces() *state.SpatialStore {
	return e.spaces
}

// Catalog returns the template catalog used by the last load.
func (e *Engine) Catalog() *templates.Catalog {
	return e.catalog
}

// LastMigration returns the result of the migration run by the last load,
// or nil if none ran.
func (e *Engine) LastMigration() *MigrationResult {
	return e.lastMigration
}

// spaceResolver exposes the engine's layouts to the spatial store.
type spaceResolver struct {
	e *Engine
}

func (r spaceResolver) HasLayout(id string) bool {
	return r.e.has(id)
}

func (r spaceResolver) DefaultLayoutID() string {
	return r.e.currentID
}

func (r spaceResolver) FallbackLayoutID() string {
	id := r.e.firstLayoutID()
	if id != "" {
		r.e.recorder.IncFallback("space")
	}
	return id
}

func (r spaceResolver) ZoneCount(id string) int {
	l, ok := r.e.lookup(id)
	if !ok {
		return 0
	}
	return len(l.Zones)
}
