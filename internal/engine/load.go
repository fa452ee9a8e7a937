package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/hamiltonia/zoned-sub004/internal/clock"
	"github.com/hamiltonia/zoned-sub004/internal/diag"
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/logfields"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
	"github.com/hamiltonia/zoned-sub004/internal/templates"
)

// LoadLayouts (re)builds the merged layout list.
//
// On first run the layouts file is seeded from the catalog; when the
// catalog version has advanced past the installed version the file is
// migrated first. Catalog and user layouts are then merged by id, invalid
// entries are dropped, the custom order is applied and the selection is
// restored. Storage failures are logged and treated as empty input; only
// an empty result is an error.
func (e *Engine) LoadLayouts() error {
	start := e.clock.Now()
	e.lastMigration = nil

	catalog, err := e.loadCatalog()
	if err != nil {
		e.recorder.IncLoad(diag.OutcomeFailed)
		return err
	}
	e.catalog = catalog

	installed := e.installedVersion()
	exists, err := e.repo.Exists()
	switch {
	case err != nil:
		e.storageFailure("exists", err)
	case !exists:
		e.seed()
	case catalog.Version() > installed:
		if err := e.migrate(installed); err != nil {
			e.recorder.IncMigration(diag.OutcomeFailed)
			e.logger.Error("Template migration aborted, will retry on next load",
				logfields.FromVersion(installed),
				logfields.ToVersion(catalog.Version()),
				logfields.Error(err))
		}
	}

	file := e.readUserFile()
	merged, rejected := mergeLayouts(catalog.All(), file.Entries())
	for _, r := range rejected {
		e.recorder.IncRejected(string(r.Result.Check))
		e.logger.Warn("Dropping invalid layout",
			logfields.LayoutID(r.ID),
			logfields.Check(string(r.Result.Check)),
			logfields.Reason(r.Result.Reason))
	}
	for _, t := range e.temporary.list {
		merged.put(t)
	}
	e.layouts = merged

	e.order = file.LayoutOrder
	if len(e.order) == 0 {
		if legacy, err := e.settings.GetStrings(settings.KeyLayoutOrder); err == nil {
			e.order = legacy
		}
	}

	e.recorder.SetLayoutCount(e.layouts.size())
	e.recorder.SetTemplatesVersion(e.installedVersion())
	e.recorder.ObserveLoadDuration(clock.Since(e.clock, start))

	if e.layouts.size() == 0 {
		e.currentID = ""
		e.zoneIndex = 0
		e.recorder.IncLoad(diag.OutcomeFailed)
		return ErrNoLayouts
	}

	e.restoreSelection()
	e.recorder.IncLoad(diag.OutcomeSuccess)
	e.logger.Debug("Loaded layouts",
		logfields.Count(e.layouts.size()),
		logfields.Version(catalog.Version()),
		logfields.LayoutID(e.currentID))
	return nil
}

func (e *Engine) loadCatalog() (*templates.Catalog, error) {
	catalog, err := e.repo.LoadCatalog()
	if err == nil {
		return catalog, nil
	}
	e.storageFailure("catalog", err)

	catalog, err = templates.Default()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return catalog, nil
}

// installedVersion returns the persisted templates-version, or 0.
func (e *Engine) installedVersion() int {
	v, err := e.settings.GetInt(settings.KeyTemplatesVersion)
	if err != nil {
		if !errors.Is(err, settings.ErrNotFound) {
			e.storageFailure("settings", err)
		}
		return 0
	}
	return v
}

// InstalledVersion returns the catalog version the layouts file was last
// written for.
func (e *Engine) InstalledVersion() int {
	return e.installedVersion()
}

// seed writes the catalog as the initial layouts file.
func (e *Engine) seed() {
	file, err := stores.NewLayoutsFile(e.catalog.All(), nil)
	if err != nil {
		e.storageFailure("seed", err)
		return
	}
	if err := e.repo.SaveUserLayouts(file); err != nil {
		e.storageFailure("seed", err)
		return
	}
	if err := e.settings.SetInt(settings.KeyTemplatesVersion, e.catalog.Version()); err != nil {
		e.storageFailure("settings", err)
		return
	}
	e.logger.Info("Seeded layouts file from templates", logfields.Version(e.catalog.Version()))
}

// readUserFile loads the layouts file, or an empty one on failure.
func (e *Engine) readUserFile() *stores.LayoutsFile {
	file, err := e.repo.LoadUserLayouts()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			e.storageFailure("read", err)
		}
		file, _ = stores.NewLayoutsFile(nil, nil)
	}
	return file
}

func (e *Engine) storageFailure(op string, err error) {
	e.recorder.IncStorageError(op)
	e.logger.Warn("Storage failure", "op", op, logfields.Error(err))
}

// restoreSelection restores the global selection from settings. A missing
// or dangling id is replaced by a legacy template instance or the first
// layout, and the replacement is persisted.
func (e *Engine) restoreSelection() {
	saved, err := e.settings.GetString(settings.KeyCurrentLayoutID)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		e.storageFailure("settings", err)
	}

	id := saved
	if !e.has(id) {
		id = ""
		if tid, ok := templates.DerivedTemplateID(saved); ok && e.catalog.Has(tid) {
			if inst, err := e.catalog.Instantiate(tid); err == nil {
				e.registerTemporary(inst)
				id = inst.ID
			}
		}
	}
	if id == "" {
		id = e.firstLayoutID()
		if saved != "" {
			e.recorder.IncFallback("global")
			e.logger.Warn("Saved layout is missing, using fallback",
				logfields.LayoutID(saved),
				"fallback", id)
		}
	}

	zone := 0
	if id == saved {
		if idx, err := e.settings.GetInt(settings.KeyCurrentZoneIndex); err == nil {
			zone = idx
		}
	}
	l, _ := e.lookup(id)
	clamped := layout.ClampIndex(zone, len(l.Zones))

	e.currentID = id
	e.zoneIndex = clamped
	if id != saved || clamped != zone {
		_ = e.persistSelection()
	}
}

func (e *Engine) persistSelection() error {
	if err := e.settings.SetString(settings.KeyCurrentLayoutID, e.currentID); err != nil {
		e.storageFailure("settings", err)
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := e.settings.SetInt(settings.KeyCurrentZoneIndex, e.zoneIndex); err != nil {
		e.storageFailure("settings", err)
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}
