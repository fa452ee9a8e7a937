package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/logfields"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
	"github.com/hamiltonia/zoned-sub004/internal/templates"
)

func validationError(res layout.Result) error {
	return fmt.Errorf("%w: %w", ErrValidation, res.Err())
}

// loadForWrite reads the layouts file ahead of a rewrite. A missing file
// yields an empty one; any other failure aborts so unread content is never
// overwritten.
func (e *Engine) loadForWrite() (*stores.LayoutsFile, error) {
	file, err := e.repo.LoadUserLayouts()
	if err == nil {
		return file, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return stores.NewLayoutsFile(nil, nil)
	}
	e.storageFailure("read", err)
	return nil, fmt.Errorf("%w: %w", ErrStorage, err)
}

func (e *Engine) writeFile(file *stores.LayoutsFile) error {
	if err := e.repo.SaveUserLayouts(file); err != nil {
		e.storageFailure("write", err)
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (e *Engine) ensureCatalog() error {
	if e.catalog != nil {
		return nil
	}
	catalog, err := e.loadCatalog()
	if err != nil {
		return err
	}
	e.catalog = catalog
	return nil
}

func (e *Engine) backup() {
	if err := e.repo.Backup(); err != nil {
		e.storageFailure("backup", err)
	}
}

// SaveLayout validates l and upserts it into the layouts file by id, then
// reloads. An invalid layout returns ErrValidation and leaves the file
// untouched. Ids that template migration would drop are rejected unless
// they name a catalog template or a derived instance of one.
func (e *Engine) SaveLayout(l layout.Layout) error {
	if res := layout.Validate(l); !res.OK() {
		return validationError(res)
	}
	if err := e.ensureCatalog(); err != nil {
		return err
	}
	if e.catalog.Reserved(l.ID) {
		reason := fmt.Sprintf("layout id %q is reserved for templates, prefix it with %q or %q",
			l.ID, templates.CustomPrefix, templates.GeneratedPrefix)
		return validationError(layout.Result{Check: layout.CheckReserved, Reason: reason})
	}

	file, err := e.loadForWrite()
	if err != nil {
		return err
	}
	if err := file.Upsert(l); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := e.writeFile(file); err != nil {
		return err
	}

	e.dropTemporary(l.ID)
	e.logger.Info("Saved layout", logfields.LayoutID(l.ID))
	return e.LoadLayouts()
}

// DeleteLayout removes layout id and its order reference from the layouts
// file, then reloads. A template deleted this way reverts to the catalog
// copy. Returns ErrNotFound if the file has no entry for id.
func (e *Engine) DeleteLayout(id string) error {
	file, err := e.loadForWrite()
	if err != nil {
		return err
	}
	if !file.Has(id) {
		return fmt.Errorf("%w: layout %s", ErrNotFound, id)
	}

	e.backup()
	file.Remove(id)
	if err := e.writeFile(file); err != nil {
		return err
	}
	e.mirrorOrder(file.LayoutOrder)

	e.logger.Info("Deleted layout", logfields.LayoutID(id))
	return e.LoadLayouts()
}

// DuplicateLayout copies layout id under a generated id and saves the copy.
// An empty newName derives one from the source name.
func (e *Engine) DuplicateLayout(id, newName string) (*layout.Layout, error) {
	src, ok := e.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: layout %s", ErrNotFound, id)
	}

	dup := src.Clone()
	dup.ID = e.newID()
	dup.Name = newName
	if dup.Name == "" {
		dup.Name = src.Name + " (copy)"
	}
	dup.Shortcut = ""

	if err := e.SaveLayout(dup); err != nil {
		return nil, err
	}
	saved, ok := e.lookup(dup.ID)
	if !ok {
		return nil, fmt.Errorf("%w: layout %s", ErrNotFound, dup.ID)
	}
	return &saved, nil
}

// ResetToDefaults replaces the layouts file with the catalog and an empty
// order, records the catalog version and reloads.
func (e *Engine) ResetToDefaults() error {
	if err := e.ensureCatalog(); err != nil {
		return err
	}

	e.backup()
	file, err := stores.NewLayoutsFile(e.catalog.All(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := e.writeFile(file); err != nil {
		return err
	}
	if err := e.settings.SetInt(settings.KeyTemplatesVersion, e.catalog.Version()); err != nil {
		e.storageFailure("settings", err)
	}
	e.mirrorOrder(nil)
	e.temporary = newLayoutSet(0)

	e.logger.Info("Reset layouts to defaults", logfields.Version(e.catalog.Version()))
	return e.LoadLayouts()
}

// RegisterLayoutTemporary adds l to the in-memory list without persisting
// it. It replaces any layout with the same id until the next SaveLayout of
// that id or ResetToDefaults.
func (e *Engine) RegisterLayoutTemporary(l layout.Layout) error {
	if res := layout.Validate(l); !res.OK() {
		return validationError(res)
	}
	e.registerTemporary(l)
	return nil
}

// registerTemporary puts l in the merged list. Replacing the current
// layout re-clamps the zone index against the new zone count.
func (e *Engine) registerTemporary(l layout.Layout) {
	e.temporary.put(l)
	e.layouts.put(l)
	e.recorder.SetLayoutCount(e.layouts.size())

	if l.ID != e.currentID {
		return
	}
	if clamped := layout.ClampIndex(e.zoneIndex, len(l.Zones)); clamped != e.zoneIndex {
		e.zoneIndex = clamped
		_ = e.persistSelection()
	}
}

func (e *Engine) dropTemporary(id string) {
	e.temporary.remove(id)
}

func (e *Engine) isTemporary(id string) bool {
	return e.temporary.has(id)
}

// LayoutOrder returns the custom order restricted to known ids.
func (e *Engine) LayoutOrder() []string {
	return e.normalizeOrder(e.order)
}

// SetLayoutOrder persists a new custom order. Unknown ids are dropped and
// duplicates collapsed.
func (e *Engine) SetLayoutOrder(ids []string) error {
	order := e.normalizeOrder(ids)

	file, err := e.loadForWrite()
	if err != nil {
		return err
	}
	file.LayoutOrder = order
	if err := e.writeFile(file); err != nil {
		return err
	}
	e.mirrorOrder(order)
	e.order = order
	return nil
}

func (e *Engine) mirrorOrder(order []string) {
	if err := e.settings.SetStrings(settings.KeyLayoutOrder, order); err != nil {
		e.storageFailure("settings", err)
	}
}

func (e *Engine) normalizeOrder(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	order := []string{}
	for _, id := range ids {
		if seen[id] || !e.has(id) {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	return order
}
