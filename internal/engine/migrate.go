package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/hamiltonia/zoned-sub004/internal/diag"
	"github.com/hamiltonia/zoned-sub004/internal/logfields"
	"github.com/hamiltonia/zoned-sub004/internal/planner"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
)

// migrate rewrites the layouts file for the current catalog. The file is
// written before templates-version, so an interruption between the two
// leaves a state the next load migrates again to the same result.
func (e *Engine) migrate(from int) error {
	started := e.clock.Now()
	to := e.catalog.Version()

	if err := e.repo.Backup(); err != nil {
		e.logger.Warn("Failed to back up layouts before migration", logfields.Error(err))
	}

	file, err := e.repo.LoadUserLayouts()
	if err != nil {
		return fmt.Errorf("%w: load layouts: %w", ErrMigration, err)
	}

	plan, err := planner.PlanMigration(file, e.catalog, from)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMigration, err)
	}

	if err := e.repo.SaveUserLayouts(plan.File); err != nil {
		return fmt.Errorf("%w: write layouts: %w", ErrMigration, err)
	}
	if err := e.settings.SetInt(settings.KeyTemplatesVersion, to); err != nil {
		return fmt.Errorf("%w: write version: %w", ErrMigration, err)
	}
	if err := e.settings.SetStrings(settings.KeyLayoutOrder, plan.File.LayoutOrder); err != nil {
		e.storageFailure("settings", err)
	}

	result := &MigrationResult{
		FromVersion: from,
		ToVersion:   to,
		Kept:        plan.Kept(),
		Added:       plan.Added(),
		Dropped:     plan.Dropped(),
		StartedAt:   started,
		FinishedAt:  e.clock.Now(),
	}
	e.lastMigration = result

	e.recorder.IncMigration(diag.OutcomeSuccess)
	e.recorder.SetTemplatesVersion(to)
	e.logger.Info("Migrated layouts to new templates",
		logfields.FromVersion(from),
		logfields.ToVersion(to),
		"kept", len(result.Kept),
		"added", len(result.Added),
		"dropped", len(result.Dropped))
	return nil
}

// PlanMigration previews the migration the next load would run. It returns
// nil when the layouts file is missing or already at the catalog version.
func (e *Engine) PlanMigration() (*planner.MigrationPlan, error) {
	catalog, err := e.loadCatalog()
	if err != nil {
		return nil, err
	}

	installed := e.installedVersion()
	if catalog.Version() <= installed {
		return nil, nil
	}

	file, err := e.repo.LoadUserLayouts()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return planner.PlanMigration(file, catalog, installed)
}
