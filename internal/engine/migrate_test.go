package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
)

// setupV1 installs catalog version 1 with an old two-zone quarters
// template, a user layout and a custom order, then bumps the catalog to
// version 2 where quarters has four zones.
func setupV1(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)

	oldQuarters := quarters()
	oldQuarters.Zones = oldQuarters.Zones[:2]
	env.setCatalog(t, 1, halves(), oldQuarters)
	env.loaded(t)

	e := env.loaded(t)
	require.NoError(t, e.SaveLayout(custom("custom_1")))
	require.NoError(t, e.SetLayoutOrder([]string{"custom_1", "quarters", "halves"}))

	env.setCatalog(t, 2, halves(), quarters(), thirds())
	return env
}

func TestMigration_PreservesUserLayouts(t *testing.T) {
	env := setupV1(t)
	env.clock.AutoAdvance(time.Second)

	e := env.loaded(t)

	v, err := env.settings.GetInt(settings.KeyTemplatesVersion)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	assert.True(t, e.HasLayout("custom_1"))
	q, ok := e.Layout("quarters")
	require.True(t, ok)
	assert.Len(t, q.Zones, 4, "quarters must take the new geometry")
	assert.True(t, e.HasLayout("thirds"))

	valid, _ := env.userFile(t).Decode()
	assert.Equal(t, []string{"halves", "quarters", "thirds", "custom_1"}, layout.IDs(valid))
	assert.Equal(t, []string{"custom_1", "quarters", "halves"}, e.LayoutOrder())

	_, ok = env.fs.File(testLayoutsPath + ".backup")
	assert.True(t, ok, "migration must back up the layouts file")

	res := e.LastMigration()
	require.NotNil(t, res)
	assert.Equal(t, 1, res.FromVersion)
	assert.Equal(t, 2, res.ToVersion)
	assert.Equal(t, []string{"custom_1"}, res.Kept)
	assert.Equal(t, []string{"halves", "quarters", "thirds"}, res.Added)
	assert.Equal(t, []string{"halves", "quarters"}, res.Dropped)
	assert.True(t, res.FinishedAt.After(res.StartedAt))
}

func TestMigration_RunsOnce(t *testing.T) {
	env := setupV1(t)
	env.loaded(t)
	after, _ := env.fs.File(testLayoutsPath)

	e := env.loaded(t)
	assert.Nil(t, e.LastMigration())
	again, _ := env.fs.File(testLayoutsPath)
	assert.Equal(t, string(after), string(again))
}

func TestMigration_DropsRemovedTemplateOrderRefs(t *testing.T) {
	env := setupV1(t)
	env.setCatalog(t, 3, halves(), thirds())

	e := env.loaded(t)

	assert.False(t, e.HasLayout("quarters"))
	assert.Equal(t, []string{"custom_1", "halves"}, env.userFile(t).LayoutOrder)
}

func TestMigration_WriteFailureLeavesStateUntouched(t *testing.T) {
	env := setupV1(t)
	before, _ := env.fs.File(testLayoutsPath)
	env.fs.FailOn(fsops.OpWrite, testLayoutsPath, errors.New("disk full"))

	e := env.loaded(t)

	v, _ := env.settings.GetInt(settings.KeyTemplatesVersion)
	assert.Equal(t, 1, v)
	now, _ := env.fs.File(testLayoutsPath)
	assert.Equal(t, string(before), string(now))
	assert.Nil(t, e.LastMigration())
	assert.True(t, e.HasLayout("custom_1"))

	env.fs.FailOn(fsops.OpWrite, testLayoutsPath, nil)
	e = env.loaded(t)
	require.NotNil(t, e.LastMigration(), "migration must be retried on the next load")
	v, _ = env.settings.GetInt(settings.KeyTemplatesVersion)
	assert.Equal(t, 2, v)
}

func TestMigration_VersionWriteFailureRetries(t *testing.T) {
	env := setupV1(t)
	env.backend.FailOn(settings.KeyTemplatesVersion, errors.New("settings locked"))

	e := env.loaded(t)

	assert.Nil(t, e.LastMigration())
	v, _ := env.settings.GetInt(settings.KeyTemplatesVersion)
	assert.Equal(t, 1, v)
	assert.True(t, e.HasLayout("custom_1"))
	migrated, _ := env.fs.File(testLayoutsPath)

	env.backend.FailOn(settings.KeyTemplatesVersion, nil)
	e = env.loaded(t)

	res := e.LastMigration()
	require.NotNil(t, res, "migration must be retried on the next load")
	assert.Equal(t, []string{"custom_1"}, res.Kept)
	v, _ = env.settings.GetInt(settings.KeyTemplatesVersion)
	assert.Equal(t, 2, v)
	again, _ := env.fs.File(testLayoutsPath)
	assert.Equal(t, string(migrated), string(again), "a retried migration must reach the same file")
}

func TestMigration_UserLayoutsSurviveUpgrade(t *testing.T) {
	env := setupV1(t)
	e := env.loaded(t)

	for _, id := range []string{"custom-work", "layout-42", "template-halves"} {
		l := custom(id)
		require.NoError(t, e.SaveLayout(l), id)
	}

	err := e.SaveLayout(custom("work"))
	require.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, layout.ErrInvalid))
	assert.Contains(t, err.Error(), string(layout.CheckReserved))
	assert.False(t, env.userFile(t).Has("work"))

	env.setCatalog(t, 3, halves(), quarters())
	e = env.loaded(t)

	assert.True(t, e.HasLayout("custom-work"))
	assert.True(t, e.HasLayout("layout-42"))
	assert.Contains(t, e.LastMigration().Dropped, "template-halves")
}

func TestMigration_BackupFailureIsNotFatal(t *testing.T) {
	env := setupV1(t)
	env.fs.FailOn(fsops.OpCopy, testLayoutsPath, errors.New("copy failed"))

	e := env.loaded(t)

	assert.NotNil(t, e.LastMigration())
}

func TestPlanMigration_Preview(t *testing.T) {
	env := setupV1(t)
	before, _ := env.fs.File(testLayoutsPath)

	e := env.engine()
	plan, err := e.PlanMigration()
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, 1, plan.FromVersion)
	assert.Equal(t, 2, plan.ToVersion)
	assert.Equal(t, []string{"custom_1"}, plan.Kept())

	now, _ := env.fs.File(testLayoutsPath)
	assert.Equal(t, string(before), string(now), "preview must not write")

	env.loaded(t)
	plan, err = e.PlanMigration()
	require.NoError(t, err)
	assert.Nil(t, plan)
}
