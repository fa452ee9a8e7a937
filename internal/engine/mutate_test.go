package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
)

func TestSaveLayout_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	pad := 8.0
	l := custom("custom_1")
	l.Padding = &pad
	l.Shortcut = "<Super>1"

	require.NoError(t, e.SaveLayout(l))

	restarted := env.loaded(t)
	got, ok := restarted.Layout("custom_1")
	require.True(t, ok)
	assert.True(t, got.Equal(l), "got %+v", got)
}

func TestSaveLayout_UpsertsInPlace(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	require.NoError(t, e.SaveLayout(custom("custom_1")))
	require.NoError(t, e.SaveLayout(custom("custom_2")))

	l := custom("custom_1")
	l.Name = "Renamed"
	require.NoError(t, e.SaveLayout(l))

	valid, _ := env.userFile(t).Decode()
	assert.Equal(t, []string{"halves", "thirds", "custom_1", "custom_2"}, layout.IDs(valid))
	got, _ := e.Layout("custom_1")
	assert.Equal(t, "Renamed", got.Name)
}

func TestSaveLayout_Invalid(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	before, _ := env.fs.File(testLayoutsPath)

	tests := []struct {
		name  string
		l     layout.Layout
		check layout.Check
	}{
		{"empty id", layout.Layout{Name: "x", Zones: custom("a").Zones}, layout.CheckID},
		{"empty name", layout.Layout{ID: "custom_x", Zones: custom("a").Zones}, layout.CheckName},
		{"no zones", layout.Layout{ID: "custom_x", Name: "x"}, layout.CheckZones},
		{"zone out of range", layout.Layout{ID: "custom_x", Name: "x", Zones: []layout.Zone{{W: 2, H: 1}}}, layout.CheckZoneRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.SaveLayout(tt.l)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.True(t, errors.Is(err, layout.ErrInvalid))
			assert.Contains(t, err.Error(), string(tt.check))
		})
	}

	after, _ := env.fs.File(testLayoutsPath)
	assert.Equal(t, string(before), string(after))
}

func TestSaveLayout_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	env.fs.FailOn(fsops.OpWrite, testLayoutsPath, errors.New("read-only"))

	err := e.SaveLayout(custom("custom_1"))
	assert.True(t, errors.Is(err, ErrStorage))
	assert.False(t, e.HasLayout("custom_1"))
}

func TestDeleteLayout(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	require.NoError(t, e.SaveLayout(custom("custom_1")))
	require.NoError(t, e.SetLayoutOrder([]string{"custom_1", "thirds"}))
	require.NoError(t, e.SetLayout("custom_1"))

	require.NoError(t, e.DeleteLayout("custom_1"))

	assert.False(t, e.HasLayout("custom_1"))
	assert.Equal(t, []string{"thirds"}, env.userFile(t).LayoutOrder)
	order, _ := env.settings.GetStrings(settings.KeyLayoutOrder)
	assert.Equal(t, []string{"thirds"}, order)

	backup, ok := env.fs.File(testLayoutsPath + ".backup")
	require.True(t, ok)
	assert.Contains(t, string(backup), "custom_1")

	cur, _ := e.CurrentLayout("")
	assert.Equal(t, "thirds", cur.ID, "deleting the current layout falls back to the first ordered layout")

	err := e.DeleteLayout("custom_1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteLayout_TemplateRevertsToCatalog(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	l := halves()
	l.Name = "Edited"
	require.NoError(t, e.SaveLayout(l))

	require.NoError(t, e.DeleteLayout("halves"))

	got, ok := e.Layout("halves")
	require.True(t, ok)
	assert.Equal(t, "Halves", got.Name)
}

func TestDuplicateLayout(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)

	dup, err := e.DuplicateLayout("thirds", "My thirds")
	require.NoError(t, err)
	assert.Equal(t, "layout-1", dup.ID)
	assert.Equal(t, "My thirds", dup.Name)
	assert.Len(t, dup.Zones, 3)

	dup2, err := e.DuplicateLayout("halves", "")
	require.NoError(t, err)
	assert.Equal(t, "Halves (copy)", dup2.Name)

	_, err = e.DuplicateLayout("missing", "x")
	assert.True(t, errors.Is(err, ErrNotFound))

	restarted := env.loaded(t)
	assert.True(t, restarted.HasLayout("layout-1"))
}

func TestDuplicateLayout_DefaultIDGenerator(t *testing.T) {
	env := newTestEnv(t)
	e := New(env.repo, env.settings)
	require.NoError(t, e.LoadLayouts())

	dup, err := e.DuplicateLayout("halves", "copy")
	require.NoError(t, err)
	assert.Regexp(t, `^layout-[0-9a-f-]{36}$`, dup.ID)
}

func TestResetToDefaults(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	require.NoError(t, e.SaveLayout(custom("custom_1")))
	require.NoError(t, e.SetLayoutOrder([]string{"custom_1"}))

	require.NoError(t, e.ResetToDefaults())

	assert.Equal(t, []string{"halves", "thirds"}, layout.IDs(e.AllLayouts()))
	assert.Empty(t, e.LayoutOrder())
	assert.Empty(t, env.userFile(t).LayoutOrder)
	v, _ := env.settings.GetInt(settings.KeyTemplatesVersion)
	assert.Equal(t, 1, v)
	backup, _ := env.fs.File(testLayoutsPath + ".backup")
	assert.Contains(t, string(backup), "custom_1")
}

func TestRegisterLayoutTemporary(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)

	require.NoError(t, e.RegisterLayoutTemporary(custom("custom_tmp")))
	assert.True(t, e.HasLayout("custom_tmp"))
	require.NoError(t, e.SetLayout("custom_tmp"))

	assert.False(t, env.userFile(t).Has("custom_tmp"))
	require.NoError(t, e.LoadLayouts())
	assert.True(t, e.HasLayout("custom_tmp"), "temporary layouts survive a reload of the same engine")

	restarted := env.loaded(t)
	assert.False(t, restarted.HasLayout("custom_tmp"))

	err := e.RegisterLayoutTemporary(layout.Layout{ID: "bad"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRegisterLayoutTemporary_ClampsCurrentZone(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	require.NoError(t, e.SetLayout("thirds"))
	_, err := e.CycleZone(2, "")
	require.NoError(t, err)
	require.Equal(t, 2, e.CurrentZoneIndex(""))

	narrow := thirds()
	narrow.Zones = narrow.Zones[:1]
	require.NoError(t, e.RegisterLayoutTemporary(narrow))

	assert.Equal(t, 0, e.CurrentZoneIndex(""))
	st, err := e.Status("")
	require.NoError(t, err)
	assert.Equal(t, 0, st.ZoneIndex)
	assert.True(t, st.Temporary)
	idx, err := env.settings.GetInt(settings.KeyCurrentZoneIndex)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestRegisterLayoutTemporary_OtherLayoutKeepsZone(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	require.NoError(t, e.SetLayout("thirds"))
	_, err := e.CycleZone(2, "")
	require.NoError(t, err)

	require.NoError(t, e.RegisterLayoutTemporary(custom("custom_tmp")))

	assert.Equal(t, 2, e.CurrentZoneIndex(""))
}

func TestSetLayoutOrder(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)
	require.NoError(t, e.SaveLayout(custom("custom_1")))

	require.NoError(t, e.SetLayoutOrder([]string{"custom_1", "ghost", "thirds", "custom_1"}))

	assert.Equal(t, []string{"custom_1", "thirds"}, e.LayoutOrder())
	assert.Equal(t, []string{"custom_1", "thirds", "halves"}, layout.IDs(e.AllLayoutsOrdered()))
	assert.Equal(t, []string{"halves", "thirds", "custom_1"}, layout.IDs(e.AllLayouts()))

	order, _ := env.settings.GetStrings(settings.KeyLayoutOrder)
	assert.Equal(t, []string{"custom_1", "thirds"}, order)

	restarted := env.loaded(t)
	assert.Equal(t, []string{"custom_1", "thirds"}, restarted.LayoutOrder())
}

func TestSuggest(t *testing.T) {
	env := newTestEnv(t)
	e := env.loaded(t)

	assert.Equal(t, []string{"halves"}, e.Suggest("halfs"))
	assert.Equal(t, []string{"thirds"}, e.Suggest("third"))
	assert.Empty(t, e.Suggest("completely-different"))
}
