package engine

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hamiltonia/zoned-sub004/internal/clock"
	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/hash"
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
	"github.com/hamiltonia/zoned-sub004/internal/templates"
)

const (
	testLayoutsPath = "/cfg/layouts.json"
	testCatalogPath = "/cfg/catalog.json"
)

// testEnv bundles an engine with the fakes it runs on so tests can inspect
// persisted state and build a second engine over the same storage.
type testEnv struct {
	fs       *fsops.MemFS
	backend  *failingBackend
	settings *settings.Settings
	clock    *clock.FakeClock
	repo     *stores.FileLayoutRepo
	ids      int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fs := fsops.NewMemFS()
	backend := &failingBackend{Backend: settings.NewMemory(), failures: map[string]error{}}
	env := &testEnv{
		fs:       fs,
		backend:  backend,
		settings: settings.New(backend),
		clock:    clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
		repo:     stores.NewFileLayoutRepo(fs, hash.NewSHA256Hasher(), testLayoutsPath, testCatalogPath),
	}
	env.setCatalog(t, 1, halves(), thirds())
	return env
}

// failingBackend wraps a settings backend and fails writes to chosen keys.
type failingBackend struct {
	settings.Backend
	failures map[string]error
}

// FailOn makes writes to key return err. A nil err clears the failure.
func (b *failingBackend) FailOn(key string, err error) {
	if err == nil {
		delete(b.failures, key)
		return
	}
	b.failures[key] = err
}

func (b *failingBackend) Write(key string, value []byte) error {
	if err, ok := b.failures[key]; ok {
		return err
	}
	return b.Backend.Write(key, value)
}

func (env *testEnv) engine(opts ...Option) *Engine {
	base := []Option{
		WithClock(env.clock),
		WithIDGenerator(func() string {
			env.ids++
			return fmt.Sprintf("layout-%d", env.ids)
		}),
	}
	return New(env.repo, env.settings, append(base, opts...)...)
}

func (env *testEnv) loaded(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := env.engine(opts...)
	require.NoError(t, e.LoadLayouts())
	return e
}

func (env *testEnv) setCatalog(t *testing.T, version int, layouts ...layout.Layout) {
	t.Helper()
	data, err := json.Marshal(templates.CatalogFile{Version: version, Layouts: layouts})
	require.NoError(t, err)
	env.fs.SetFile(testCatalogPath, data)
}

// setUserFile writes layouts.json directly, bypassing the engine.
func (env *testEnv) setUserFile(t *testing.T, layouts []layout.Layout, order []string) {
	t.Helper()
	file, err := stores.NewLayoutsFile(layouts, order)
	require.NoError(t, err)
	data, err := json.Marshal(file)
	require.NoError(t, err)
	env.fs.SetFile(testLayoutsPath, data)
}

func (env *testEnv) userFile(t *testing.T) *stores.LayoutsFile {
	t.Helper()
	file, err := env.repo.LoadUserLayouts()
	require.NoError(t, err)
	return file
}

func halves() layout.Layout {
	return layout.Layout{ID: "halves", Name: "Halves", Zones: []layout.Zone{
		{Name: "Left", W: 0.5, H: 1},
		{Name: "Right", X: 0.5, W: 0.5, H: 1},
	}}
}

func thirds() layout.Layout {
	return layout.Layout{ID: "thirds", Name: "Thirds", Zones: []layout.Zone{
		{Name: "Left", W: 0.3333, H: 1},
		{Name: "Center", X: 0.3333, W: 0.3334, H: 1},
		{Name: "Right", X: 0.6667, W: 0.3333, H: 1},
	}}
}

func quarters() layout.Layout {
	return layout.Layout{ID: "quarters", Name: "Quarters", Zones: []layout.Zone{
		{Name: "TL", W: 0.5, H: 0.5},
		{Name: "TR", X: 0.5, W: 0.5, H: 0.5},
		{Name: "BL", Y: 0.5, W: 0.5, H: 0.5},
		{Name: "BR", X: 0.5, Y: 0.5, W: 0.5, H: 0.5},
	}}
}

func custom(id string) layout.Layout {
	return layout.Layout{ID: id, Name: "Custom " + id, Zones: []layout.Zone{
		{Name: "Main", W: 0.7, H: 1},
		{Name: "Side", X: 0.7, W: 0.3, H: 1},
	}}
}
