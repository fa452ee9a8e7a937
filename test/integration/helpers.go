// Package integration drives the engine against the real filesystem and
// settings backends across simulated restarts.
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/hamiltonia/zoned-sub004/internal/clock"
	"github.com/hamiltonia/zoned-sub004/internal/config"
	"github.com/hamiltonia/zoned-sub004/internal/diag"
	"github.com/hamiltonia/zoned-sub004/internal/engine"
	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/hash"
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
	"github.com/hamiltonia/zoned-sub004/internal/templates"
)

// testEnv is one configuration directory that outlives engine instances.
type testEnv struct {
	t           *testing.T
	paths       *config.Paths
	backend     string
	catalogPath string
	clock       *clock.FakeClock
}

func setupTestEnv(t *testing.T, backend string) *testEnv {
	t.Helper()
	paths, err := config.NewPaths(filepath.Join(t.TempDir(), "zoned"))
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	return &testEnv{
		t:       t,
		paths:   paths,
		backend: backend,
		clock:   clock.NewFakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
}

// session is one running process: an engine plus what must be closed
// before the next start.
type session struct {
	eng      *engine.Engine
	settings *settings.Settings
	registry *prometheus.Registry
}

// start opens a fresh engine on the environment and loads layouts.
func (env *testEnv) start(opts ...engine.Option) *session {
	env.t.Helper()

	backend, err := settings.Open(env.backend, env.paths.SettingsDir, env.paths.SettingsDB)
	require.NoError(env.t, err)
	s := settings.New(backend)

	repo := stores.NewFileLayoutRepo(fsops.NewRealFS(), hash.NewSHA256Hasher(), env.paths.LayoutsFile, env.catalogPath)
	registry := prometheus.NewRegistry()

	opts = append([]engine.Option{
		engine.WithClock(env.clock),
		engine.WithRecorder(diag.NewPrometheusRecorder(registry)),
	}, opts...)
	eng := engine.New(repo, s, opts...)
	require.NoError(env.t, eng.LoadLayouts())

	sess := &session{eng: eng, settings: s, registry: registry}
	env.t.Cleanup(func() { _ = sess.close() })
	return sess
}

func (s *session) close() error {
	return s.settings.Close()
}

// restart closes sess and starts a new engine on the same environment.
func (env *testEnv) restart(sess *session, opts ...engine.Option) *session {
	env.t.Helper()
	require.NoError(env.t, sess.close())
	return env.start(opts...)
}

// writeCatalog installs a catalog override file.
func (env *testEnv) writeCatalog(version int, layouts ...layout.Layout) {
	env.t.Helper()
	data, err := json.Marshal(templates.CatalogFile{Version: version, Layouts: layouts})
	require.NoError(env.t, err)
	env.catalogPath = filepath.Join(env.paths.Root, "catalog.json")
	require.NoError(env.t, os.WriteFile(env.catalogPath, data, 0644))
}

// readLayoutsFile decodes the on-disk layouts file.
func (env *testEnv) readLayoutsFile() *stores.LayoutsFile {
	env.t.Helper()
	data, err := os.ReadFile(env.paths.LayoutsFile)
	require.NoError(env.t, err)
	var file stores.LayoutsFile
	require.NoError(env.t, json.Unmarshal(data, &file))
	return &file
}

func zones(n int) []layout.Zone {
	out := make([]layout.Zone, n)
	w := 1.0 / float64(n)
	for i := range out {
		out[i] = layout.Zone{Name: "Zone", X: float64(i) * w, Y: 0, W: w, H: 1}
	}
	return out
}

func tmpl(id string, n int) layout.Layout {
	return layout.Layout{ID: id, Name: id, Zones: zones(n)}
}

// backends lists the persistent settings backends every scenario runs on.
var backends = []string{settings.KindDiskv, settings.KindSQLite}
