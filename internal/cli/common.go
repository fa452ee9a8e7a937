package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/hamiltonia/zoned-sub004/internal/clock"
	"github.com/hamiltonia/zoned-sub004/internal/config"
	"github.com/hamiltonia/zoned-sub004/internal/diag"
	"github.com/hamiltonia/zoned-sub004/internal/engine"
	"github.com/hamiltonia/zoned-sub004/internal/fsops"
	"github.com/hamiltonia/zoned-sub004/internal/hash"
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/persist"
	"github.com/hamiltonia/zoned-sub004/internal/settings"
	"github.com/hamiltonia/zoned-sub004/internal/state"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
)

// app bundles the engine with the collaborators commands need beside it.
type app struct {
	eng      *engine.Engine
	fs       fsops.FS
	settings *settings.Settings
	bundles  *persist.BundleManager
	registry *prometheus.Registry
}

// Close releases the settings backend.
func (a *app) Close() error {
	return a.settings.Close()
}

// resolvePaths honors --root before the environment and home directory.
func resolvePaths() (*config.Paths, error) {
	if rootDir != "" {
		return config.NewPaths(rootDir)
	}
	return config.DefaultPaths()
}

// newLogger builds the stderr text logger. --verbose forces debug.
func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openApp wires real implementations of every dependency without loading
// layouts.
func openApp() (*app, error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg, err := config.Load(paths)
	if err != nil {
		return nil, err
	}

	backend, err := settings.Open(cfg.Settings.Backend, paths.SettingsDir, paths.SettingsDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	s := settings.New(backend)

	fs := fsops.NewRealFS()
	repo := stores.NewFileLayoutRepo(fs, hash.NewSHA256Hasher(), paths.LayoutsFile, cfg.Templates.Path)
	registry := prometheus.NewRegistry()

	eng := engine.New(repo, s,
		engine.WithLogger(newLogger(cfg, os.Stderr)),
		engine.WithRecorder(diag.NewPrometheusRecorder(registry)),
		engine.WithClock(&clock.RealClock{}),
		engine.WithPerSpace(cfg.Spaces.PerSpace),
		engine.WithSpaceDefault(cfg.Spaces.DefaultLayout),
	)

	return &app{
		eng:      eng,
		fs:       fs,
		settings: s,
		bundles:  persist.NewBundleManager(fs),
		registry: registry,
	}, nil
}

// newEngine opens the app and loads layouts.
func newEngine() (*app, error) {
	a, err := openApp()
	if err != nil {
		return nil, err
	}
	if err := a.eng.LoadLayouts(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// parseSpace converts a --space value. Empty selects the global state.
func parseSpace(value string) (state.SpaceKey, error) {
	if value == "" {
		return state.GlobalKey, nil
	}
	return state.ParseKey(value)
}

// notFound decorates an unknown layout id with suggestions.
func notFound(eng *engine.Engine, id string) error {
	err := fmt.Errorf("%w: layout %s", engine.ErrNotFound, id)
	if hints := eng.Suggest(id); len(hints) > 0 {
		return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hints, ", "))
	}
	return err
}

// withSuggestions rewrites ErrNotFound from the engine into notFound.
func withSuggestions(eng *engine.Engine, id string, err error) error {
	if errors.Is(err, engine.ErrNotFound) {
		return notFound(eng, id)
	}
	return err
}

// readLayoutFile reads one layout from a JSON or YAML file. YAML is a
// superset of JSON so one decoder serves both.
func readLayoutFile(fs fsops.FS, path string) (layout.Layout, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("failed to read layout: %w", err)
	}
	var l layout.Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	return l, nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML outputs a value as YAML to stdout.
func outputYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
