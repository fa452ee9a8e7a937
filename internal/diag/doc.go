// Package diag provides diagnostics hooks for the layout engine.
//
// The engine reports load, validation, migration, storage and selection
// events to a Recorder. Recorders are injected, never global: the default
// NoopRecorder discards everything and PrometheusRecorder registers its
// collectors on a registry owned by the caller.
package diag
