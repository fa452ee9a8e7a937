package engine

import "errors"

var (
	// ErrValidation indicates a layout failed validation. It wraps the
	// underlying layout.ErrInvalid result.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a layout or template was not found.
	ErrNotFound = errors.New("not found")

	// ErrNoLayouts indicates no valid layout is available.
	ErrNoLayouts = errors.New("no layouts available")

	// ErrStorage indicates the layouts file or settings could not be read or written.
	ErrStorage = errors.New("storage error")

	// ErrMigration indicates a template migration was aborted.
	ErrMigration = errors.New("migration failed")
)
