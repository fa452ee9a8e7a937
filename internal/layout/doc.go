// Package layout defines the layout and zone records shared by every other
// package, together with the two pure building blocks of the engine: the
// layout validator and the zone cycler.
//
// Key concepts:
//   - Zone: a rectangle expressed as fractions (0-1) of a work area
//   - Layout: a named, ordered list of zones
//   - Validate: ordered schema/range checks returning a structured Result
//   - Cycle: wraparound stepping through a layout's zones
//   - ClampIndex: the single clamp policy for persisted zone indices
package layout
