// Package state manages per-space layout selection.
//
// A space is a monitor and workspace pairing. Each space remembers which
// layout it uses and which zone of that layout is current. The whole map is
// persisted as one settings value so it survives restarts.
//
// Key concepts:
//   - SpaceKey: Deterministic "<output>:<workspace>" identifier
//   - SpaceState: A space's layout id and zone index
//   - SpatialStore: Lazily initialized map of SpaceKey to SpaceState
//   - StateStore: Interface for persisting and loading the map
//   - LayoutResolver: What the store needs to know about available layouts
package state
