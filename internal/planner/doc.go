// Package planner handles the planning phase of template migrations.
//
// When the built-in template catalog advances to a new version, the user's
// layouts file must be rewritten: template-derived entries are replaced by
// the new catalog, user-authored entries survive untouched, and order
// references to templates that no longer exist are dropped. The planner
// computes that rewrite as a deterministic plan without touching storage,
// so it can be previewed before the engine applies it.
//
// Key responsibilities:
//   - Partition file entries into user-authored and template-derived
//   - Generate a MigrationPlan with one operation per decision
//   - Produce the rewritten layouts list and order
package planner
