package engine

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
)

func (e *Engine) has(id string) bool {
	return e.layouts.has(id)
}

// lookup returns a deep copy of layout id.
func (e *Engine) lookup(id string) (layout.Layout, bool) {
	return e.layouts.get(id)
}

func (e *Engine) firstLayoutID() string {
	ordered := e.orderedIDs()
	if len(ordered) == 0 {
		return ""
	}
	return ordered[0]
}

// orderedIDs applies the custom order: ordered ids first, then the rest in
// merged order.
func (e *Engine) orderedIDs() []string {
	order := e.normalizeOrder(e.order)
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		seen[id] = true
	}
	for _, l := range e.layouts.list {
		if !seen[l.ID] {
			order = append(order, l.ID)
		}
	}
	return order
}

// Layout returns a copy of layout id.
func (e *Engine) Layout(id string) (*layout.Layout, bool) {
	l, ok := e.lookup(id)
	if !ok {
		return nil, false
	}
	return &l, true
}

// HasLayout reports whether id is in the merged list.
func (e *Engine) HasLayout(id string) bool {
	return e.has(id)
}

// AllLayouts returns copies of every layout in merged order.
func (e *Engine) AllLayouts() []layout.Layout {
	return layout.CloneAll(e.layouts.list)
}

// AllLayoutsOrdered returns copies of every layout with the custom order applied.
func (e *Engine) AllLayoutsOrdered() []layout.Layout {
	ids := e.orderedIDs()
	out := make([]layout.Layout, 0, len(ids))
	for _, id := range ids {
		l, _ := e.lookup(id)
		out = append(out, l)
	}
	return out
}

// Suggest returns up to three known ids closest to id by edit distance,
// for "did you mean" messages.
func (e *Engine) Suggest(id string) []string {
	type candidate struct {
		id   string
		dist int
	}

	limit := max(2, len(id)/3)
	var candidates []candidate
	for _, l := range e.layouts.list {
		d := levenshtein.ComputeDistance(id, l.ID)
		if d <= limit {
			candidates = append(candidates, candidate{l.ID, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})

	out := []string{}
	for i := 0; i < len(candidates) && i < 3; i++ {
		out = append(out, candidates[i].id)
	}
	return out
}
