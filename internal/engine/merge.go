package engine

import (
	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
)

// layoutSet is an insertion-ordered list of layouts indexed by id. Putting
// an id that is already present replaces the layout in place.
type layoutSet struct {
	list []layout.Layout
	pos  map[string]int
}

func newLayoutSet(capacity int) *layoutSet {
	return &layoutSet{
		list: make([]layout.Layout, 0, capacity),
		pos:  make(map[string]int, capacity),
	}
}

// put stores a copy of l.
func (s *layoutSet) put(l layout.Layout) {
	if i, ok := s.pos[l.ID]; ok {
		s.list[i] = l.Clone()
		return
	}
	s.pos[l.ID] = len(s.list)
	s.list = append(s.list, l.Clone())
}

// remove drops id and reports whether it was present.
func (s *layoutSet) remove(id string) bool {
	i, ok := s.pos[id]
	if !ok {
		return false
	}
	s.list = append(s.list[:i], s.list[i+1:]...)
	delete(s.pos, id)
	for j := i; j < len(s.list); j++ {
		s.pos[s.list[j].ID] = j
	}
	return true
}

func (s *layoutSet) has(id string) bool {
	_, ok := s.pos[id]
	return ok
}

// get returns a deep copy of layout id.
func (s *layoutSet) get(id string) (layout.Layout, bool) {
	i, ok := s.pos[id]
	if !ok {
		return layout.Layout{}, false
	}
	return s.list[i].Clone(), true
}

func (s *layoutSet) size() int {
	return len(s.list)
}

// mergeLayouts merges user entries over defaults by id and then filters
// the merged list through the validator. A user entry replaces the default
// with the same id in place even when it is invalid, so a broken override
// removes that id instead of silently falling back to the default.
// User-only layouts are appended in file order. Entries without a readable
// id cannot take part in the merge and are rejected directly.
func mergeLayouts(defaults []layout.Layout, user []stores.Entry) (*layoutSet, []stores.Rejection) {
	merged := newLayoutSet(len(defaults) + len(user))
	failed := make(map[string]stores.Rejection)
	var rejected []stores.Rejection

	for _, l := range defaults {
		merged.put(l)
	}
	for _, en := range user {
		if en.ID == "" {
			rejected = append(rejected, en.Rejection())
			continue
		}
		l := en.Layout
		l.ID = en.ID
		merged.put(l)
		if en.Result.OK() {
			delete(failed, en.ID)
		} else {
			failed[en.ID] = en.Rejection()
		}
	}

	valid := newLayoutSet(merged.size())
	for _, l := range merged.list {
		if r, bad := failed[l.ID]; bad {
			rejected = append(rejected, r)
			continue
		}
		if res := layout.Validate(l); !res.OK() {
			rejected = append(rejected, stores.Rejection{Index: -1, ID: l.ID, Result: res})
			continue
		}
		valid.put(l)
	}
	return valid, rejected
}
