package stores

import (
	"encoding/json"
	"fmt"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
)

// LayoutsFile is the layouts.json document holding user layouts and the
// custom display order.
//
// Entries are kept as raw JSON so that one malformed entry can be rejected
// on its own and survives a rewrite of the file untouched.
type LayoutsFile struct {
	// Layouts holds one raw JSON object per layout
	Layouts []json.RawMessage `json:"layouts"`

	// LayoutOrder is the custom display order of layout ids
	LayoutOrder []string `json:"layout_order"`
}

// Rejection describes a layouts file entry that failed to decode or validate.
type Rejection struct {
	// Index is the entry's position in the file, or -1 when the rejection
	// came after the merge
	Index int

	// ID is the entry's id, when one could be read
	ID string

	// Result is the failed validation result
	Result layout.Result
}

type idOnly struct {
	ID string `json:"id"`
}

// NewLayoutsFile encodes layouts and order into a LayoutsFile.
func NewLayoutsFile(layouts []layout.Layout, order []string) (*LayoutsFile, error) {
	f := &LayoutsFile{
		Layouts:     make([]json.RawMessage, 0, len(layouts)),
		LayoutOrder: append([]string{}, order...),
	}
	for _, l := range layouts {
		raw, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("failed to encode layout %s: %w", l.ID, err)
		}
		f.Layouts = append(f.Layouts, raw)
	}
	return f, nil
}

// Entry is one decoded layouts file entry with its validation outcome.
type Entry struct {
	// Index is the entry's position in the file
	Index int

	// ID is the entry's id, read even when the entry fails to decode
	ID string

	// Layout is the decoded layout, zero when decoding failed
	Layout layout.Layout

	// Result is the validation result of the entry on its own
	Result layout.Result
}

// Rejection converts a failed entry into a Rejection.
func (e Entry) Rejection() Rejection {
	return Rejection{Index: e.Index, ID: e.ID, Result: e.Result}
}

// Entries decodes and validates every entry in file order, failed ones
// included.
func (f *LayoutsFile) Entries() []Entry {
	entries := make([]Entry, 0, len(f.Layouts))
	for i, raw := range f.Layouts {
		l, res := layout.Decode(raw)
		id := l.ID
		if !res.OK() && id == "" {
			id = EntryID(raw)
		}
		entries = append(entries, Entry{Index: i, ID: id, Layout: l, Result: res})
	}
	return entries
}

// Decode returns every entry that decodes and validates, in file order,
// along with a rejection for each entry that does not.
func (f *LayoutsFile) Decode() ([]layout.Layout, []Rejection) {
	var valid []layout.Layout
	var rejected []Rejection
	for _, e := range f.Entries() {
		if e.Result.OK() {
			valid = append(valid, e.Layout)
			continue
		}
		rejected = append(rejected, e.Rejection())
	}
	return valid, rejected
}

// IDs returns the id of every entry that has one, in file order.
func (f *LayoutsFile) IDs() []string {
	var ids []string
	for _, raw := range f.Layouts {
		if id := EntryID(raw); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Has reports whether an entry with the given id is present.
func (f *LayoutsFile) Has(id string) bool {
	return f.indexOf(id) >= 0
}

// Upsert replaces the entry with l's id in place, or appends l.
func (f *LayoutsFile) Upsert(l layout.Layout) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode layout %s: %w", l.ID, err)
	}
	if i := f.indexOf(l.ID); i >= 0 {
		f.Layouts[i] = raw
		return nil
	}
	f.Layouts = append(f.Layouts, raw)
	return nil
}

// Remove drops the entry with the given id and its order reference.
// It reports whether an entry was removed.
func (f *LayoutsFile) Remove(id string) bool {
	i := f.indexOf(id)
	if i < 0 {
		return false
	}
	f.Layouts = append(f.Layouts[:i], f.Layouts[i+1:]...)

	order := f.LayoutOrder[:0]
	for _, oid := range f.LayoutOrder {
		if oid != id {
			order = append(order, oid)
		}
	}
	f.LayoutOrder = order
	return true
}

func (f *LayoutsFile) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, raw := range f.Layouts {
		if EntryID(raw) == id {
			return i
		}
	}
	return -1
}

// EntryID returns the id field of a raw layout entry, or "" if it has none.
func EntryID(raw json.RawMessage) string {
	var e idOnly
	if err := json.Unmarshal(raw, &e); err != nil {
		return ""
	}
	return e.ID
}
