package layout

// Zone is a normalized rectangle within a work area. All four coordinates
// are fractions of the work area and lie in [0,1].
type Zone struct {
	// Name is a human-readable label ("Left", "Top right", ...)
	Name string `json:"name" yaml:"name"`

	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Layout is one named window-arrangement configuration.
type Layout struct {
	// ID uniquely identifies the layout across defaults and user layouts
	ID string `json:"id" yaml:"id"`

	// Name is the display name
	Name string `json:"name" yaml:"name"`

	// Zones is the ordered list of regions; cycling walks it in order
	Zones []Zone `json:"zones" yaml:"zones"`

	// Padding is the optional gap in pixels applied around each zone
	Padding *float64 `json:"padding,omitempty" yaml:"padding,omitempty"`

	// Shortcut is an optional accelerator bound to this layout
	Shortcut string `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	out := l
	if l.Zones != nil {
		out.Zones = make([]Zone, len(l.Zones))
		copy(out.Zones, l.Zones)
	}
	if l.Padding != nil {
		p := *l.Padding
		out.Padding = &p
	}
	return out
}

// ZoneCount returns the number of zones in the layout.
func (l Layout) ZoneCount() int {
	return len(l.Zones)
}

// ZoneAt returns the zone at index after clamping the index with ClampIndex.
// The second return value is false when the layout has no zones.
func (l Layout) ZoneAt(index int) (Zone, bool) {
	if len(l.Zones) == 0 {
		return Zone{}, false
	}
	return l.Zones[ClampIndex(index, len(l.Zones))], true
}

// Equal reports whether two layouts are identical field by field.
func (l Layout) Equal(other Layout) bool {
	if l.ID != other.ID || l.Name != other.Name || l.Shortcut != other.Shortcut {
		return false
	}
	if (l.Padding == nil) != (other.Padding == nil) {
		return false
	}
	if l.Padding != nil && *l.Padding != *other.Padding {
		return false
	}
	if len(l.Zones) != len(other.Zones) {
		return false
	}
	for i := range l.Zones {
		if l.Zones[i] != other.Zones[i] {
			return false
		}
	}
	return true
}

// CloneAll deep-copies a slice of layouts.
func CloneAll(layouts []Layout) []Layout {
	out := make([]Layout, len(layouts))
	for i, l := range layouts {
		out[i] = l.Clone()
	}
	return out
}

// IDs returns the ids of layouts in order.
func IDs(layouts []Layout) []string {
	ids := make([]string, len(layouts))
	for i, l := range layouts {
		ids[i] = l.ID
	}
	return ids
}
