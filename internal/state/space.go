package state

import (
	"fmt"
	"strconv"
	"strings"
)

// SpaceKey identifies a space.
type SpaceKey string

// GlobalKey is used for every space when per-space layouts are disabled.
const GlobalKey SpaceKey = "__global__"

// MakeKey builds the key for a monitor output and workspace index.
func MakeKey(output string, workspace int) SpaceKey {
	return SpaceKey(output + ":" + strconv.Itoa(workspace))
}

// ParseKey parses "<output>:<workspace>" or the global sentinel. The
// workspace is taken after the last colon so outputs may contain colons.
func ParseKey(s string) (SpaceKey, error) {
	if s == string(GlobalKey) {
		return GlobalKey, nil
	}
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return "", fmt.Errorf("invalid space key %q: want <output>:<workspace>", s)
	}
	ws, err := strconv.Atoi(s[i+1:])
	if err != nil || ws < 0 {
		return "", fmt.Errorf("invalid workspace in space key %q", s)
	}
	return MakeKey(s[:i], ws), nil
}

// IsGlobal reports whether k is the global sentinel.
func (k SpaceKey) IsGlobal() bool {
	return k == GlobalKey
}

func (k SpaceKey) String() string {
	return string(k)
}

// SpaceState is the selection remembered for one space.
type SpaceState struct {
	// LayoutID references a layout in the merged list
	LayoutID string `json:"layout_id"`

	// ZoneIndex is the current zone within that layout
	ZoneIndex int `json:"zone_index"`
}

// Validate checks the state's own fields. Whether LayoutID resolves is
// decided by the SpatialStore against its LayoutResolver.
func (s SpaceState) Validate() error {
	if strings.TrimSpace(s.LayoutID) == "" {
		return fmt.Errorf("space state has an empty layout id")
	}
	if s.ZoneIndex < 0 {
		return fmt.Errorf("space state zone index %d is negative", s.ZoneIndex)
	}
	return nil
}
