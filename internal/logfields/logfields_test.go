package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies helper key stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attr    slog.Attr
	}{
		{"LayoutID", KeyLayoutID, LayoutID("halves")},
		{"SpaceKey", KeySpaceKey, SpaceKey("DP-1:0")},
		{"ZoneIndex", KeyZoneIndex, ZoneIndex(1)},
		{"Check", KeyCheck, Check("zone-range")},
		{"Reason", KeyReason, Reason("x out of range")},
		{"Version", KeyVersion, Version(2)},
		{"FromVersion", KeyFromVersion, FromVersion(1)},
		{"ToVersion", KeyToVersion, ToVersion(2)},
		{"Path", KeyPath, Path("/tmp/layouts.json")},
		{"Count", KeyCount, Count(3)},
		{"Backend", KeyBackend, Backend("diskv")},
		{"DurationMS", KeyDurationMS, DurationMS(1.5)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
	}
}

func TestError(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("expected empty value for nil error, got %q", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("expected boom, got %q", got)
	}
}
