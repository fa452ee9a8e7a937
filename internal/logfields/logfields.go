// Package logfields holds the canonical slog attribute names used across zoned.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLayoutID    = "layout_id"
	KeySpaceKey    = "space_key"
	KeyZoneIndex   = "zone_index"
	KeyCheck       = "check"
	KeyReason      = "reason"
	KeyVersion     = "version"
	KeyFromVersion = "from_version"
	KeyToVersion   = "to_version"
	KeyPath        = "path"
	KeyCount       = "count"
	KeyBackend     = "backend"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func LayoutID(id string) slog.Attr    { return slog.String(KeyLayoutID, id) }
func SpaceKey(k string) slog.Attr     { return slog.String(KeySpaceKey, k) }
func ZoneIndex(i int) slog.Attr       { return slog.Int(KeyZoneIndex, i) }
func Check(c string) slog.Attr        { return slog.String(KeyCheck, c) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Version(v int) slog.Attr         { return slog.Int(KeyVersion, v) }
func FromVersion(v int) slog.Attr     { return slog.Int(KeyFromVersion, v) }
func ToVersion(v int) slog.Attr       { return slog.Int(KeyToVersion, v) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Backend(b string) slog.Attr      { return slog.String(KeyBackend, b) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
