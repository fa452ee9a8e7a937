package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid layout")

// Check identifies which validation rule a layout failed.
type Check string

// Validation checks, in the order they are applied.
const (
	CheckNone      Check = ""
	CheckDecode    Check = "decode"
	CheckID        Check = "id"
	CheckName      Check = "name"
	CheckZones     Check = "zones"
	CheckZoneRange Check = "zone-range"

	// CheckReserved is reported by callers that reserve ids; Validate never
	// returns it.
	CheckReserved Check = "reserved-id"
)

// Result is the outcome of validating a layout or zone.
type Result struct {
	// Check is the first rule that failed, or CheckNone
	Check Check

	// Reason is a human-readable explanation of the failure
	Reason string
}

// OK reports whether validation passed.
func (r Result) OK() bool {
	return r.Check == CheckNone
}

// Err returns nil for a passing result, otherwise a *ValidationError.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Result: r}
}

// ValidationError carries a failed Result and matches ErrInvalid.
type ValidationError struct {
	Result Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalid, e.Result.Check, e.Result.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

func fail(check Check, format string, args ...any) Result {
	return Result{Check: check, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a layout in order and stops at the first failure:
// non-empty id, non-empty name, non-empty zones, every zone in range.
func Validate(l Layout) Result {
	if strings.TrimSpace(l.ID) == "" {
		return fail(CheckID, "id is empty")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fail(CheckName, "layout %q has an empty name", l.ID)
	}
	if len(l.Zones) == 0 {
		return fail(CheckZones, "layout %q has no zones", l.ID)
	}
	for i, z := range l.Zones {
		if r := ValidateZone(z); !r.OK() {
			r.Reason = fmt.Sprintf("layout %q zone %d: %s", l.ID, i, r.Reason)
			return r
		}
	}
	return Result{}
}

// ValidateZone checks that all four coordinates are finite and within [0,1].
func ValidateZone(z Zone) Result {
	coords := []struct {
		name  string
		value float64
	}{
		{"x", z.X},
		{"y", z.Y},
		{"w", z.W},
		{"h", z.H},
	}
	for _, c := range coords {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fail(CheckZoneRange, "%s is not a finite number", c.name)
		}
		if c.value < 0 || c.value > 1 {
			return fail(CheckZoneRange, "%s=%g is outside [0,1]", c.name, c.value)
		}
	}
	return Result{}
}

// Decode parses one raw layout entry and validates it. Entries that do not
// decode (a coordinate given as a string, a zones field that is not a list)
// fail with CheckDecode, so a single malformed entry never rejects its
// neighbours.
func Decode(raw json.RawMessage) (Layout, Result) {
	var l Layout
	if err := json.Unmarshal(raw, &l); err != nil {
		return Layout{}, fail(CheckDecode, "%v", err)
	}
	return l, Validate(l)
}
