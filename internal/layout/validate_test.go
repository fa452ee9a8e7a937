package layout

import (
	"errors"
	"math"
	"testing"
)

func halves() Layout {
	return Layout{
		ID:   "halves",
		Name: "Halves",
		Zones: []Zone{
			{Name: "Left", X: 0, Y: 0, W: 0.5, H: 1},
			{Name: "Right", X: 0.5, Y: 0, W: 0.5, H: 1},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Layout)
		want   Check
	}{
		{name: "valid", mutate: func(l *Layout) {}, want: CheckNone},
		{name: "empty id", mutate: func(l *Layout) { l.ID = "" }, want: CheckID},
		{name: "blank id", mutate: func(l *Layout) { l.ID = "   " }, want: CheckID},
		{name: "empty name", mutate: func(l *Layout) { l.Name = "" }, want: CheckName},
		{name: "no zones", mutate: func(l *Layout) { l.Zones = nil }, want: CheckZones},
		{name: "negative x", mutate: func(l *Layout) { l.Zones[0].X = -0.1 }, want: CheckZoneRange},
		{name: "w above one", mutate: func(l *Layout) { l.Zones[1].W = 1.5 }, want: CheckZoneRange},
		{name: "NaN height", mutate: func(l *Layout) { l.Zones[1].H = math.NaN() }, want: CheckZoneRange},
		{name: "infinite y", mutate: func(l *Layout) { l.Zones[0].Y = math.Inf(1) }, want: CheckZoneRange},
		{name: "id checked before name", mutate: func(l *Layout) { l.ID = ""; l.Name = "" }, want: CheckID},
		{name: "zones checked before range", mutate: func(l *Layout) { l.Name = ""; l.Zones[0].X = 2 }, want: CheckName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := halves()
			tt.mutate(&l)
			got := Validate(l)
			if got.Check != tt.want {
				t.Fatalf("Validate() check = %q, want %q (reason %q)", got.Check, tt.want, got.Reason)
			}
			if tt.want == CheckNone {
				if !got.OK() || got.Err() != nil {
					t.Errorf("expected passing result, got %+v", got)
				}
				return
			}
			if got.Reason == "" {
				t.Error("expected a reason for a failed check")
			}
			if !errors.Is(got.Err(), ErrInvalid) {
				t.Errorf("Err() = %v, want wrapping ErrInvalid", got.Err())
			}
			var verr *ValidationError
			if !errors.As(got.Err(), &verr) || verr.Result.Check != tt.want {
				t.Errorf("Err() = %#v, want *ValidationError with check %q", got.Err(), tt.want)
			}
		})
	}
}

func TestValidate_BoundaryValues(t *testing.T) {
	l := Layout{ID: "full", Name: "Full", Zones: []Zone{{X: 0, Y: 0, W: 1, H: 1}}}
	if r := Validate(l); !r.OK() {
		t.Errorf("expected [0,1] boundaries to be accepted, got %+v", r)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Check
	}{
		{
			name: "valid entry",
			raw:  `{"id":"a","name":"A","zones":[{"name":"z","x":0,"y":0,"w":1,"h":1}]}`,
			want: CheckNone,
		},
		{
			name: "string coordinate",
			raw:  `{"id":"a","name":"A","zones":[{"name":"z","x":"0","y":0,"w":1,"h":1}]}`,
			want: CheckDecode,
		},
		{
			name: "zones not a list",
			raw:  `{"id":"a","name":"A","zones":{}}`,
			want: CheckDecode,
		},
		{
			name: "missing zones",
			raw:  `{"id":"a","name":"A"}`,
			want: CheckZones,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := Decode([]byte(tt.raw))
			if r.Check != tt.want {
				t.Errorf("Decode() check = %q, want %q (%s)", r.Check, tt.want, r.Reason)
			}
		})
	}
}

func TestLayout_CloneIsDeep(t *testing.T) {
	pad := 8.0
	l := halves()
	l.Padding = &pad

	c := l.Clone()
	c.Zones[0].W = 0.25
	*c.Padding = 4

	if l.Zones[0].W != 0.5 {
		t.Errorf("clone shares zones with original")
	}
	if *l.Padding != 8 {
		t.Errorf("clone shares padding with original")
	}
	if !l.Equal(halvesWithPadding(8)) {
		t.Errorf("original changed after mutating clone")
	}
}

func halvesWithPadding(p float64) Layout {
	l := halves()
	l.Padding = &p
	return l
}

func TestLayout_ZoneAt(t *testing.T) {
	l := halves()
	if z, ok := l.ZoneAt(1); !ok || z.Name != "Right" {
		t.Errorf("ZoneAt(1) = %+v, %v", z, ok)
	}
	if z, ok := l.ZoneAt(5); !ok || z.Name != "Left" {
		t.Errorf("ZoneAt(5) should clamp to zone 0, got %+v", z)
	}
	if _, ok := (Layout{}).ZoneAt(0); ok {
		t.Error("ZoneAt on empty layout should report false")
	}
}
