package templates

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, c.Version(), 1)
	assert.True(t, c.Has("halves"))
	assert.True(t, c.Has("thirds"))
	assert.True(t, c.Has("quarters"))

	for _, l := range c.All() {
		assert.True(t, layout.Validate(l).OK(), "template %s must validate", l.ID)
	}
}

func TestCatalog_AllReturnsCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	all := c.All()
	all[0].Zones[0].X = 0.9
	all[0].Name = "changed"

	again := c.All()
	assert.Equal(t, 0.0, again[0].Zones[0].X)
	assert.NotEqual(t, "changed", again[0].Name)
}

func TestCatalog_Instantiate(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	l, err := c.Instantiate("halves")
	require.NoError(t, err)
	assert.Equal(t, "template-halves", l.ID)
	assert.Len(t, l.Zones, 2)

	tmpl, _ := c.Get("halves")
	l.Zones[0].W = 0.1
	assert.Equal(t, 0.5, tmpl.Zones[0].W)

	_, err = c.Instantiate("nope")
	assert.True(t, errors.Is(err, ErrUnknownTemplate))
}

func TestIsTemplateID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"halves", true},
		{"quarters", true},
		{"template-halves", true},
		{"layout-3f2a", false},
		{"custom_1", false},
		{"customLayout", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTemplateID(tt.id))
		})
	}
}

func TestCatalog_Reserved(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		id       string
		tracks   bool
		reserved bool
	}{
		{"halves", true, false},
		{"template-halves", true, false},
		{"template-gone", false, true},
		{"work", false, true},
		{"custom-work", false, false},
		{"layout-3f2a", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.tracks, c.Tracks(tt.id))
			assert.Equal(t, tt.reserved, c.Reserved(tt.id))
		})
	}
}

func TestDerivedTemplateID(t *testing.T) {
	tid, ok := DerivedTemplateID("template-thirds")
	assert.True(t, ok)
	assert.Equal(t, "thirds", tid)

	_, ok = DerivedTemplateID("template-")
	assert.False(t, ok)

	_, ok = DerivedTemplateID("thirds")
	assert.False(t, ok)

	assert.Equal(t, "template-thirds", DerivedID("thirds"))
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`version: 2
layouts:
  - id: halves
    name: Halves
    zones:
      - {name: Left, x: 0, y: 0, w: 0.5, h: 1}
      - {name: Right, x: 0.5, y: 0, w: 0.5, h: 1}
`)
	file, err := Parse(data, "catalog.yaml")
	require.NoError(t, err)

	c, err := New(file)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Version())
	assert.Equal(t, []string{"halves"}, c.IDs())
}

func TestCatalogFile_Validate(t *testing.T) {
	zones := []layout.Zone{{Name: "Full", W: 1, H: 1}}

	tests := []struct {
		name string
		file CatalogFile
	}{
		{"zero version", CatalogFile{Version: 0, Layouts: []layout.Layout{{ID: "a", Name: "A", Zones: zones}}}},
		{"empty", CatalogFile{Version: 1}},
		{"invalid template", CatalogFile{Version: 1, Layouts: []layout.Layout{{ID: "a", Name: "A"}}}},
		{"user prefix", CatalogFile{Version: 1, Layouts: []layout.Layout{{ID: "custom-a", Name: "A", Zones: zones}}}},
		{"duplicate", CatalogFile{Version: 1, Layouts: []layout.Layout{
			{ID: "a", Name: "A", Zones: zones},
			{ID: "a", Name: "A again", Zones: zones},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.file)
			assert.Error(t, err)
		})
	}
}

func TestParse_BadJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"), "catalog.json")
	assert.Error(t, err)
}
