package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockshell/internal/dock"
)

func TestLoadWindow_Defaults(t *testing.T) {
	w := LoadWindow(NewEmpty(filepath.Join(t.TempDir(), "s.json")))
	assert.Nil(t, w.Geometry)
	assert.Nil(t, w.State)
	assert.False(t, w.PanelLock)
	assert.False(t, w.TabsOnTop)
	assert.False(t, w.Responsive)
}

func TestSaveWindow_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	geo, err := Geometry{Width: 200, Height: 50, Focus: dock.Console}.MarshalBinary()
	require.NoError(t, err)
	in := Window{
		Geometry:   geo,
		State:      []byte(`{"version":1}`),
		PanelLock:  true,
		TabsOnTop:  true,
		Responsive: false,
	}
	require.NoError(t, SaveWindow(NewEmpty(path), in))

	s, err := Open(path)
	require.NoError(t, err)
	out := LoadWindow(s)
	assert.Equal(t, in, out)

	var g Geometry
	require.NoError(t, g.UnmarshalBinary(out.Geometry))
	assert.Equal(t, Geometry{Width: 200, Height: 50, Focus: dock.Console}, g)
}

func TestSaveWindow_AnyExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dockshell.conf")
	in := Window{State: []byte(`{"version":1}`), PanelLock: true, TabsOnTop: true}
	require.NoError(t, SaveWindow(NewEmpty(path), in))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, in, LoadWindow(s))
}

func TestGeometry_Rejects(t *testing.T) {
	var g Geometry
	assert.Error(t, g.UnmarshalBinary(nil))
	assert.Error(t, g.UnmarshalBinary([]byte("Xabcdefg")))
	assert.Error(t, g.UnmarshalBinary([]byte{'G', 9, 0, 1, 0, 1, 0}))
	assert.Error(t, g.UnmarshalBinary([]byte{'G', 1, 0, 1, 0, 1, 3, 'a'}))

	_, err := Geometry{Width: 70000}.MarshalBinary()
	assert.Error(t, err)
}
