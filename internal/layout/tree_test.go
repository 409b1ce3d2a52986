package layout

import (
	"testing"

	"dockshell/internal/dock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_AddSplitTabify(t *testing.T) {
	tr := NewTree()
	tr.AddDock(Upper, dock.Functions)
	require.NoError(t, tr.SplitDock(dock.Functions, dock.Dashboard, Horizontal))
	require.NoError(t, tr.Tabify(dock.Dashboard, dock.Strings))
	require.NoError(t, tr.Tabify(dock.Dashboard, dock.Imports))

	root := tr.Root(Upper)
	require.True(t, root.IsSplit())
	assert.Equal(t, []dock.ID{dock.Functions}, root.Children[0].Tabs)
	assert.Equal(t, []dock.ID{dock.Dashboard, dock.Strings, dock.Imports}, root.Children[1].Tabs)
	assert.NoError(t, tr.Validate())
}

func TestTree_SplitUnplacedFails(t *testing.T) {
	tr := NewTree()
	err := tr.SplitDock(dock.Functions, dock.Dashboard, Horizontal)
	assert.ErrorIs(t, err, ErrNotPlaced)
	assert.ErrorIs(t, tr.Tabify(dock.Functions, dock.Dashboard), ErrNotPlaced)
}

func TestTree_MovingADockNeverDuplicatesIt(t *testing.T) {
	tr := NewTree()
	tr.AddDock(Upper, dock.Functions)
	require.NoError(t, tr.SplitDock(dock.Functions, dock.Dashboard, Horizontal))
	tr.AddDock(Lower, dock.Console)
	require.NoError(t, tr.Tabify(dock.Console, dock.Dashboard))

	assert.NoError(t, tr.Validate())
	area, ok := tr.AreaOf(dock.Dashboard)
	require.True(t, ok)
	assert.Equal(t, Lower, area)
	// the upper split collapsed back into a single group
	assert.False(t, tr.Root(Upper).IsSplit())
	assert.Equal(t, []dock.ID{dock.Functions}, tr.Root(Upper).Tabs)
}

func TestTree_RemoveIsIdempotent(t *testing.T) {
	tr := NewTree()
	tr.AddDock(Lower, dock.Console)
	assert.True(t, tr.Remove(dock.Console))
	assert.False(t, tr.Remove(dock.Console))
	assert.Nil(t, tr.Root(Lower))
}

func TestTree_RemoveKeepsCurrentTab(t *testing.T) {
	tr := NewTree()
	tr.AddDock(Upper, dock.Dashboard)
	require.NoError(t, tr.Tabify(dock.Dashboard, dock.Graph))
	require.NoError(t, tr.Tabify(dock.Dashboard, dock.Hexdump))
	require.NoError(t, tr.Raise(dock.Hexdump))

	tr.Remove(dock.Dashboard)
	assert.Equal(t, dock.Hexdump, tr.Group(dock.Hexdump).CurrentTab())
}

func TestTree_Resize(t *testing.T) {
	tr := NewTree()
	tr.AddDock(Upper, dock.Functions)
	require.NoError(t, tr.SplitDock(dock.Functions, dock.Dashboard, Horizontal))

	require.NoError(t, tr.Resize(dock.Functions, Horizontal, 0.2))
	assert.InDelta(t, 0.7, tr.Root(Upper).Ratio, 1e-9)

	require.NoError(t, tr.Resize(dock.Dashboard, Horizontal, 0.5))
	assert.InDelta(t, 0.2, tr.Root(Upper).Ratio, 1e-9)

	require.NoError(t, tr.Resize(dock.Dashboard, Horizontal, 0.5))
	assert.InDelta(t, 0.1, tr.Root(Upper).Ratio, 1e-9)
}
