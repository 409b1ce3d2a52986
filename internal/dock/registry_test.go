package dock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, ids ...ID) *Registry {
	t.Helper()
	r := NewRegistry(context.Background())
	for _, id := range ids {
		require.NoError(t, r.Register(&Descriptor{
			ID:     id,
			Title:  string(id),
			Widget: NewPanel(),
			Action: NewToggleAction(string(id), ""),
		}))
	}
	return r
}

func TestRegistry_RegisterTwiceIsRejected(t *testing.T) {
	r := newTestRegistry(t, Functions)
	first, err := r.Lookup(Functions)
	require.NoError(t, err)

	err = r.Register(&Descriptor{ID: Functions, Widget: NewPanel()})
	assert.ErrorIs(t, err, ErrDuplicateDock)
	assert.Equal(t, 1, r.Len())

	again, err := r.Lookup(Functions)
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestRegistry_LookupMissing(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Lookup(Graph)
	assert.ErrorIs(t, err, ErrDockNotFound)
}

func TestRegistry_AllIsOrderedAndRestartable(t *testing.T) {
	r := newTestRegistry(t, Console, Functions, Strings)

	var first, second []ID
	for d := range r.All() {
		first = append(first, d.ID)
	}
	for d := range r.All() {
		second = append(second, d.ID)
	}
	assert.Equal(t, []ID{Console, Functions, Strings}, first)
	assert.Equal(t, first, second)
}

func TestRegistry_AllStopsEarly(t *testing.T) {
	r := newTestRegistry(t, Console, Functions, Strings)
	n := 0
	for range r.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestNewDefaultRegistry_OneDockPerKind(t *testing.T) {
	r := NewDefaultRegistry(context.Background())
	assert.Equal(t, len(Kinds), r.Len())
	for _, k := range Kinds {
		d, err := r.Lookup(k.ID)
		require.NoError(t, err)
		assert.False(t, d.Visible(), "%s starts hidden", k.ID)
		assert.Equal(t, AllCapabilities, d.Widget.Capabilities())
	}
}
