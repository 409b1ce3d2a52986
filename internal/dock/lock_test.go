package dock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_FiveDocks(t *testing.T) {
	r := newTestRegistry(t, Functions, Dashboard, Sidebar, Console, Sections)
	l := NewLock(r)

	l.SetLocked(true)
	for d := range r.All() {
		assert.Equal(t, NoCapabilities, d.Widget.Capabilities(), d.ID)
	}

	l.SetLocked(false)
	for d := range r.All() {
		assert.Equal(t, AllCapabilities, d.Widget.Capabilities(), d.ID)
	}
}

func TestLock_RoundTripRestoresExactCapabilities(t *testing.T) {
	r := newTestRegistry(t, Functions, Console)
	d, err := r.Lookup(Console)
	require.NoError(t, err)
	d.Widget.SetCapabilities(Movable | Closable)

	l := NewLock(r)
	l.SetLocked(true)
	l.SetLocked(true) // idempotent: must not overwrite the snapshot with {}
	l.SetLocked(false)

	assert.Equal(t, Movable|Closable, d.Widget.Capabilities())
	f, err := r.Lookup(Functions)
	require.NoError(t, err)
	assert.Equal(t, AllCapabilities, f.Widget.Capabilities())
}

func TestLock_MenuAndAcceleratorConverge(t *testing.T) {
	r := newTestRegistry(t, Functions)
	l := NewLock(r)

	// menu toggles on, accelerator toggles off: same flag either way
	assert.True(t, l.Toggle())
	l.SetLocked(false)
	assert.False(t, l.Locked())
	assert.True(t, l.Toggle())
	assert.True(t, l.Locked())
	assert.ErrorIs(t, l.Require(Functions, Floatable), ErrCapabilityDenied)
}

func TestLock_DockRegisteredWhileLocked(t *testing.T) {
	r := newTestRegistry(t, Functions)
	l := NewLock(r)
	l.SetLocked(true)

	p := NewPanel()
	require.NoError(t, r.Register(&Descriptor{ID: Graph, Widget: p}))
	l.SetLocked(true)
	assert.Equal(t, NoCapabilities, p.Capabilities())

	l.SetLocked(false)
	assert.Equal(t, AllCapabilities, p.Capabilities())
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "{}", NoCapabilities.String())
	assert.Equal(t, "{move,float,close}", AllCapabilities.String())
}
