// Package session tracks the tmux panes docks were floated into. Each dock
// has at most one floated pane; panes the user closed by hand are dropped by
// Prune.
package session

import (
	"slices"
	"sync"
	"time"

	"dockshell/internal/dock"
)

// PaneType distinguishes an r2 listing pane from a Python REPL pane.
type PaneType string

const (
	PaneContent PaneType = "content"
	PaneRepl    PaneType = "repl"
)

// TrackedPane holds metadata about one floated pane.
type TrackedPane struct {
	PaneID    string // tmux pane ID (e.g. "%42")
	Type      PaneType
	Dock      dock.ID
	CreatedAt time.Time
}

// LivenessChecker returns the set of currently live tmux pane IDs.
// In production this is tmux.ListPaneIDs; tests inject a stub.
type LivenessChecker func() (map[string]bool, error)

// Tracker maps docks to their floated panes. Safe for concurrent use.
type Tracker struct {
	mu       sync.RWMutex
	panes    map[dock.ID]TrackedPane
	liveness LivenessChecker
}

// New creates a Tracker. With a nil liveness checker Prune is a no-op.
func New(liveness LivenessChecker) *Tracker {
	return &Tracker{
		panes:    make(map[dock.ID]TrackedPane),
		liveness: liveness,
	}
}

// Register records paneID as the floated pane of id and returns the pane it
// replaces, if any. The caller closes the replaced pane.
func (t *Tracker) Register(id dock.ID, paneID string, typ PaneType) (TrackedPane, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	old, had := t.panes[id]
	t.panes[id] = TrackedPane{
		PaneID:    paneID,
		Type:      typ,
		Dock:      id,
		CreatedAt: time.Now(),
	}
	return old, had
}

// Lookup returns the floated pane of id.
func (t *Tracker) Lookup(id dock.ID) (TrackedPane, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.panes[id]
	return p, ok
}

// Unregister removes a pane by ID. Returns true if it was tracked.
func (t *Tracker) Unregister(paneID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, p := range t.panes {
		if p.PaneID == paneID {
			delete(t.panes, id)
			return true
		}
	}
	return false
}

// All returns every tracked pane ordered by dock ID.
func (t *Tracker) All() []TrackedPane {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]TrackedPane, 0, len(t.panes))
	for _, p := range t.panes {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b TrackedPane) int {
		switch {
		case a.Dock < b.Dock:
			return -1
		case a.Dock > b.Dock:
			return 1
		}
		return 0
	})
	return out
}

// Count returns the number of tracked panes.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.panes)
}

// Prune forgets panes that no longer exist and returns how many it dropped.
func (t *Tracker) Prune() (int, error) {
	if t.liveness == nil {
		return 0, nil
	}
	live, err := t.liveness()
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	pruned := 0
	for id, p := range t.panes {
		if !live[p.PaneID] {
			delete(t.panes, id)
			pruned++
		}
	}
	return pruned, nil
}

// Drain removes and returns every tracked pane.
func (t *Tracker) Drain() []TrackedPane {
	out := t.All()
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.panes)
	return out
}
