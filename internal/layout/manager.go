package layout

import (
	"context"
	"errors"
	"fmt"

	"dockshell/internal/dock"
	"dockshell/internal/logging"
)

// Manager owns the live tree and applies plans to it against a registry.
type Manager struct {
	ctx  context.Context
	reg  *dock.Registry
	vis  *dock.Visibility
	tree *Tree
}

// NewManager returns a manager with an empty tree.
func NewManager(ctx context.Context, reg *dock.Registry, vis *dock.Visibility) *Manager {
	return &Manager{ctx: ctx, reg: reg, vis: vis, tree: NewTree()}
}

// Tree returns the live tree.
func (m *Manager) Tree() *Tree {
	return m.tree
}

// ResetToDefault rebuilds the canonical layout:
//  1. every registered dock is taken out of the tree;
//  2. DefaultPlan is applied step by step;
//  3. DefaultDocks are shown, DefaultRaised is raised and DefaultPinned are
//     pinned until ReleaseConstraints runs after the next render.
//
// Docks the plan names but the registry lacks are skipped, each logged once.
func (m *Manager) ResetToDefault() {
	for d := range m.reg.All() {
		m.tree.Remove(d.ID)
	}
	m.Apply(DefaultPlan)

	var show []dock.ID
	for _, id := range DefaultDocks {
		if m.tree.Contains(id) {
			show = append(show, id)
		}
	}
	m.vis.ShowOnly(show)

	_ = m.tree.Raise(DefaultRaised)
	for _, id := range DefaultPinned {
		_ = m.tree.Pin(id, PinnedWidth)
	}
}

// Apply runs plan against the tree in order. Steps naming unregistered docks
// are skipped; a split whose first dock is absent anchors the second dock in
// the step's area instead so later steps still have a target.
func (m *Manager) Apply(plan []Step) {
	log := logging.FromContext(m.ctx)
	missing := make(map[dock.ID]bool)
	skip := func(id dock.ID) bool {
		if id == "" || m.reg.Has(id) {
			return false
		}
		if !missing[id] {
			missing[id] = true
			log.Warn().Str("component", "layout").Str("dock", string(id)).Msg("layout references unregistered dock; skipping")
		}
		return true
	}

	for _, s := range plan {
		switch s.Op {
		case OpAnchor:
			if skip(s.First) {
				continue
			}
			m.tree.AddDock(s.Area, s.First)
		case OpSplit:
			if skip(s.Second) {
				continue
			}
			if skip(s.First) || !m.tree.Contains(s.First) {
				m.tree.AddDock(s.Area, s.Second)
				continue
			}
			if err := m.tree.SplitDock(s.First, s.Second, s.Orientation); err != nil {
				log.Warn().Err(err).Str("component", "layout").Msg("split failed")
			}
		case OpTabify:
			if skip(s.First) || skip(s.Second) {
				continue
			}
			if err := m.tree.Tabify(s.First, s.Second); err != nil {
				log.Warn().Err(err).Str("component", "layout").Msg("tabify failed")
			}
		}
	}
}

// ReleaseConstraints drops the post-reset width pins. The ui calls it once the
// first frame after a reset has been drawn.
func (m *Manager) ReleaseConstraints() {
	m.tree.ReleaseConstraints()
}

// Place gives a position to a dock that has none, as a tab next to the
// dashboard when possible. Placed docks are left alone.
func (m *Manager) Place(id dock.ID) error {
	if !m.reg.Has(id) {
		return fmt.Errorf("place %q: %w", id, dock.ErrDockNotFound)
	}
	if m.tree.Contains(id) {
		return nil
	}
	if m.tree.Contains(DefaultRaised) {
		return m.tree.Tabify(DefaultRaised, id)
	}
	m.tree.AddDock(Upper, id)
	return nil
}

// Move tabifies id onto target's group. Both docks need the movable
// capability.
func (m *Manager) Move(id, target dock.ID) error {
	for _, d := range []dock.ID{id, target} {
		desc, err := m.reg.Lookup(d)
		if err != nil {
			return err
		}
		if !desc.Widget.Capabilities().Has(dock.Movable) {
			return fmt.Errorf("move %q: %w", d, dock.ErrCapabilityDenied)
		}
	}
	return m.tree.Tabify(target, id)
}

// Resize moves the split boundary next to id. It needs the movable
// capability, like dragging a splitter does.
func (m *Manager) Resize(id dock.ID, o Orientation, delta float64) error {
	desc, err := m.reg.Lookup(id)
	if err != nil {
		return err
	}
	if !desc.Widget.Capabilities().Has(dock.Movable) {
		return fmt.Errorf("resize %q: %w", id, dock.ErrCapabilityDenied)
	}
	return m.tree.Resize(id, o, delta)
}

// Restore replaces the tree with the one in blob and applies its visibility.
// A blob that does not decode leaves everything untouched and returns an
// error; the caller falls back to ResetToDefault.
func (m *Manager) Restore(blob []byte) error {
	st, err := DecodeState(blob)
	if err != nil {
		return err
	}
	t, dropped := st.Tree(m.reg.Has)
	if t.Validate() != nil {
		return errors.New("restore layout: invalid tree")
	}
	if len(dropped) > 0 {
		logging.FromContext(m.ctx).Info().
			Str("component", "layout").
			Int("dropped", len(dropped)).
			Msg("restored layout without unknown docks")
	}
	m.tree = t
	var show []dock.ID
	for _, id := range st.Visible {
		if t.Contains(id) {
			show = append(show, id)
		}
	}
	m.vis.ShowOnly(show)
	return nil
}

// Save encodes the tree and the current visible set.
func (m *Manager) Save() ([]byte, error) {
	return EncodeState(m.tree, m.vis.VisibleIDs())
}
