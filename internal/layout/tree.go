// Package layout models the dock arrangement as plain data. A Tree has two
// anchors (upper and lower region); each anchor is a binary tree of splits
// whose leaves are tab groups. Nothing here touches the terminal: Arrange
// turns a tree into rectangles and the ui package draws them.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"dockshell/internal/dock"
)

// ErrNotPlaced is returned when an operation targets a dock that has no
// position in the tree.
var ErrNotPlaced = errors.New("dock not placed")

// Area names one of the two top-level anchors.
type Area int

const (
	Upper Area = iota
	Lower
)

func (a Area) String() string {
	switch a {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	default:
		return "unknown"
	}
}

// Orientation is the axis a split divides along. Horizontal places the
// children side by side.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// defaultRatio is the share of a split given to its first child.
const defaultRatio = 0.5

// Node is either a split (two Children) or a tab group (Tabs).
type Node struct {
	Orientation Orientation `json:"orientation,omitempty"`
	Ratio       float64     `json:"ratio,omitempty"`
	Children    []*Node     `json:"children,omitempty"`
	Tabs        []dock.ID   `json:"tabs,omitempty"`
	Current     int         `json:"current,omitempty"`

	// FixedWidth pins a tab group to a width in cells until the pin is
	// released. Zero means unpinned.
	FixedWidth int `json:"-"`

	// size from the last Arrange pass
	lastW, lastH int
}

// IsSplit reports whether n is a split node.
func (n *Node) IsSplit() bool {
	return len(n.Children) == 2
}

// CurrentTab returns the raised dock of a tab group.
func (n *Node) CurrentTab() dock.ID {
	if n.IsSplit() || len(n.Tabs) == 0 {
		return ""
	}
	if n.Current < 0 || n.Current >= len(n.Tabs) {
		return n.Tabs[0]
	}
	return n.Tabs[n.Current]
}

func newGroup(ids ...dock.ID) *Node {
	return &Node{Tabs: ids}
}

// Tree is the whole dock arrangement.
type Tree struct {
	roots [2]*Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Root returns the anchor node for a, or nil if the region is empty.
func (t *Tree) Root(a Area) *Node {
	return t.roots[a]
}

// Clear removes everything.
func (t *Tree) Clear() {
	t.roots = [2]*Node{}
}

// AddDock anchors id in area a. An empty region gets a single tab group;
// otherwise the region is split horizontally with id on the right.
func (t *Tree) AddDock(a Area, id dock.ID) {
	t.Remove(id)
	g := newGroup(id)
	if t.roots[a] == nil {
		t.roots[a] = g
		return
	}
	t.roots[a] = &Node{
		Orientation: Horizontal,
		Ratio:       defaultRatio,
		Children:    []*Node{t.roots[a], g},
	}
}

// SplitDock divides the pane holding first and puts second after it along o.
func (t *Tree) SplitDock(first, second dock.ID, o Orientation) error {
	if first == second {
		return fmt.Errorf("split %q with itself", first)
	}
	if t.group(first) == nil {
		return fmt.Errorf("split %q: %w", first, ErrNotPlaced)
	}
	t.Remove(second)
	g := t.group(first)
	left := &Node{Tabs: g.Tabs, Current: g.Current, FixedWidth: g.FixedWidth}
	*g = Node{
		Orientation: o,
		Ratio:       defaultRatio,
		Children:    []*Node{left, newGroup(second)},
	}
	return nil
}

// Tabify moves second into the tab group holding first, as the last tab.
func (t *Tree) Tabify(first, second dock.ID) error {
	g := t.group(first)
	if g == nil {
		return fmt.Errorf("tabify onto %q: %w", first, ErrNotPlaced)
	}
	if slices.Contains(g.Tabs, second) {
		return nil
	}
	t.Remove(second)
	g = t.group(first)
	g.Tabs = append(g.Tabs, second)
	return nil
}

// Remove takes id out of the tree. Emptied tab groups disappear and their
// parent split collapses into the remaining sibling. Removing a dock that has
// no position is a no-op and returns false.
func (t *Tree) Remove(id dock.ID) bool {
	for a, root := range t.roots {
		if root == nil {
			continue
		}
		g := findGroup(root, id)
		if g == nil {
			continue
		}
		i := slices.Index(g.Tabs, id)
		g.Tabs = slices.Delete(g.Tabs, i, i+1)
		if g.Current >= len(g.Tabs) || (i < g.Current) {
			g.Current = max(0, g.Current-1)
		}
		if len(g.Tabs) > 0 {
			return true
		}
		parent := findParent(root, g)
		if parent == nil {
			t.roots[a] = nil
			return true
		}
		sibling := parent.Children[0]
		if sibling == g {
			sibling = parent.Children[1]
		}
		*parent = *sibling
		return true
	}
	return false
}

// Raise makes id the current tab of its group.
func (t *Tree) Raise(id dock.ID) error {
	g := t.group(id)
	if g == nil {
		return fmt.Errorf("raise %q: %w", id, ErrNotPlaced)
	}
	g.Current = slices.Index(g.Tabs, id)
	return nil
}

// Contains reports whether id has a position.
func (t *Tree) Contains(id dock.ID) bool {
	return t.group(id) != nil
}

// Group returns the tab group holding id, or nil.
func (t *Tree) Group(id dock.ID) *Node {
	return t.group(id)
}

// AreaOf returns the region id lives in.
func (t *Tree) AreaOf(id dock.ID) (Area, bool) {
	for a, root := range t.roots {
		if root != nil && findGroup(root, id) != nil {
			return Area(a), true
		}
	}
	return Upper, false
}

// IDs returns every placed dock, upper region first, in depth-first order.
func (t *Tree) IDs() []dock.ID {
	var out []dock.ID
	for _, g := range t.Groups() {
		out = append(out, g.Tabs...)
	}
	return out
}

// Groups returns every tab group, upper region first, in depth-first order.
func (t *Tree) Groups() []*Node {
	var out []*Node
	for _, root := range t.roots {
		walk(root, func(n *Node) {
			if !n.IsSplit() {
				out = append(out, n)
			}
		})
	}
	return out
}

// Validate checks the structural invariants: splits have two children, tab
// groups are not empty, and no dock appears twice.
func (t *Tree) Validate() error {
	seen := make(map[dock.ID]bool)
	var err error
	for _, root := range t.roots {
		walk(root, func(n *Node) {
			if err != nil {
				return
			}
			switch {
			case len(n.Children) != 0 && len(n.Children) != 2:
				err = fmt.Errorf("split with %d children", len(n.Children))
			case !n.IsSplit() && len(n.Tabs) == 0:
				err = errors.New("empty tab group")
			}
			for _, id := range n.Tabs {
				if seen[id] {
					err = fmt.Errorf("dock %q placed twice", id)
					return
				}
				seen[id] = true
			}
		})
	}
	return err
}

func (t *Tree) group(id dock.ID) *Node {
	for _, root := range t.roots {
		if root == nil {
			continue
		}
		if g := findGroup(root, id); g != nil {
			return g
		}
	}
	return nil
}

func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

func findGroup(n *Node, id dock.ID) *Node {
	var found *Node
	walk(n, func(c *Node) {
		if found == nil && !c.IsSplit() && slices.Contains(c.Tabs, id) {
			found = c
		}
	})
	return found
}

func findParent(root, target *Node) *Node {
	var found *Node
	walk(root, func(c *Node) {
		if found == nil && slices.Contains(c.Children, target) {
			found = c
		}
	})
	return found
}
