package layout

import (
	"math"

	"dockshell/internal/dock"
)

// Rect is a cell rectangle on screen.
type Rect struct {
	X, Y, W, H int
}

// Placement is one tab group and where it goes.
type Placement struct {
	Group *Node
	Rect  Rect
	// Tabs lists the visible docks of the group, in tab order.
	Tabs []dock.ID
}

// upperShare is the fraction of the height the upper region takes when both
// regions have something visible.
const upperShare = 2.0 / 3.0

// Arrange computes screen rectangles for every tab group with at least one
// visible dock. Subtrees with nothing visible take no space. Pinned groups get
// their fixed width; everything else follows the split ratios.
func Arrange(t *Tree, width, height int, visible func(dock.ID) bool) []Placement {
	upper, lower := t.roots[Upper], t.roots[Lower]
	hasUpper := anyVisible(upper, visible)
	hasLower := anyVisible(lower, visible)

	var out []Placement
	switch {
	case hasUpper && hasLower:
		uh := int(math.Round(float64(height) * upperShare))
		uh = clamp(uh, 1, height-1)
		out = arrangeNode(upper, Rect{0, 0, width, uh}, visible, out)
		out = arrangeNode(lower, Rect{0, uh, width, height - uh}, visible, out)
	case hasUpper:
		out = arrangeNode(upper, Rect{0, 0, width, height}, visible, out)
	case hasLower:
		out = arrangeNode(lower, Rect{0, 0, width, height}, visible, out)
	}
	return out
}

func arrangeNode(n *Node, r Rect, visible func(dock.ID) bool, out []Placement) []Placement {
	n.lastW, n.lastH = r.W, r.H
	if !n.IsSplit() {
		var tabs []dock.ID
		for _, id := range n.Tabs {
			if visible(id) {
				tabs = append(tabs, id)
			}
		}
		return append(out, Placement{Group: n, Rect: r, Tabs: tabs})
	}

	a, b := n.Children[0], n.Children[1]
	showA, showB := anyVisible(a, visible), anyVisible(b, visible)
	switch {
	case showA && !showB:
		return arrangeNode(a, r, visible, out)
	case showB && !showA:
		return arrangeNode(b, r, visible, out)
	case !showA && !showB:
		return out
	}

	total := r.W
	if n.Orientation == Vertical {
		total = r.H
	}
	first := int(math.Round(float64(total) * ratio(n)))
	if n.Orientation == Horizontal {
		if fw := a.FixedWidth; fw > 0 && !a.IsSplit() {
			first = fw
		} else if fw := b.FixedWidth; fw > 0 && !b.IsSplit() {
			first = total - fw
		}
	}
	if total >= 2 {
		first = clamp(first, 1, total-1)
	}

	var ra, rb Rect
	if n.Orientation == Horizontal {
		ra = Rect{r.X, r.Y, first, r.H}
		rb = Rect{r.X + first, r.Y, r.W - first, r.H}
	} else {
		ra = Rect{r.X, r.Y, r.W, first}
		rb = Rect{r.X, r.Y + first, r.W, r.H - first}
	}
	out = arrangeNode(a, ra, visible, out)
	return arrangeNode(b, rb, visible, out)
}

func anyVisible(n *Node, visible func(dock.ID) bool) bool {
	found := false
	walk(n, func(c *Node) {
		for _, id := range c.Tabs {
			if visible(id) {
				found = true
			}
		}
	})
	return found
}

func ratio(n *Node) float64 {
	if n.Ratio <= 0 || n.Ratio >= 1 {
		return defaultRatio
	}
	return n.Ratio
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ReleaseConstraints drops every width pin. Splits next to a pinned group keep
// the proportion the pin produced in the last Arrange pass, so the initial
// layout stays put while the user is free to resize afterwards.
func (t *Tree) ReleaseConstraints() {
	for _, root := range t.roots {
		walk(root, func(n *Node) {
			if !n.IsSplit() || n.Orientation != Horizontal || n.lastW <= 0 {
				return
			}
			a, b := n.Children[0], n.Children[1]
			if a.FixedWidth > 0 && !a.IsSplit() {
				n.Ratio = float64(a.FixedWidth) / float64(n.lastW)
			} else if b.FixedWidth > 0 && !b.IsSplit() {
				n.Ratio = 1 - float64(b.FixedWidth)/float64(n.lastW)
			}
		})
		walk(root, func(n *Node) { n.FixedWidth = 0 })
	}
}

// HasConstraints reports whether any group is still pinned.
func (t *Tree) HasConstraints() bool {
	pinned := false
	for _, root := range t.roots {
		walk(root, func(n *Node) {
			if n.FixedWidth > 0 {
				pinned = true
			}
		})
	}
	return pinned
}

// Pin fixes the width of the group holding id.
func (t *Tree) Pin(id dock.ID, width int) error {
	g := t.group(id)
	if g == nil {
		return ErrNotPlaced
	}
	g.FixedWidth = width
	return nil
}

// Resize grows (positive delta) or shrinks the pane holding id by moving the
// nearest enclosing split boundary along o. The ratio stays within [0.1, 0.9].
func (t *Tree) Resize(id dock.ID, o Orientation, delta float64) error {
	g := t.group(id)
	if g == nil {
		return ErrNotPlaced
	}
	child := g
	for _, root := range t.roots {
		if root == nil || findGroup(root, id) == nil {
			continue
		}
		for {
			parent := findParent(root, child)
			if parent == nil {
				return nil
			}
			if parent.Orientation == o {
				r := ratio(parent)
				if parent.Children[0] == child {
					r += delta
				} else {
					r -= delta
				}
				parent.Ratio = math.Max(0.1, math.Min(0.9, r))
				return nil
			}
			child = parent
		}
	}
	return nil
}
