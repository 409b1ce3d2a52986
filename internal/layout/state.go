package layout

import (
	"encoding/json"
	"fmt"
	"slices"

	"dockshell/internal/dock"
	"dockshell/internal/jsonutil"
)

// StateVersion is written into every state blob. Blobs with another version
// are rejected.
const StateVersion = 1

// State is the persisted form of the layout: the tree plus which docks are
// showing.
type State struct {
	Version int       `json:"version"`
	Upper   *Node     `json:"upper,omitempty"`
	Lower   *Node     `json:"lower,omitempty"`
	Visible []dock.ID `json:"visible,omitempty"`
}

// EncodeState serializes t and the visible set.
func EncodeState(t *Tree, visible []dock.ID) ([]byte, error) {
	st := State{
		Version: StateVersion,
		Upper:   t.roots[Upper],
		Lower:   t.roots[Lower],
		Visible: visible,
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode layout state: %w", err)
	}
	return b, nil
}

// DecodeState parses a blob produced by EncodeState.
func DecodeState(blob []byte) (State, error) {
	var st State
	if len(blob) == 0 {
		return st, fmt.Errorf("decode layout state: empty blob")
	}
	if err := jsonutil.UnmarshalWithContext(blob, &st, "decode layout state"); err != nil {
		return st, err
	}
	if st.Version != StateVersion {
		return st, fmt.Errorf("decode layout state: unsupported version %d", st.Version)
	}
	return st, nil
}

// Tree rebuilds a tree keeping only docks for which known returns true. A dock
// that appears more than once keeps its first position. Dropped identities
// are returned.
func (st State) Tree(known func(dock.ID) bool) (*Tree, []dock.ID) {
	t := NewTree()
	seen := make(map[dock.ID]bool)
	var dropped []dock.ID
	keep := func(id dock.ID) bool {
		if !known(id) || seen[id] {
			dropped = append(dropped, id)
			return false
		}
		seen[id] = true
		return true
	}
	t.roots[Upper] = prune(st.Upper, keep)
	t.roots[Lower] = prune(st.Lower, keep)
	return t, dropped
}

// prune copies n without rejected docks, collapsing empty groups and splits
// left with one child.
func prune(n *Node, keep func(dock.ID) bool) *Node {
	if n == nil {
		return nil
	}
	if len(n.Children) > 0 {
		if len(n.Children) != 2 {
			return nil
		}
		a := prune(n.Children[0], keep)
		b := prune(n.Children[1], keep)
		switch {
		case a == nil:
			return b
		case b == nil:
			return a
		}
		return &Node{Orientation: n.Orientation, Ratio: n.Ratio, Children: []*Node{a, b}}
	}
	cur := n.CurrentTab()
	var tabs []dock.ID
	for _, id := range n.Tabs {
		if keep(id) {
			tabs = append(tabs, id)
		}
	}
	if len(tabs) == 0 {
		return nil
	}
	return &Node{Tabs: tabs, Current: max(0, slices.Index(tabs, cur))}
}
