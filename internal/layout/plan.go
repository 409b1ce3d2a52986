package layout

import "dockshell/internal/dock"

// Op is one docking operation in a layout plan.
type Op int

const (
	// OpAnchor puts First alone into Area.
	OpAnchor Op = iota
	// OpSplit divides First's pane and places Second after it.
	OpSplit
	// OpTabify adds Second as a tab to First's group.
	OpTabify
)

func (o Op) String() string {
	switch o {
	case OpAnchor:
		return "anchor"
	case OpSplit:
		return "split"
	case OpTabify:
		return "tabify"
	default:
		return "unknown"
	}
}

// Step is a single operation. Steps are not commutative: a plan must be
// applied in order to give the same arrangement every time.
type Step struct {
	Op          Op
	Area        Area
	First       dock.ID
	Second      dock.ID
	Orientation Orientation
}

// PinnedWidth is the width in cells the functions and sidebar panes get
// right after a reset.
const PinnedWidth = 30

// DefaultPlan builds the canonical layout: three panes across the top
// (functions, dashboard, sidebar), two across the bottom (console, sections),
// then everything else stacked as tabs behind the dashboard. Tabs go on only
// after all splits are done.
var DefaultPlan = []Step{
	{Op: OpAnchor, Area: Upper, First: dock.Functions},
	{Op: OpSplit, Area: Upper, First: dock.Functions, Second: dock.Dashboard, Orientation: Horizontal},
	{Op: OpSplit, Area: Upper, First: dock.Dashboard, Second: dock.Sidebar, Orientation: Horizontal},
	{Op: OpAnchor, Area: Lower, First: dock.Console},
	{Op: OpSplit, Area: Lower, First: dock.Console, Second: dock.Sections, Orientation: Horizontal},
	{Op: OpTabify, Area: Lower, First: dock.Sections, Second: dock.Comments},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Disassembly},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Graph},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Hexdump},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Pseudocode},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Entrypoints},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Flags},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Strings},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Relocs},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Imports},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Exports},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Types},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Search},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Symbols},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Classes},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Resources},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.VTables},
	{Op: OpTabify, Area: Upper, First: dock.Dashboard, Second: dock.Jupyter},
}

// DefaultDocks are shown after a reset. Placed docks outside this set stay
// hidden in their tab group until toggled on.
var DefaultDocks = []dock.ID{
	dock.Sections,
	dock.Entrypoints,
	dock.Functions,
	dock.Comments,
	dock.Strings,
	dock.Console,
	dock.Imports,
	dock.Symbols,
	dock.Graph,
	dock.Disassembly,
	dock.Sidebar,
	dock.Hexdump,
	dock.Pseudocode,
	dock.Dashboard,
	dock.Jupyter,
}

// DefaultRaised is brought to the front of its tab group after a reset.
const DefaultRaised = dock.Dashboard

// DefaultPinned are pinned to PinnedWidth for the first pass after a reset.
var DefaultPinned = []dock.ID{dock.Functions, dock.Sidebar}
