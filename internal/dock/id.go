package dock

// ID is the stable name of a dock. It is what the layout tree and the
// persisted state blob refer to.
type ID string

const (
	Functions   ID = "functions"
	Dashboard   ID = "dashboard"
	Sidebar     ID = "sidebar"
	Console     ID = "console"
	Sections    ID = "sections"
	Comments    ID = "comments"
	Disassembly ID = "disassembly"
	Graph       ID = "graph"
	Hexdump     ID = "hexdump"
	Pseudocode  ID = "pseudocode"
	Entrypoints ID = "entrypoints"
	Flags       ID = "flags"
	Strings     ID = "strings"
	Relocs      ID = "relocs"
	Imports     ID = "imports"
	Exports     ID = "exports"
	Types       ID = "types"
	Search      ID = "search"
	Symbols     ID = "symbols"
	Classes     ID = "classes"
	Resources   ID = "resources"
	VTables     ID = "vtables"
	Jupyter     ID = "jupyter"
	SDB         ID = "sdb"
)

// Kind describes one panel kind the shell knows how to build.
type Kind struct {
	ID    ID
	Title string
	Key   string // last key of the "SPC v <key>" toggle binding
}

// Kinds lists every panel kind in creation order. The application registers
// one dock per entry at startup.
var Kinds = []Kind{
	{Disassembly, "Disassembly", "d"},
	{Sidebar, "Sidebar", "b"},
	{Hexdump, "Hexdump", "x"},
	{Pseudocode, "Pseudocode", "p"},
	{Console, "Console", "c"},
	{Graph, "Graph", "g"},
	{Sections, "Sections", "S"},
	{Entrypoints, "Entry Points", "e"},
	{Functions, "Functions", "f"},
	{Imports, "Imports", "i"},
	{Exports, "Exports", "E"},
	{Types, "Types", "t"},
	{Search, "Search", "/"},
	{Symbols, "Symbols", "y"},
	{Relocs, "Relocs", "r"},
	{Comments, "Comments", "C"},
	{Strings, "Strings", "s"},
	{Flags, "Flags", "F"},
	{Jupyter, "Jupyter", "j"},
	{Dashboard, "Dashboard", "D"},
	{SDB, "SDB Browser", "B"},
	{Classes, "Classes", "k"},
	{Resources, "Resources", "R"},
	{VTables, "VTables", "v"},
}
