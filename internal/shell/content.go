package shell

import (
	"dockshell/internal/dock"
	"dockshell/internal/engine"
)

// Panel sizes used by the content commands.
const (
	DisassemblyLines = 64
	SidebarLines     = 16
	HexdumpBytes     = 512
)

var contentCommands = map[dock.ID]engine.Command{
	dock.Functions:   engine.Listing(engine.KindFunctions),
	dock.Dashboard:   engine.Listing(engine.KindInfo),
	dock.Sidebar:     engine.Disassemble(SidebarLines),
	dock.Sections:    engine.Listing(engine.KindSections),
	dock.Comments:    engine.Listing(engine.KindComments),
	dock.Disassembly: engine.Disassemble(DisassemblyLines),
	dock.Graph:       engine.Listing(engine.KindGraph),
	dock.Hexdump:     engine.Hexdump(HexdumpBytes),
	dock.Pseudocode:  engine.Listing(engine.KindDecompile),
	dock.Entrypoints: engine.Listing(engine.KindEntrypoints),
	dock.Flags:       engine.Listing(engine.KindFlags),
	dock.Strings:     engine.Listing(engine.KindStrings),
	dock.Relocs:      engine.Listing(engine.KindRelocs),
	dock.Imports:     engine.Listing(engine.KindImports),
	dock.Exports:     engine.Listing(engine.KindExports),
	dock.Types:       engine.Listing(engine.KindTypes),
	dock.Symbols:     engine.Listing(engine.KindSymbols),
	dock.Classes:     engine.Listing(engine.KindClasses),
	dock.Resources:   engine.Listing(engine.KindResources),
	dock.VTables:     engine.Listing(engine.KindVTables),
	dock.SDB:         engine.SDB(""),
}

// ContentCommand returns the engine command that fills a dock. Console,
// search and jupyter have none: their content comes from user input.
func ContentCommand(id dock.ID) (engine.Command, bool) {
	c, ok := contentCommands[id]
	return c, ok
}
