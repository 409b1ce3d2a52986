// Package engine is the typed boundary to the radare2 process. Callers build
// Commands; only this package knows the text each one becomes.
package engine

import (
	"fmt"
	"strconv"
)

// Kind enumerates the engine commands the shell issues.
type Kind int

const (
	// KindRaw is text typed by the user into the console dock.
	KindRaw Kind = iota
	KindSeek
	KindSeekPrev
	KindSeekNext
	KindInfo
	KindFunctions
	KindStrings
	KindImports
	KindExports
	KindSections
	KindSymbols
	KindRelocs
	KindEntrypoints
	KindFlags
	KindComments
	KindTypes
	KindClasses
	KindResources
	KindVTables
	KindSearch
	KindSDB
	KindDisassemble
	KindHexdump
	KindDecompile
	KindGraph
	KindProjectInfo
	KindProjectOpen
	KindProjectSave
	KindConfigGet
	KindConfigSet
	KindConfigReset
	KindColorDefault
	KindColorTheme
	KindColors
	KindRunScript
	KindFlagSpace
	KindFortune
	KindLoadPDB
	KindAnalyze
)

var kindNames = map[Kind]string{
	KindRaw:          "raw",
	KindSeek:         "seek",
	KindSeekPrev:     "seek-prev",
	KindSeekNext:     "seek-next",
	KindInfo:         "info",
	KindFunctions:    "functions",
	KindStrings:      "strings",
	KindImports:      "imports",
	KindExports:      "exports",
	KindSections:     "sections",
	KindSymbols:      "symbols",
	KindRelocs:       "relocs",
	KindEntrypoints:  "entrypoints",
	KindFlags:        "flags",
	KindComments:     "comments",
	KindTypes:        "types",
	KindClasses:      "classes",
	KindResources:    "resources",
	KindVTables:      "vtables",
	KindSearch:       "search",
	KindSDB:          "sdb",
	KindDisassemble:  "disassemble",
	KindHexdump:      "hexdump",
	KindDecompile:    "decompile",
	KindGraph:        "graph",
	KindProjectInfo:  "project-info",
	KindProjectOpen:  "project-open",
	KindProjectSave:  "project-save",
	KindConfigGet:    "config-get",
	KindConfigSet:    "config-set",
	KindConfigReset:  "config-reset",
	KindColorDefault: "color-default",
	KindColorTheme:   "color-theme",
	KindColors:       "colors",
	KindRunScript:    "run-script",
	KindFlagSpace:    "flag-space",
	KindFortune:      "fortune",
	KindLoadPDB:      "load-pdb",
	KindAnalyze:      "analyze",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Command is one request to the engine. Arg, Value and N are interpreted per
// Kind; unused fields are ignored.
type Command struct {
	Kind  Kind
	Arg   string
	Value string
	N     int
}

// Constructors for the commands with parameters.

func Raw(text string) Command             { return Command{Kind: KindRaw, Arg: text} }
func Seek(addr string) Command            { return Command{Kind: KindSeek, Arg: addr} }
func Search(text string) Command          { return Command{Kind: KindSearch, Arg: text} }
func SDB(path string) Command             { return Command{Kind: KindSDB, Arg: path} }
func Disassemble(lines int) Command       { return Command{Kind: KindDisassemble, N: lines} }
func Hexdump(bytes int) Command           { return Command{Kind: KindHexdump, N: bytes} }
func ProjectInfo(name string) Command     { return Command{Kind: KindProjectInfo, Arg: name} }
func ProjectOpen(name string) Command     { return Command{Kind: KindProjectOpen, Arg: name} }
func ProjectSave(name string) Command     { return Command{Kind: KindProjectSave, Arg: name} }
func ConfigGet(key string) Command        { return Command{Kind: KindConfigGet, Arg: key} }
func ConfigSet(key, value string) Command { return Command{Kind: KindConfigSet, Arg: key, Value: value} }
func ColorTheme(name string) Command      { return Command{Kind: KindColorTheme, Arg: name} }
func RunScript(path string) Command       { return Command{Kind: KindRunScript, Arg: path} }
func FlagSpace(name string) Command       { return Command{Kind: KindFlagSpace, Arg: name} }
func LoadPDB(path string) Command         { return Command{Kind: KindLoadPDB, Arg: path} }
func Analyze(level int) Command           { return Command{Kind: KindAnalyze, N: level} }
func Listing(k Kind) Command              { return Command{Kind: k} }

// String renders the exact text sent to radare2.
func (c Command) String() string {
	switch c.Kind {
	case KindRaw:
		return c.Arg
	case KindSeek:
		return "s " + c.Arg
	case KindSeekPrev:
		return "s-"
	case KindSeekNext:
		return "s+"
	case KindInfo:
		return "ij"
	case KindFunctions:
		return "aflj"
	case KindStrings:
		return "izj"
	case KindImports:
		return "iij"
	case KindExports:
		return "iEj"
	case KindSections:
		return "iSj"
	case KindSymbols:
		return "isj"
	case KindRelocs:
		return "irj"
	case KindEntrypoints:
		return "iej"
	case KindFlags:
		return "fj"
	case KindComments:
		return "CCj"
	case KindTypes:
		return "tj"
	case KindClasses:
		return "icj"
	case KindResources:
		return "iRj"
	case KindVTables:
		return "avj"
	case KindSearch:
		return "/j " + c.Arg
	case KindSDB:
		if c.Arg == "" {
			return "k *"
		}
		return "k " + c.Arg + "/*"
	case KindDisassemble:
		return fmt.Sprintf("pd %d", c.N)
	case KindHexdump:
		return fmt.Sprintf("px %d", c.N)
	case KindDecompile:
		return "pdc"
	case KindGraph:
		return "agf"
	case KindProjectInfo:
		return "Pi " + c.Arg
	case KindProjectOpen:
		return "Po " + c.Arg
	case KindProjectSave:
		return "Ps " + c.Arg
	case KindConfigGet:
		return "e " + c.Arg
	case KindConfigSet:
		return "e " + c.Arg + "=" + c.Value
	case KindConfigReset:
		return "e-"
	case KindColorDefault:
		return "ecd"
	case KindColorTheme:
		return "eco " + c.Arg
	case KindColors:
		return "ecj"
	case KindRunScript:
		return ". " + c.Arg
	case KindFlagSpace:
		return "fs " + c.Arg
	case KindFortune:
		return "fo"
	case KindLoadPDB:
		return "idp " + c.Arg
	case KindAnalyze:
		switch {
		case c.N <= 0:
			return "aa"
		case c.N == 1:
			return "aaa"
		default:
			return "aaaa"
		}
	}
	return ""
}

// JSON reports whether the engine answers this command with JSON.
func (c Command) JSON() bool {
	switch c.Kind {
	case KindInfo, KindFunctions, KindStrings, KindImports, KindExports,
		KindSections, KindSymbols, KindRelocs, KindEntrypoints, KindFlags,
		KindComments, KindTypes, KindClasses, KindResources, KindVTables,
		KindSearch, KindColors:
		return true
	}
	return false
}

// ReadOnly reports whether the command leaves engine state untouched, so its
// reply can be served from a cache until something mutates.
func (c Command) ReadOnly() bool {
	switch c.Kind {
	case KindRaw, KindSeek, KindSeekPrev, KindSeekNext, KindProjectOpen,
		KindProjectSave, KindConfigSet, KindConfigReset, KindColorDefault,
		KindColorTheme, KindRunScript, KindFlagSpace, KindLoadPDB, KindAnalyze,
		KindFortune:
		return false
	}
	return true
}
