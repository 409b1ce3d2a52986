package ui

import (
	"fmt"
	"sort"
	"strings"

	"dockshell/internal/dock"
	"dockshell/internal/engine"
	"dockshell/internal/jsonutil"
	"dockshell/internal/ui/textutil"
)

// Row is one line of a dock body. Addr, when set, is where enter seeks to.
type Row struct {
	Text string
	Addr string
}

// column picks a JSON field and how wide to print it. Width 0 takes the
// rest of the line.
type column struct {
	key   string
	width int
	addr  bool
}

var listingColumns = map[dock.ID][]column{
	dock.Functions:   {{"offset", 12, true}, {"size", 7, false}, {"name", 0, false}},
	dock.Strings:     {{"vaddr", 12, true}, {"string", 0, false}},
	dock.Imports:     {{"plt", 12, true}, {"type", 7, false}, {"name", 0, false}},
	dock.Exports:     {{"vaddr", 12, true}, {"type", 7, false}, {"name", 0, false}},
	dock.Symbols:     {{"vaddr", 12, true}, {"type", 7, false}, {"name", 0, false}},
	dock.Sections:    {{"vaddr", 12, true}, {"vsize", 9, false}, {"perm", 5, false}, {"name", 0, false}},
	dock.Entrypoints: {{"vaddr", 12, true}, {"type", 0, false}},
	dock.Flags:       {{"offset", 12, true}, {"size", 5, false}, {"name", 0, false}},
	dock.Relocs:      {{"vaddr", 12, true}, {"type", 7, false}, {"name", 0, false}},
	dock.Comments:    {{"offset", 12, true}, {"name", 0, false}},
	dock.Classes:     {{"addr", 12, true}, {"classname", 0, false}},
	dock.Resources:   {{"vaddr", 12, true}, {"type", 8, false}, {"name", 0, false}},
	dock.VTables:     {{"offset", 12, true}},
	dock.Search:      {{"offset", 12, true}, {"type", 7, false}, {"data", 0, false}},
}

// addrKeys name JSON fields holding addresses; they print in hex.
var addrKeys = map[string]bool{
	"offset": true, "vaddr": true, "paddr": true, "plt": true, "addr": true,
}

// FormatResult turns an engine reply into rows for dock id.
func FormatResult(id dock.ID, res engine.Result) []Row {
	if cols, ok := listingColumns[id]; ok {
		return formatListing(res, cols)
	}
	if id == dock.Dashboard {
		return formatInfo(res)
	}
	var rows []Row
	for _, l := range res.Lines() {
		rows = append(rows, Row{Text: l})
	}
	return rows
}

func formatListing(res engine.Result, cols []column) []Row {
	items, err := jsonutil.UnmarshalArrayAllowEmpty[map[string]any]([]byte(res.Text), res.Command.String())
	if err != nil {
		// some listings (iSj on newer engines) wrap the array in an object
		var wrapped map[string]any
		if res.Decode(&wrapped) != nil {
			return []Row{{Text: "unreadable reply: " + err.Error()}}
		}
		items = firstArray(wrapped)
	}
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		var b strings.Builder
		var addr string
		for i, c := range cols {
			v := field(it, c.key)
			if c.addr {
				addr = v
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			if c.width > 0 {
				b.WriteString(textutil.PadRightVisual(v, c.width))
			} else {
				b.WriteString(v)
			}
		}
		rows = append(rows, Row{Text: strings.TrimRight(b.String(), " "), Addr: addr})
	}
	return rows
}

func firstArray(m map[string]any) []map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		arr, ok := m[k].([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(arr))
		for _, e := range arr {
			if em, ok := e.(map[string]any); ok {
				out = append(out, em)
			}
		}
		return out
	}
	return nil
}

// formatInfo flattens the ij object into "section.key  value" lines.
func formatInfo(res engine.Result) []Row {
	var info map[string]any
	if strings.TrimSpace(res.Text) == "" {
		return nil
	}
	if err := res.Decode(&info); err != nil {
		return []Row{{Text: err.Error()}}
	}
	var keys []string
	flat := make(map[string]string)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			name := k
			if prefix != "" {
				name = prefix + "." + k
			}
			if sub, ok := v.(map[string]any); ok {
				walk(name, sub)
				continue
			}
			keys = append(keys, name)
			flat[name] = field(m, k)
		}
	}
	walk("", info)
	sort.Strings(keys)
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Row{Text: textutil.PadRightVisual(k, 18) + " " + flat[k]})
	}
	return rows
}

// field renders m[key] for display. Addresses print as hex.
func field(m map[string]any, key string) string {
	if f, ok := m[key].(float64); ok && addrKeys[key] {
		return fmt.Sprintf("0x%08x", uint64(f))
	}
	if s := jsonutil.GetString(m, key); s != "" {
		return s
	}
	return jsonutil.ToString(m[key])
}
