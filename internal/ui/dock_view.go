package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/dock"
	"dockshell/internal/shell"
	"dockshell/internal/ui/textutil"
)

// DockView shows an engine listing or text dump with a cursor. Enter on a
// row that carries an address seeks there.
type DockView struct {
	ID          dock.ID
	Title       string
	Placeholder string

	rows    []Row
	err     error
	loading bool
	cursor  int
	offset  int
	width   int
	height  int
}

var _ Pane = (*DockView)(nil)

func NewDockView(id dock.ID, title string) *DockView {
	return &DockView{ID: id, Title: title}
}

func (v *DockView) Init() tea.Cmd {
	return nil
}

func (v *DockView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.clampScroll()
}

// SetLoading marks the view as waiting for a reply; old rows stay on screen.
func (v *DockView) SetLoading() {
	v.loading = true
}

// SetRows replaces the content. The cursor stays put when it can.
func (v *DockView) SetRows(rows []Row, err error) {
	v.rows, v.err, v.loading = rows, err, false
	if v.cursor >= len(rows) {
		v.cursor = max(len(rows)-1, 0)
	}
	v.clampScroll()
}

// Rows returns the current content.
func (v *DockView) Rows() []Row {
	return v.rows
}

// Cursor returns the selected row index.
func (v *DockView) Cursor() int {
	return v.cursor
}

func (v *DockView) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	page := max(v.height-1, 1)
	switch km.String() {
	case "up", "k":
		v.cursor--
	case "down", "j":
		v.cursor++
	case "pgup", "ctrl+u":
		v.cursor -= page
	case "pgdown", "ctrl+d":
		v.cursor += page
	case "home":
		v.cursor = 0
	case "end", "G":
		v.cursor = len(v.rows) - 1
	case "enter":
		if v.cursor < len(v.rows) && v.rows[v.cursor].Addr != "" {
			addr := v.rows[v.cursor].Addr
			return v, func() tea.Msg {
				return DispatchMsg{Request: shell.Request{Action: shell.ActionSeek, Arg: addr}}
			}
		}
		return v, nil
	default:
		return v, nil
	}
	v.cursor = max(min(v.cursor, len(v.rows)-1), 0)
	v.clampScroll()
	return v, nil
}

func (v *DockView) clampScroll() {
	if v.height <= 0 {
		return
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+v.height {
		v.offset = v.cursor - v.height + 1
	}
	v.offset = max(min(v.offset, len(v.rows)-v.height), 0)
}

func (v *DockView) View() string {
	switch {
	case v.err != nil:
		return Styles.Error.Render(textutil.Truncate(v.err.Error(), v.width))
	case len(v.rows) == 0 && v.loading:
		return Styles.Empty.Render("loading…")
	case len(v.rows) == 0:
		text := v.Placeholder
		if text == "" {
			text = "(empty)"
		}
		return Styles.Empty.Render(textutil.Truncate(text, v.width))
	}

	end := min(v.offset+v.height, len(v.rows))
	lines := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		text := textutil.PadRightVisual(v.rows[i].Text, v.width)
		if i == v.cursor {
			text = Styles.Selected.Render(text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}
