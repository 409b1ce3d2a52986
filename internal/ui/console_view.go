package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/shell"
)

// ConsoleView is the console dock: engine output above, a command line
// below. Typed commands go to the engine unchanged.
type ConsoleView struct {
	console  *shell.Console
	input    textinput.Model
	viewport viewport.Model
	seq      uint64
	history  []string
	histIdx  int
	width    int
	height   int
}

var _ Pane = (*ConsoleView)(nil)

func NewConsoleView(c *shell.Console) *ConsoleView {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "r2 command"
	return &ConsoleView{
		console:  c,
		input:    ti,
		viewport: viewport.New(0, 0),
		seq:      ^uint64(0),
	}
}

func (v *ConsoleView) Init() tea.Cmd {
	return nil
}

// Focus puts the cursor in the command line.
func (v *ConsoleView) Focus() tea.Cmd {
	return v.input.Focus()
}

func (v *ConsoleView) Blur() {
	v.input.Blur()
}

func (v *ConsoleView) Focused() bool {
	return v.input.Focused()
}

func (v *ConsoleView) SetSize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.viewport.Width = width
	v.viewport.Height = max(height-1, 0)
	v.input.Width = max(width-len(v.input.Prompt)-1, 1)
	v.seq = ^uint64(0)
	v.Sync()
}

// Sync re-reads the console when it changed.
func (v *ConsoleView) Sync() {
	seq := v.console.Seq()
	if seq == v.seq {
		return
	}
	v.seq = seq
	lines := v.console.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		text := strings.ReplaceAll(l.Text, "\t", "    ")
		switch l.Kind {
		case shell.LineError:
			out[i] = Styles.Error.Render(text)
		case shell.LineDebug:
			out[i] = Styles.Debug.Render(text)
		default:
			out[i] = text
		}
	}
	v.viewport.SetContent(strings.Join(out, "\n"))
	v.viewport.GotoBottom()
}

func (v *ConsoleView) Update(msg tea.Msg) (View, tea.Cmd) {
	// Unfocused, keys scroll the output.
	if !v.input.Focused() {
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if text == "" {
				return v, nil
			}
			v.history = append(v.history, text)
			v.histIdx = len(v.history)
			return v, func() tea.Msg {
				return DispatchMsg{Request: shell.Request{Action: shell.ActionCommand, Arg: text}}
			}
		case "up":
			if v.histIdx > 0 {
				v.histIdx--
				v.input.SetValue(v.history[v.histIdx])
				v.input.CursorEnd()
			}
			return v, nil
		case "down":
			if v.histIdx < len(v.history)-1 {
				v.histIdx++
				v.input.SetValue(v.history[v.histIdx])
			} else {
				v.histIdx = len(v.history)
				v.input.Reset()
			}
			return v, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *ConsoleView) View() string {
	return v.viewport.View() + "\n" + v.input.View()
}
