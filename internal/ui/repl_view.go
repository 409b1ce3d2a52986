package ui

import (
	"bytes"
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dockshell/internal/pty"
)

// replOutputMsg carries bytes read from the REPL's PTY.
type replOutputMsg struct {
	session *pty.Session
	data    []byte
	closed  bool
}

// ReplView is the Jupyter dock's interactive Python, shown as an overlay.
// Keys pass through to the interpreter; Esc dismisses and kills it.
type ReplView struct {
	ctx      context.Context
	runner   pty.Runner
	session  *pty.Session
	content  *bytes.Buffer
	viewport viewport.Model
	width    int
	height   int
	exited   bool
}

var _ View = (*ReplView)(nil)

const (
	defaultReplWidth  = 80
	defaultReplHeight = 20
)

func NewReplView(ctx context.Context, runner pty.Runner) *ReplView {
	vp := viewport.New(defaultReplWidth, defaultReplHeight)
	vp.Style = Styles.Box
	return &ReplView{
		ctx:      ctx,
		runner:   runner,
		content:  &bytes.Buffer{},
		viewport: vp,
		width:    defaultReplWidth,
		height:   defaultReplHeight,
	}
}

// Init spawns the interpreter and starts reading its output.
func (r *ReplView) Init() tea.Cmd {
	cmd, err := pty.PythonCommand()
	if err == nil {
		r.session, err = pty.Start(r.ctx, r.runner, cmd, r.size())
	}
	if err != nil {
		r.content.WriteString("Failed to start python: " + err.Error() + "\r\n")
		r.exited = true
		r.refresh()
		return nil
	}
	return r.waitForOutput()
}

func (r *ReplView) size() pty.Size {
	return pty.Size{Rows: uint16(r.viewport.Height), Cols: uint16(r.viewport.Width)}
}

func (r *ReplView) waitForOutput() tea.Cmd {
	s := r.session
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		data, ok := <-s.Output()
		return replOutputMsg{session: s, data: data, closed: !ok}
	}
}

func (r *ReplView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case replOutputMsg:
		if msg.session != r.session {
			return r, nil
		}
		if msg.closed {
			r.exited = true
			r.content.WriteString("\r\n[python exited]\r\n")
			r.refresh()
			return r, nil
		}
		r.content.Write(msg.data)
		r.refresh()
		return r, r.waitForOutput()
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return r, func() tea.Msg { return DismissModalMsg{} }
		}
		if r.session != nil && !r.exited {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				_, _ = r.session.Write(b)
			}
		}
		return r, nil
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		r.viewport.Width = max(msg.Width-8, 40)
		r.viewport.Height = max(msg.Height*2/3, 12)
		if r.session != nil {
			_ = r.session.Resize(r.size())
		}
		r.refresh()
		return r, nil
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

func (r *ReplView) View() string {
	header := Styles.Title.Render("Jupyter") + Styles.Muted.Render("  python REPL · Esc: close")
	return lipgloss.JoinVertical(lipgloss.Left, header, r.viewport.View())
}

func (r *ReplView) refresh() {
	r.viewport.SetContent(string(bytes.ReplaceAll(r.content.Bytes(), []byte("\r\n"), []byte("\n"))))
	r.viewport.GotoBottom()
}

// Close kills the interpreter.
func (r *ReplView) Close() error {
	if r.session == nil {
		return nil
	}
	return r.session.Close()
}

// keyToPTYBytes converts a key press to the bytes a terminal would send.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	default:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	}
}
