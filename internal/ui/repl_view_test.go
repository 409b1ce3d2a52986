package ui

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/pty"
)

// pipeRunner stands in for a PTY: whatever is written comes back as output.
type pipeRunner struct {
	started int
}

type echoPTY struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (e *echoPTY) Read(p []byte) (int, error)  { return e.r.Read(p) }
func (e *echoPTY) Write(p []byte) (int, error) { return e.w.Write(p) }
func (e *echoPTY) Close() error {
	_ = e.w.Close()
	return e.r.Close()
}

func (p *pipeRunner) Start(ctx context.Context, cmd *exec.Cmd, size pty.Size) (io.ReadWriteCloser, error) {
	p.started++
	r, w := io.Pipe()
	return &echoPTY{r: r, w: w}, nil
}

func (p *pipeRunner) Resize(rwc io.ReadWriteCloser, size pty.Size) error {
	return nil
}

func TestReplView_EchoesThroughPTY(t *testing.T) {
	if _, err := pty.PythonCommand(); err != nil {
		t.Skip("no python interpreter")
	}
	runner := &pipeRunner{}
	r := NewReplView(context.Background(), runner)
	wait := r.Init()
	if runner.started != 1 || wait == nil {
		t.Fatalf("REPL not started (started=%d)", runner.started)
	}

	r.Update(keyMsg("x"))
	msg := wait()
	out, ok := msg.(replOutputMsg)
	if !ok {
		t.Fatalf("got %T", msg)
	}
	_, wait = r.Update(out)
	if !strings.Contains(r.View(), "x") {
		t.Errorf("output missing from view: %q", r.View())
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	closed, ok := wait().(replOutputMsg)
	if !ok || !closed.closed {
		t.Fatalf("expected the output channel to close, got %#v", closed)
	}
	r.Update(closed)
	if !strings.Contains(r.View(), "python exited") {
		t.Error("view should say the REPL exited")
	}
}

func TestReplView_EscDismisses(t *testing.T) {
	r := NewReplView(context.Background(), &pipeRunner{})
	_, cmd := r.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should dismiss")
	}
	if _, ok := cmd().(DismissModalMsg); !ok {
		t.Error("esc should send DismissModalMsg")
	}
}

func TestKeyToPTYBytes(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, "\r"},
		{tea.KeyMsg{Type: tea.KeyUp}, "\x1b[A"},
		{tea.KeyMsg{Type: tea.KeyCtrlD}, "\x04"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pi")}, "pi"},
	}
	for _, tt := range tests {
		if got := string(keyToPTYBytes(tt.msg)); got != tt.want {
			t.Errorf("keyToPTYBytes(%v) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}
