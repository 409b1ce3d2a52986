package shell

import (
	"strings"
	"sync"
)

// LineKind separates engine output from the shell's own messages.
type LineKind int

const (
	LineOutput LineKind = iota
	LineDebug
	LineError
)

// Line is one console entry.
type Line struct {
	Kind LineKind
	Text string
}

// DefaultConsoleLines bounds console history.
const DefaultConsoleLines = 2000

// Console is the scrollback shown by the console dock.
type Console struct {
	mu    sync.Mutex
	lines []Line
	max   int
	seq   uint64
}

func NewConsole(max int) *Console {
	if max <= 0 {
		max = DefaultConsoleLines
	}
	return &Console{max: max}
}

// Append adds text, one entry per line.
func (c *Console) Append(kind LineKind, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range strings.Split(text, "\n") {
		c.lines = append(c.lines, Line{Kind: kind, Text: l})
	}
	if over := len(c.lines) - c.max; over > 0 {
		c.lines = append(c.lines[:0:0], c.lines[over:]...)
	}
	c.seq++
}

func (c *Console) Output(text string) { c.Append(LineOutput, text) }
func (c *Console) Debug(text string)  { c.Append(LineDebug, text) }
func (c *Console) Error(text string)  { c.Append(LineError, text) }

// Lines returns a copy of the scrollback.
func (c *Console) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Seq increases on every append so views can tell when to re-render.
func (c *Console) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Clear empties the scrollback.
func (c *Console) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.seq++
	c.mu.Unlock()
}
