// Package pty runs interactive programs (the Jupyter dock's Python REPL)
// behind a pseudo-terminal.
package pty

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner spawns and resizes a PTY. Tests swap in a pipe-backed runner.
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, err
	}
	if ctx != nil {
		go func() {
			<-ctx.Done()
			_ = f.Close()
		}()
	}
	return f, nil
}

// Resize is a no-op unless rwc is the *os.File returned by Start.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// ErrNoInterpreter is returned when no Python is on PATH.
var ErrNoInterpreter = errors.New("no python interpreter found")

// PythonCommand returns an interactive, unbuffered Python REPL command.
func PythonCommand() (*exec.Cmd, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return exec.Command(path, "-i", "-u"), nil
		}
	}
	return nil, ErrNoInterpreter
}

// Session is a running program on a PTY. Output arrives on Output until the
// program exits, then the channel is closed.
type Session struct {
	runner Runner
	rwc    io.ReadWriteCloser
	out    chan []byte

	closeOnce sync.Once
}

// Start launches cmd and begins reading its output.
func Start(ctx context.Context, runner Runner, cmd *exec.Cmd, size Size) (*Session, error) {
	rwc, err := runner.Start(ctx, cmd, size)
	if err != nil {
		return nil, err
	}
	s := &Session{runner: runner, rwc: rwc, out: make(chan []byte, 64)}
	go s.read()
	return s, nil
}

func (s *Session) read() {
	defer close(s.out)
	buf := make([]byte, 4096)
	for {
		n, err := s.rwc.Read(buf)
		if n > 0 {
			s.out <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			return
		}
	}
}

// Output yields chunks as the program writes them.
func (s *Session) Output() <-chan []byte {
	return s.out
}

func (s *Session) Write(p []byte) (int, error) {
	return s.rwc.Write(p)
}

func (s *Session) Resize(size Size) error {
	return s.runner.Resize(s.rwc, size)
}

// Close terminates the PTY. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() { err = s.rwc.Close() })
	return err
}
