package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// PipeTransport talks to a radare2 process started with -q0: every reply,
// and the end of initial loading, is terminated by a NUL byte.
type PipeTransport struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	closed bool
}

var _ Transport = (*PipeTransport)(nil)

// StartPipe launches r2 on target and waits until it has finished loading.
// An empty target opens r2 on a null file.
func StartPipe(ctx context.Context, r2Path, target string, args ...string) (*PipeTransport, error) {
	if r2Path == "" {
		r2Path = "r2"
	}
	if target == "" {
		target = "--"
	}
	argv := append([]string{"-q0"}, args...)
	argv = append(argv, target)
	cmd := exec.CommandContext(ctx, r2Path, argv...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("r2 stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("r2 stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", r2Path, err)
	}
	p := &PipeTransport{cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdout)}
	if _, err := p.read(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("r2 did not finish loading %s: %w", target, err)
	}
	return p, nil
}

// Cmd sends one line and blocks until the NUL-terminated reply arrives. The
// context is checked before sending; a command already sent runs to
// completion.
func (p *PipeTransport) Cmd(ctx context.Context, text string) (string, error) {
	if strings.ContainsAny(text, "\n\x00") {
		return "", fmt.Errorf("command contains a line break or NUL: %q", text)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(p.stdin, text+"\n"); err != nil {
		return "", fmt.Errorf("write to r2: %w", err)
	}
	return p.read()
}

func (p *PipeTransport) read() (string, error) {
	out, err := p.stdout.ReadString(0)
	if err != nil {
		return out, fmt.Errorf("read from r2: %w", err)
	}
	return strings.TrimSuffix(out, "\x00"), nil
}

// Close asks r2 to quit and waits for it to exit.
func (p *PipeTransport) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	_, _ = io.WriteString(p.stdin, "q!\n")
	_ = p.stdin.Close()
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("r2 exit: %w", err)
	}
	return nil
}
