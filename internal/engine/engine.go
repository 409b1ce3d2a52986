package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"dockshell/internal/jsonutil"
)

// ErrClosed is returned by a transport after Close.
var ErrClosed = errors.New("engine closed")

// Engine is everything the shell needs from the analysis engine.
type Engine interface {
	Execute(ctx context.Context, cmd Command) (Result, error)
	OpenProject(ctx context.Context, name string) error
	SaveProject(ctx context.Context, name string) error
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
	// OnProjectSaved registers fn to run after every successful SaveProject.
	OnProjectSaved(fn func(name string))
	Close() error
}

// Result is the engine's reply to one command.
type Result struct {
	Command Command
	Text    string
}

// Lines splits the reply into lines, dropping a trailing blank one.
func (r Result) Lines() []string {
	text := strings.TrimRight(r.Text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Decode unmarshals a JSON reply into v.
func (r Result) Decode(v any) error {
	return jsonutil.UnmarshalWithContext([]byte(r.Text), v, r.Command.String())
}

// CommandError reports a command the engine rejected or answered with
// something unusable.
type CommandError struct {
	Command Command
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("engine command %q failed", e.Command.String())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + firstLine(out)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Transport carries command text to the engine and returns the raw reply.
// Implementations must serialize calls.
type Transport interface {
	Cmd(ctx context.Context, text string) (string, error)
	Close() error
}

// Client implements Engine over a Transport.
type Client struct {
	tr Transport

	mu    sync.Mutex
	saved []func(string)
}

var _ Engine = (*Client)(nil)

// NewClient returns a Client that sends commands over tr.
func NewClient(tr Transport) *Client {
	return &Client{tr: tr}
}

// Execute sends cmd and returns the reply. A JSON command whose reply does
// not parse is reported as a CommandError.
func (c *Client) Execute(ctx context.Context, cmd Command) (Result, error) {
	text := cmd.String()
	if text == "" {
		return Result{Command: cmd}, &CommandError{Command: cmd, Err: errors.New("empty command")}
	}
	out, err := c.tr.Cmd(ctx, text)
	if err != nil {
		return Result{Command: cmd}, &CommandError{Command: cmd, Output: out, Err: err}
	}
	if cmd.JSON() {
		trimmed := strings.TrimSpace(out)
		if trimmed != "" && !jsonutil.Valid([]byte(trimmed)) {
			return Result{Command: cmd, Text: out}, &CommandError{Command: cmd, Output: out, Err: errors.New("reply is not JSON")}
		}
	}
	return Result{Command: cmd, Text: out}, nil
}

// OpenProject loads a saved project by name.
func (c *Client) OpenProject(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("open project: empty name")
	}
	_, err := c.Execute(ctx, ProjectOpen(name))
	return err
}

// SaveProject saves the session under name and notifies OnProjectSaved
// listeners.
func (c *Client) SaveProject(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("save project: empty name")
	}
	if _, err := c.Execute(ctx, ProjectSave(name)); err != nil {
		return err
	}
	c.mu.Lock()
	fns := slices.Clone(c.saved)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(name)
	}
	return nil
}

func (c *Client) GetConfig(ctx context.Context, key string) (string, error) {
	res, err := c.Execute(ctx, ConfigGet(key))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Text), nil
}

func (c *Client) SetConfig(ctx context.Context, key, value string) error {
	_, err := c.Execute(ctx, ConfigSet(key, value))
	return err
}

func (c *Client) OnProjectSaved(fn func(name string)) {
	c.mu.Lock()
	c.saved = append(c.saved, fn)
	c.mu.Unlock()
}

func (c *Client) Close() error {
	return c.tr.Close()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
