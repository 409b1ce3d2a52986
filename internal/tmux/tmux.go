// Package tmux floats docks into tmux panes via exec. Floating only works
// inside tmux (TMUX env set); commands target the current session.
package tmux

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNotInTmux is returned by NewPanes outside a tmux client.
var ErrNotInTmux = errors.New("not running inside tmux")

// InTmux reports whether the process runs inside tmux.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}

func run(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(errOut.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// SplitCommand runs argv in a new pane to the right of the current one
// without moving focus. Returns the new pane ID (e.g. %4).
func SplitCommand(argv []string) (paneID string, err error) {
	if len(argv) == 0 {
		return "", errors.New("tmux split-window: empty command")
	}
	args := append([]string{"split-window", "-h", "-d", "-P", "-F", "#{pane_id}", "--"}, argv...)
	return run(args...)
}

// SetPaneTitle sets the title tmux shows in pane borders.
func SetPaneTitle(paneID, title string) error {
	_, err := run("select-pane", "-t", paneID, "-T", title)
	return err
}

// KillPane kills the pane with the given ID.
func KillPane(paneID string) error {
	_, err := run("kill-pane", "-t", paneID)
	return err
}

// ListPaneIDs returns all live pane IDs across all tmux sessions/windows.
// Each ID looks like "%42".
func ListPaneIDs() (map[string]bool, error) {
	out, err := run("list-panes", "-a", "-F", "#{pane_id}")
	if err != nil {
		return nil, err
	}
	panes := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			panes[line] = true
		}
	}
	return panes, nil
}

// Panes floats docks into tmux panes.
type Panes struct{}

// NewPanes returns ErrNotInTmux when there is no tmux to talk to.
func NewPanes() (*Panes, error) {
	if !InTmux() {
		return nil, ErrNotInTmux
	}
	return &Panes{}, nil
}

// Float opens argv in a new pane titled title.
func (p *Panes) Float(title string, argv []string) (string, error) {
	pane, err := SplitCommand(argv)
	if err != nil {
		return "", err
	}
	if title != "" {
		// a missing title is cosmetic
		_ = SetPaneTitle(pane, title)
	}
	return pane, nil
}

// Close kills a floated pane. A pane the user already closed is not an
// error.
func (p *Panes) Close(paneID string) error {
	live, err := ListPaneIDs()
	if err != nil {
		return err
	}
	if !live[paneID] {
		return nil
	}
	return KillPane(paneID)
}
