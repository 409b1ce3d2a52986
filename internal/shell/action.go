package shell

import (
	"errors"
	"fmt"
	"strconv"

	"dockshell/internal/dock"
	"dockshell/internal/layout"
)

// Action is a user intent from a menu entry, key binding or prompt.
type Action int

const (
	ActionResetLayout Action = iota
	// ActionLockToggle is the menu entry; ActionLockAccelerator is ctrl+l.
	// Both flip the same flag.
	ActionLockToggle
	ActionLockAccelerator
	ActionTabsOnTop
	ActionResponsive
	ActionResetSettings
	ActionSave
	ActionSaveAs
	ActionQuit
	// ActionSaveAndQuit saves the open project, or the one named by Arg, and
	// quits if that worked.
	ActionSaveAndQuit
	ActionSeek
	ActionSeekBack
	ActionSeekForward
	ActionRefresh
	ActionRunScript
	ActionLoadPDB
	ActionAnalyze
	ActionCommand
	ActionToggleDock
	ActionCloseDock
	ActionFloatDock
	ActionMoveDock
	ActionResizePane
)

var actionNames = [...]string{
	ActionResetLayout:     "reset-layout",
	ActionLockToggle:      "lock-toggle",
	ActionLockAccelerator: "lock-accelerator",
	ActionTabsOnTop:       "tabs-on-top",
	ActionResponsive:      "responsive",
	ActionResetSettings:   "reset-settings",
	ActionSave:            "save",
	ActionSaveAs:          "save-as",
	ActionQuit:            "quit",
	ActionSaveAndQuit:     "save-and-quit",
	ActionSeek:            "seek",
	ActionSeekBack:        "seek-back",
	ActionSeekForward:     "seek-forward",
	ActionRefresh:         "refresh",
	ActionRunScript:       "run-script",
	ActionLoadPDB:         "load-pdb",
	ActionAnalyze:         "analyze",
	ActionCommand:         "command",
	ActionToggleDock:      "toggle-dock",
	ActionCloseDock:       "close-dock",
	ActionFloatDock:       "float-dock",
	ActionMoveDock:        "move-dock",
	ActionResizePane:      "resize-pane",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) && actionNames[a] != "" {
		return actionNames[a]
	}
	return "action(" + strconv.Itoa(int(a)) + ")"
}

// Request is one dispatch. Fields other than Action are read only by the
// actions that need them.
type Request struct {
	Action      Action
	Dock        dock.ID
	Target      dock.ID
	Arg         string
	N           int
	Orientation layout.Orientation
	Delta       float64
}

// Outcome tells the UI what to do after a dispatch.
type Outcome struct {
	Quit    bool
	Refresh bool
}

var (
	// ErrNeedsConfirmation marks requests that must be confirmed with
	// DispatchConfirmed before they run.
	ErrNeedsConfirmation = errors.New("action needs confirmation")
	// ErrNeedsProjectName is returned by save when no project is open yet.
	ErrNeedsProjectName = errors.New("no project name")
	ErrUnknownAction    = errors.New("unknown action")
)

// ConfirmError carries the question to put to the user.
type ConfirmError struct {
	Request Request
	Prompt  string
}

func (e *ConfirmError) Error() string {
	return fmt.Sprintf("%s: %s", e.Request.Action, e.Prompt)
}

func (e *ConfirmError) Unwrap() error { return ErrNeedsConfirmation }
