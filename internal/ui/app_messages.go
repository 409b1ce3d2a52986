package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/dock"
	"dockshell/internal/shell"
)

// DispatchMsg asks the app to run a shell request. With OnFocused set the
// request applies to the focused dock.
type DispatchMsg struct {
	Request   shell.Request
	OnFocused bool
}

// ConfirmedMsg re-sends a request the user agreed to in a confirm modal.
type ConfirmedMsg struct {
	Request shell.Request
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// ShowPromptMsg opens a one-line prompt; Submit turns the answer into the
// next message.
type ShowPromptMsg struct {
	Title       string
	Placeholder string
	Initial     string
	Submit      func(string) tea.Msg
}

// ShowPickerMsg opens the dock picker. Move and float apply to the focused
// dock.
type ShowPickerMsg struct {
	Purpose PickPurpose
}

// DockPickedMsg is sent when the user picks a dock in the picker.
type DockPickedMsg struct {
	ID      dock.ID
	Purpose PickPurpose
	Source  dock.ID
}

// RefreshMsg re-queries every shown dock.
type RefreshMsg struct{}

// FocusConsoleMsg moves focus into the console command line.
type FocusConsoleMsg struct{}

// FocusMsg rotates focus across panes.
type FocusMsg struct {
	Delta int
}

// SwitchTabMsg raises the next (Delta 1) or previous tab in the focused
// pane's group.
type SwitchTabMsg struct {
	Delta int
}

// OpenReplMsg opens the Jupyter dock's Python REPL overlay.
type OpenReplMsg struct{}

// SearchMsg runs a search and shows the hits in the search dock.
type SearchMsg struct {
	Text string
}

// Theme messages from the options menu.
type (
	ToggleDarkMsg     struct{}
	SaveAsmOptionsMsg struct{}
	SetThemeMsg       struct {
		Name string
	}
)

// contentLoadedMsg carries a dock's engine reply. Replies from an older
// generation than the dock's latest request are dropped.
type contentLoadedMsg struct {
	id   dock.ID
	gen  uint64
	rows []Row
	err  error
}

// releaseConstraintsMsg arrives after the first render with pinned widths.
type releaseConstraintsMsg struct{}
