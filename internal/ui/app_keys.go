package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/dock"
	"dockshell/internal/layout"
	"dockshell/internal/shell"
)

// resizeStep is the split ratio change per resize key press.
const resizeStep = 0.05

var normalOnly = []AppMode{ModeNormal}

func action(a shell.Action) tea.Cmd {
	return dispatchCmd(shell.Request{Action: a})
}

func onFocused(req shell.Request) tea.Cmd {
	return msgCmd(DispatchMsg{Request: req, OnFocused: true})
}

// promptFor asks for a line of text and dispatches it as a's argument.
func promptFor(title, placeholder string, a shell.Action) tea.Cmd {
	return msgCmd(ShowPromptMsg{
		Title:       title,
		Placeholder: placeholder,
		Submit: func(v string) tea.Msg {
			return DispatchMsg{Request: shell.Request{Action: a, Arg: v}}
		},
	})
}

// registerKeybinds installs the global keys and the SPC menus.
func registerKeybinds(reg *KeybindRegistry) {
	reg.BindWithDesc("ctrl+c", action(shell.ActionQuit), "Quit")
	reg.BindWithDesc("ctrl+l", action(shell.ActionLockAccelerator), "Lock panels")
	reg.BindWithDesc("ctrl+r", action(shell.ActionRefresh), "Refresh")

	seek := promptFor("Seek", "address or flag", shell.ActionSeek)
	reg.BindWithDescForMode(".", msgCmd(FocusConsoleMsg{}), "Console", normalOnly)
	reg.BindWithDescForMode("g", seek, "Seek", normalOnly)
	reg.BindWithDescForMode("s", seek, "Seek", normalOnly)
	reg.BindWithDescForMode("u", action(shell.ActionSeekBack), "Seek back", normalOnly)
	reg.BindWithDescForMode("U", action(shell.ActionSeekForward), "Seek forward", normalOnly)
	reg.BindWithDescForMode("tab", msgCmd(FocusMsg{Delta: 1}), "Next pane", normalOnly)
	reg.BindWithDescForMode("shift+tab", msgCmd(FocusMsg{Delta: -1}), "Previous pane", normalOnly)
	reg.BindWithDescForMode("]", msgCmd(SwitchTabMsg{Delta: 1}), "Next tab", normalOnly)
	reg.BindWithDescForMode("[", msgCmd(SwitchTabMsg{Delta: -1}), "Previous tab", normalOnly)
	reg.BindWithDescForMode("x", onFocused(shell.Request{Action: shell.ActionCloseDock}), "Close dock", normalOnly)

	resize := func(o layout.Orientation, d float64) tea.Cmd {
		return onFocused(shell.Request{Action: shell.ActionResizePane, Orientation: o, Delta: d})
	}
	reg.BindWithDescForMode("<", resize(layout.Horizontal, -resizeStep), "Narrower", normalOnly)
	reg.BindWithDescForMode(">", resize(layout.Horizontal, resizeStep), "Wider", normalOnly)
	reg.BindWithDescForMode("-", resize(layout.Vertical, -resizeStep), "Shorter", normalOnly)
	reg.BindWithDescForMode("=", resize(layout.Vertical, resizeStep), "Taller", normalOnly)

	reg.BindWithDesc("SPC q", action(shell.ActionQuit), "Quit")
	reg.BindWithDesc("SPC j", msgCmd(OpenReplMsg{}), "Jupyter")

	reg.BindWithDesc("SPC f s", action(shell.ActionSave), "Save")
	reg.BindWithDesc("SPC f S", promptFor("Save project as", "project name", shell.ActionSaveAs), "Save as")
	reg.BindWithDesc("SPC f o", promptFor("Run script", "path to .r2 script", shell.ActionRunScript), "Run script")
	reg.BindWithDesc("SPC f p", promptFor("Load PDB", "path to .pdb", shell.ActionLoadPDB), "Load PDB")

	reg.BindWithDesc("SPC l r", action(shell.ActionResetLayout), "Reset layout")
	reg.BindWithDesc("SPC l l", action(shell.ActionLockToggle), "Lock panels")
	reg.BindWithDesc("SPC l t", action(shell.ActionTabsOnTop), "Tabs on top")
	reg.BindWithDesc("SPC l R", action(shell.ActionResponsive), "Responsive")

	for n, desc := range []string{"Analyze (aa)", "Analyze more (aaa)", "Analyze all (aaaa)"} {
		req := shell.Request{Action: shell.ActionAnalyze, N: n}
		reg.BindWithDesc("SPC a "+string(rune('0'+n)), dispatchCmd(req), desc)
	}

	for _, k := range dock.Kinds {
		reg.BindWithDesc("SPC v "+k.Key, dispatchCmd(shell.Request{Action: shell.ActionToggleDock, Dock: k.ID}), k.Title)
	}
	reg.BindWithDesc("SPC v l", msgCmd(ShowPickerMsg{Purpose: PickToggle}), "Pick dock…")

	reg.BindWithDesc("SPC d m", msgCmd(ShowPickerMsg{Purpose: PickMoveTarget}), "Move onto…")
	reg.BindWithDesc("SPC d f", onFocused(shell.Request{Action: shell.ActionFloatDock}), "Float")
	reg.BindWithDesc("SPC d F", msgCmd(ShowPickerMsg{Purpose: PickFloat}), "Float…")
	reg.BindWithDesc("SPC d x", onFocused(shell.Request{Action: shell.ActionCloseDock}), "Close")

	reg.BindWithDesc("SPC o r", action(shell.ActionResetSettings), "Reset settings")
	reg.BindWithDesc("SPC o d", msgCmd(ToggleDarkMsg{}), "Dark theme")
	reg.BindWithDesc("SPC o s", msgCmd(SaveAsmOptionsMsg{}), "Save asm options")
	reg.BindWithDesc("SPC o t", msgCmd(ShowPromptMsg{
		Title:       "Colour theme",
		Placeholder: "solarized, default, …",
		Submit:      func(v string) tea.Msg { return SetThemeMsg{Name: v} },
	}), "Colour theme")
}
