package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/dock"
	"dockshell/internal/layout"
	"dockshell/internal/logging"
	"dockshell/internal/pty"
	"dockshell/internal/settings"
	"dockshell/internal/shell"
)

// AppModel is the root model: the docked panes, the overlays on top of them
// and the key handling that feeds the shell.
type AppModel struct {
	Mode          AppMode
	KeyHandler    *KeyHandler
	Focus         FocusManager
	Overlays      OverlayStack
	Status        string
	StatusIsError bool

	ctx     context.Context
	shell   *shell.Shell
	runner  pty.Runner
	panes   map[dock.ID]Pane
	console *ConsoleView

	placements     []layout.Placement
	width          int
	height         int
	gens           map[dock.ID]uint64 // latest content request per dock
	loaded         map[dock.ID]bool
	stale          bool
	releasePending bool
	scriptPrompted bool
}

var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel builds the UI over sh. runner starts the Jupyter REPL; nil
// uses a real PTY.
func NewAppModel(ctx context.Context, sh *shell.Shell, runner pty.Runner) *AppModel {
	if runner == nil {
		runner = &pty.CreackPTY{}
	}
	reg := NewKeybindRegistry()
	registerKeybinds(reg)

	a := &AppModel{
		Mode:       ModeNormal,
		KeyHandler: NewKeyHandler(reg),
		ctx:        ctx,
		shell:      sh,
		runner:     runner,
		panes:      make(map[dock.ID]Pane),
		gens:       make(map[dock.ID]uint64),
		loaded:     make(map[dock.ID]bool),
		stale:      true,
	}
	for d := range sh.Registry().All() {
		switch d.ID {
		case dock.Console:
			a.console = NewConsoleView(sh.Console())
			a.panes[d.ID] = a.console
		default:
			v := NewDockView(d.ID, d.Title)
			switch d.ID {
			case dock.Jupyter:
				v.Placeholder = "Enter: open the Python REPL"
			case dock.Search:
				v.Placeholder = "Enter: search"
			}
			a.panes[d.ID] = v
		}
	}
	if a.console == nil {
		a.console = NewConsoleView(sh.Console())
	}
	a.Focus.OnChange = a.focusChanged

	sh.OnRefresh(func() { a.stale = true })
	conf := sh.Configuration()
	ApplyConfiguration(conf)
	conf.OnColorsChanged(func() { ApplyConfiguration(conf) })
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// RestoreFocus focuses id once it is on screen.
func (m *AppModel) RestoreFocus(id dock.ID) {
	m.Focus.Current = id
}

// Geometry reports the window state worth saving.
func (m *AppModel) Geometry() settings.Geometry {
	return settings.Geometry{Width: m.width, Height: m.height, Focus: m.Focus.Current}
}

// Pane returns the view that renders dock id.
func (m *AppModel) Pane(id dock.ID) (Pane, bool) {
	p, ok := m.panes[id]
	return p, ok
}

// Placements returns the panes from the last layout pass.
func (m *AppModel) Placements() []layout.Placement {
	return m.placements
}

func (a *appModelAdapter) Init() tea.Cmd {
	if path, ok := a.shell.ScriptCandidate(); ok && !a.scriptPrompted {
		a.scriptPrompted = true
		req := shell.Request{Action: shell.ActionRunScript, Arg: path}
		a.Overlays.Push(Overlay{
			View: NewConfirmModal("Run script?", "Run "+path+" now?", func() tea.Msg {
				return ConfirmedMsg{Request: req}
			}),
			Dismiss: "esc",
		})
	}
	return a.afterUpdate()
}

func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.afterUpdate())
}

func (a *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case DispatchMsg:
		req := msg.Request
		if msg.OnFocused {
			if a.Focus.Current == "" {
				a.setError(errors.New("no dock focused"))
				return nil
			}
			req.Dock = a.Focus.Current
		}
		return a.dispatch(req, false)

	case ConfirmedMsg:
		a.Overlays.Pop()
		return a.dispatch(msg.Request, true)

	case DismissModalMsg:
		a.Overlays.Pop()
		return nil

	case ShowPromptMsg:
		p := NewPromptModal(msg.Title, msg.Placeholder, msg.Initial, msg.Submit)
		a.Overlays.Push(Overlay{View: p, Dismiss: "esc"})
		return p.Init()

	case ShowPickerMsg:
		source := a.Focus.Current
		if msg.Purpose == PickMoveTarget && source == "" {
			a.setError(errors.New("no dock focused"))
			return nil
		}
		a.Overlays.Push(Overlay{View: NewDockPickerModal(a.shell.Registry(), msg.Purpose, source)})
		return nil

	case DockPickedMsg:
		switch msg.Purpose {
		case PickMoveTarget:
			return a.dispatch(shell.Request{Action: shell.ActionMoveDock, Dock: msg.Source, Target: msg.ID}, false)
		case PickFloat:
			return a.dispatch(shell.Request{Action: shell.ActionFloatDock, Dock: msg.ID}, false)
		default:
			return a.dispatch(shell.Request{Action: shell.ActionToggleDock, Dock: msg.ID}, false)
		}

	case RefreshMsg:
		a.stale = true
		return nil

	case FocusConsoleMsg:
		return a.focusConsole()

	case FocusMsg:
		if msg.Delta < 0 {
			a.Focus.Prev()
		} else {
			a.Focus.Next()
		}
		return nil

	case SwitchTabMsg:
		a.switchTab(msg.Delta)
		return nil

	case OpenReplMsg:
		r := NewReplView(a.ctx, a.runner)
		a.Overlays.Push(Overlay{View: r, Dismiss: "esc"})
		_, _ = r.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return r.Init()

	case SearchMsg:
		return a.search(msg.Text)

	case ToggleDarkMsg:
		conf := a.shell.Configuration()
		conf.SetDarkTheme(!conf.DarkTheme())
		a.setStatus(fmt.Sprintf("dark theme: %t", conf.DarkTheme()))
		return nil

	case SaveAsmOptionsMsg:
		if err := a.shell.Configuration().SaveDefaultAsmOptions(a.ctx); err != nil {
			a.setError(err)
			return nil
		}
		a.setStatus("asm options saved as default")
		return nil

	case SetThemeMsg:
		if err := a.shell.Configuration().SetColorTheme(a.ctx, msg.Name); err != nil {
			a.shell.Console().Error(err.Error())
			a.setError(err)
			return nil
		}
		a.setStatus("theme: " + msg.Name)
		a.stale = true
		return nil

	case contentLoadedMsg:
		if msg.gen != a.gens[msg.id] {
			return nil
		}
		if v, ok := a.panes[msg.id].(*DockView); ok {
			v.SetRows(msg.rows, msg.err)
		}
		return nil

	case releaseConstraintsMsg:
		a.releasePending = false
		a.shell.Layout().ReleaseConstraints()
		return nil
	}

	cmd, _ := a.Overlays.UpdateTop(msg)
	return cmd
}

func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			a.Overlays.Pop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}

	if a.Mode == ModeInput && msg.String() == "esc" {
		a.leaveInput()
		return nil
	}
	if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
		return cmd
	}
	if a.Mode == ModeInput {
		_, cmd := a.console.Update(msg)
		return cmd
	}

	switch a.Focus.Current {
	case dock.Jupyter:
		if msg.String() == "enter" {
			return msgCmd(OpenReplMsg{})
		}
	case dock.Search:
		v, _ := a.panes[dock.Search].(*DockView)
		if msg.String() == "/" || (msg.String() == "enter" && (v == nil || len(v.Rows()) == 0)) {
			return msgCmd(ShowPromptMsg{
				Title:       "Search",
				Placeholder: "string to find",
				Submit:      func(v string) tea.Msg { return SearchMsg{Text: v} },
			})
		}
	case dock.Console:
		if msg.String() == "enter" || msg.String() == "i" {
			return a.focusConsole()
		}
	}
	if p, ok := a.panes[a.Focus.Current]; ok {
		_, cmd := p.Update(msg)
		return cmd
	}
	return nil
}

// dispatch hands req to the shell and turns the result into UI state:
// a confirm modal, a project name prompt, a status line or quitting.
func (a *AppModel) dispatch(req shell.Request, confirmed bool) tea.Cmd {
	var (
		out shell.Outcome
		err error
	)
	if confirmed {
		out, err = a.shell.DispatchConfirmed(a.ctx, req)
	} else {
		out, err = a.shell.Dispatch(a.ctx, req)
	}

	var cerr *shell.ConfirmError
	switch {
	case errors.As(err, &cerr):
		a.Overlays.Push(Overlay{View: NewShellConfirmModal(cerr), Dismiss: "esc"})
		return nil
	case errors.Is(err, shell.ErrNeedsProjectName):
		next := shell.ActionSaveAs
		if req.Action == shell.ActionSaveAndQuit {
			next = shell.ActionSaveAndQuit
		}
		return msgCmd(ShowPromptMsg{
			Title:       "Save project as",
			Placeholder: "project name",
			Submit: func(v string) tea.Msg {
				return DispatchMsg{Request: shell.Request{Action: next, Arg: v}}
			},
		})
	case err != nil:
		logging.FromContext(a.ctx).Debug().Str("component", "ui").Err(err).Str("action", req.Action.String()).Msg("dispatch failed")
		a.setError(err)
		return nil
	}

	if out.Quit {
		return tea.Quit
	}
	if out.Refresh {
		a.stale = true
	}
	switch req.Action {
	case shell.ActionToggleDock:
		if d, err := a.shell.Registry().Lookup(req.Dock); err == nil && d.Visible() {
			_ = a.shell.Layout().Tree().Raise(req.Dock)
			a.Focus.Current = req.Dock
		}
	case shell.ActionMoveDock:
		a.Focus.Current = req.Dock
	case shell.ActionResetLayout:
		a.loaded = make(map[dock.ID]bool)
	}
	a.setStatus(req.Action.String())
	return nil
}

// afterUpdate runs once per Update: lay out again, fetch content for docks
// that came on screen or went stale, and schedule the release of pinned
// widths after the pass that used them.
func (a *AppModel) afterUpdate() tea.Cmd {
	a.relayout()

	if a.stale {
		a.stale = false
		clear(a.loaded)
	}
	var cmds []tea.Cmd
	for _, p := range a.placements {
		id := shownTab(p)
		if a.loaded[id] {
			continue
		}
		a.loaded[id] = true
		cmds = append(cmds, a.requestContent(id))
	}
	if a.shell.Layout().Tree().HasConstraints() && !a.releasePending && a.width > 0 && len(a.placements) > 0 {
		a.releasePending = true
		cmds = append(cmds, releaseConstraintsCmd())
	}
	return tea.Batch(cmds...)
}

func (a *AppModel) relayout() {
	reg := a.shell.Registry()
	visible := func(id dock.ID) bool {
		d, err := reg.Lookup(id)
		return err == nil && d.Visible()
	}
	a.placements = layout.Arrange(a.shell.Layout().Tree(), a.width, a.bodyHeight(), visible)

	order := make([]dock.ID, 0, len(a.placements))
	for _, p := range a.placements {
		id := shownTab(p)
		order = append(order, id)
		if pane, ok := a.panes[id]; ok {
			w, h := innerSize(p.Rect)
			pane.SetSize(w, h)
		}
	}
	a.Focus.SetOrder(order)
	a.console.Sync()
}

// requestContent starts a fetch for id. Docks without a content command
// keep what they show.
func (a *AppModel) requestContent(id dock.ID) tea.Cmd {
	if _, ok := shell.ContentCommand(id); !ok {
		return nil
	}
	a.gens[id]++
	if v, ok := a.panes[id].(*DockView); ok {
		v.SetLoading()
	}
	return queryCmd(a.ctx, a.shell, id, a.gens[id])
}

func (a *AppModel) search(text string) tea.Cmd {
	if err := a.shell.Visibility().Show(dock.Search); err != nil {
		a.setError(err)
		return nil
	}
	tree := a.shell.Layout().Tree()
	if !tree.Contains(dock.Search) {
		if err := a.shell.Layout().Place(dock.Search); err != nil {
			a.setError(err)
			return nil
		}
	}
	_ = tree.Raise(dock.Search)
	a.Focus.Current = dock.Search
	a.gens[dock.Search]++
	if v, ok := a.panes[dock.Search].(*DockView); ok {
		v.SetLoading()
	}
	a.setStatus("search: " + text)
	return searchCmd(a.ctx, a.shell.Engine(), text, a.gens[dock.Search])
}

func (a *AppModel) focusConsole() tea.Cmd {
	if d, err := a.shell.Registry().Lookup(dock.Console); err == nil && !d.Visible() {
		if _, err := a.shell.Dispatch(a.ctx, shell.Request{Action: shell.ActionToggleDock, Dock: dock.Console}); err != nil {
			a.setError(err)
			return nil
		}
	}
	_ = a.shell.Layout().Tree().Raise(dock.Console)
	a.relayout()
	a.Focus.SetFocus(dock.Console)
	a.Mode = ModeInput
	return a.console.Focus()
}

func (a *AppModel) leaveInput() {
	a.Mode = ModeNormal
	a.console.Blur()
}

func (a *AppModel) focusChanged(from, to dock.ID) {
	if from == dock.Console && a.Mode == ModeInput {
		a.leaveInput()
	}
}

// switchTab raises the neighbouring visible tab of the focused pane.
func (a *AppModel) switchTab(delta int) {
	for _, p := range a.placements {
		cur := shownTab(p)
		if cur != a.Focus.Current || len(p.Tabs) < 2 {
			continue
		}
		n := len(p.Tabs)
		next := p.Tabs[((slices.Index(p.Tabs, cur)+delta)%n+n)%n]
		_ = a.shell.Layout().Tree().Raise(next)
		a.Focus.move(next)
		return
	}
}

func (a *AppModel) setStatus(s string) {
	a.Status, a.StatusIsError = s, false
}

func (a *AppModel) setError(err error) {
	a.Status, a.StatusIsError = err.Error(), true
}

// bodyHeight is the screen height left for panes above the status line.
func (a *AppModel) bodyHeight() int {
	return max(a.height-1, 0)
}

// shownTab is the dock a placement displays: its current tab, or the first
// visible one when the current tab is hidden.
func shownTab(p layout.Placement) dock.ID {
	if cur := p.Group.CurrentTab(); slices.Contains(p.Tabs, cur) {
		return cur
	}
	if len(p.Tabs) == 0 {
		return ""
	}
	return p.Tabs[0]
}
