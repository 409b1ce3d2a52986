package ui

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dockshell/internal/dock"
	"dockshell/internal/engine"
	"dockshell/internal/layout"
	"dockshell/internal/settings"
	"dockshell/internal/shell"
)

const (
	testWidth  = 120
	testHeight = 40
)

type testApp struct {
	*appModelAdapter
	stub  *engine.Stub
	shell *shell.Shell
	seen  []tea.Msg
}

// newTestApp builds the UI over a stubbed engine with the default layout
// and a 120x40 window. replies are installed before the first refresh.
func newTestApp(t *testing.T, opts shell.Options, replies map[string]string) *testApp {
	t.Helper()
	ctx := context.Background()
	reg := dock.NewDefaultRegistry(ctx)
	vis := dock.NewVisibility(reg)
	lock := dock.NewLock(reg)
	mgr := layout.NewManager(ctx, reg, vis)

	stub := engine.NewStub()
	for k, v := range replies {
		stub.Reply(k, v)
	}
	client := engine.NewClient(stub)
	store := settings.NewEmpty(filepath.Join(t.TempDir(), "settings.json"))
	conf := settings.NewConfiguration(store, client)
	sh := shell.New(reg, vis, lock, mgr, client, conf, opts)
	sh.Layout().ResetToDefault()

	ta := &testApp{
		appModelAdapter: NewAppModel(ctx, sh, &pipeRunner{}).AsTeaModel().(*appModelAdapter),
		stub:            stub,
		shell:           sh,
	}
	_, cmd := ta.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	ta.settle(tea.Batch(ta.Init(), cmd))
	return ta
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// settle runs cmd and feeds the messages it produces back into the model
// until none of the app's own messages are left. Cursor blinks and other
// timers are recorded but not fed back.
func (ta *testApp) settle(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0 && i < 500; i++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok || msg == nil {
			continue
		}
		if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
			for j := 0; j < v.Len(); j++ {
				queue = append(queue, v.Index(j).Interface().(tea.Cmd))
			}
			continue
		}
		ta.seen = append(ta.seen, msg)
		if !ownMsg(msg) {
			continue
		}
		_, next := ta.Update(msg)
		queue = append(queue, next)
	}
}

// runCmd runs c, giving up on commands that wait on a timer.
func runCmd(c tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(50 * time.Millisecond):
		return nil, false
	}
}

func ownMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case DispatchMsg, ConfirmedMsg, DismissModalMsg, ShowPromptMsg, ShowPickerMsg,
		DockPickedMsg, RefreshMsg, FocusConsoleMsg, FocusMsg, SwitchTabMsg, SearchMsg,
		ToggleDarkMsg, SaveAsmOptionsMsg, SetThemeMsg, contentLoadedMsg, releaseConstraintsMsg:
		return true
	}
	return false
}

// press sends keys one by one, settling after each.
func (ta *testApp) press(keys ...string) {
	for _, k := range keys {
		_, cmd := ta.Update(keyMsg(k))
		ta.settle(cmd)
	}
}

func (ta *testApp) quit() bool {
	for _, m := range ta.seen {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func (ta *testApp) called(text string) bool {
	return slices.Contains(ta.stub.Calls(), text)
}

func TestApp_DefaultLayoutFillsWindow(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)

	if len(ta.Placements()) == 0 {
		t.Fatal("expected placements after the first window size")
	}
	if ta.shell.Layout().Tree().HasConstraints() {
		t.Error("pinned widths should be released after the first pass")
	}

	lines := strings.Split(ta.View(), "\n")
	if len(lines) != testHeight {
		t.Fatalf("view has %d lines, want %d", len(lines), testHeight)
	}
	for i, l := range lines[:len(lines)-1] {
		if w := lipgloss.Width(l); w != testWidth {
			t.Errorf("line %d is %d wide, want %d", i, w, testWidth)
		}
	}
}

func TestApp_PinnedWidthBecomesRatio(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	for _, p := range ta.Placements() {
		if shownTab(p) == dock.Functions && p.Rect.W != layout.PinnedWidth {
			t.Errorf("functions pane is %d wide, want %d", p.Rect.W, layout.PinnedWidth)
		}
	}
}

func TestApp_ContentLoadsIntoDock(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, map[string]string{
		"aflj": `[{"offset":4096,"size":42,"name":"main"}]`,
	})

	p, _ := ta.Pane(dock.Functions)
	rows := p.(*DockView).Rows()
	if len(rows) != 1 {
		t.Fatalf("functions rows = %v", rows)
	}
	if rows[0].Addr != "0x00001000" || !strings.Contains(rows[0].Text, "main") {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestApp_EnterOnRowSeeks(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, map[string]string{
		"aflj": `[{"offset":4096,"size":42,"name":"main"}]`,
	})
	ta.Focus.SetFocus(dock.Functions)
	ta.press("enter")

	if !ta.called("s 0x00001000") {
		t.Errorf("expected a seek, calls: %v", ta.stub.Calls())
	}
}

func TestApp_SeekRefreshesShownDocks(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.stub.Reset()
	ta.press("u")

	calls := ta.stub.Calls()
	if len(calls) == 0 || calls[0] != "s-" {
		t.Fatalf("calls = %v", calls)
	}
	if !slices.Contains(calls, "aflj") {
		t.Errorf("expected shown docks to re-query after seeking, calls: %v", calls)
	}
}

func TestApp_StaleContentIsDropped(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	p, _ := ta.Pane(dock.Functions)
	v := p.(*DockView)

	ta.Update(contentLoadedMsg{id: dock.Functions, gen: 0, rows: []Row{{Text: "old"}}})
	if len(v.Rows()) != 0 {
		t.Errorf("reply from an older request replaced content: %v", v.Rows())
	}
}

func TestApp_LockAccelerator(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.press("ctrl+l")
	if !ta.shell.Lock().Locked() {
		t.Fatal("ctrl+l should lock panels")
	}
	if !strings.Contains(ta.View(), "[locked]") {
		t.Error("status line should show the lock")
	}
	ta.press(" ", "l", "l")
	if ta.shell.Lock().Locked() {
		t.Error("the menu entry should unlock what the accelerator locked")
	}
}

func TestApp_QuitWhenClean(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.press("ctrl+c")
	if !ta.quit() {
		t.Error("expected tea.Quit")
	}
}

func TestApp_QuitWithUnsavedChangesAsks(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.settle(dispatchCmd(shell.Request{Action: shell.ActionCommand, Arg: "af"}))
	if !ta.shell.Dirty() {
		t.Fatal("a typed command should mark the project dirty")
	}

	ta.press("ctrl+c")
	if ta.quit() {
		t.Fatal("quit must wait for confirmation")
	}
	top, ok := ta.Overlays.Peek()
	if !ok {
		t.Fatal("expected a confirm modal")
	}
	if _, ok := top.View.(*ConfirmModal); !ok {
		t.Fatalf("overlay is %T", top.View)
	}

	ta.press("y")
	if !ta.quit() {
		t.Error("confirmed quit should exit")
	}
}

func TestApp_SaveAndQuitAsksForNameThenQuits(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.settle(dispatchCmd(shell.Request{Action: shell.ActionCommand, Arg: "af"}))

	ta.press("ctrl+c", "s")
	if ta.quit() {
		t.Fatal("quit must wait for a project name")
	}
	top, ok := ta.Overlays.Peek()
	if !ok {
		t.Fatal("expected a prompt")
	}
	if _, ok := top.View.(*PromptModal); !ok {
		t.Fatalf("overlay is %T", top.View)
	}

	ta.press("d", "e", "m", "o", "enter")
	if !ta.called("Ps demo") {
		t.Fatalf("calls = %v", ta.stub.Calls())
	}
	if !ta.quit() {
		t.Error("saving under the new name should exit")
	}
}

func TestApp_ResetSettingsDeclined(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.press(" ", "o", "r")
	if ta.Overlays.Len() != 1 {
		t.Fatalf("expected confirm modal, overlays=%d", ta.Overlays.Len())
	}
	ta.press("n")
	if ta.Overlays.Len() != 0 {
		t.Error("declining should close the modal")
	}
	if ta.called("e-") {
		t.Error("declined reset must not touch the engine")
	}
}

func TestApp_ResetSettingsConfirmed(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.press(" ", "o", "r", "enter")
	if !ta.called("e-") {
		t.Errorf("expected engine config reset, calls: %v", ta.stub.Calls())
	}
}

func TestApp_ConsoleInput(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, map[string]string{"pd 2": "nop\nret"})
	ta.press(".")
	if ta.Mode != ModeInput || ta.Focus.Current != dock.Console {
		t.Fatalf("mode=%v focus=%q", ta.Mode, ta.Focus.Current)
	}

	ta.press("p", "d", " ", "2", "enter")
	if !ta.called("pd 2") {
		t.Fatalf("calls = %v", ta.stub.Calls())
	}
	var texts []string
	for _, l := range ta.shell.Console().Lines() {
		texts = append(texts, l.Text)
	}
	if !slices.Contains(texts, "> pd 2") || !slices.Contains(texts, "ret") {
		t.Errorf("console = %q", texts)
	}

	ta.press("esc")
	if ta.Mode != ModeNormal {
		t.Error("esc should leave input mode")
	}
}

func TestApp_ToggleHiddenDock(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	d, _ := ta.shell.Registry().Lookup(dock.SDB)
	if d.Visible() {
		t.Fatal("sdb is not part of the default set")
	}

	ta.press(" ", "v", "B")
	if !d.Visible() {
		t.Fatal("SPC v B should show the sdb browser")
	}
	if ta.Focus.Current != dock.SDB {
		t.Errorf("focus = %q, want sdb", ta.Focus.Current)
	}
	if !ta.called("k *") {
		t.Errorf("newly shown dock should load, calls: %v", ta.stub.Calls())
	}
}

func TestApp_SwitchTab(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	if !ta.Focus.SetFocus(dock.Dashboard) {
		t.Fatal("dashboard should be on screen")
	}
	ta.press("]")
	if ta.Focus.Current != dock.Disassembly {
		t.Errorf("focus = %q, want disassembly", ta.Focus.Current)
	}
	if g := ta.shell.Layout().Tree().Group(dock.Dashboard); g.CurrentTab() != dock.Disassembly {
		t.Errorf("raised tab = %q", g.CurrentTab())
	}
	ta.press("[")
	if ta.Focus.Current != dock.Dashboard {
		t.Errorf("focus = %q, want dashboard", ta.Focus.Current)
	}
}

func TestApp_FocusRotation(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	start := ta.Focus.Current
	ta.press("tab")
	if ta.Focus.Current == start {
		t.Error("tab should move focus")
	}
	ta.press("shift+tab")
	if ta.Focus.Current != start {
		t.Errorf("shift+tab should come back to %q, got %q", start, ta.Focus.Current)
	}
}

func TestApp_SaveWithoutProjectPromptsForName(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.press(" ", "f", "s")
	top, ok := ta.Overlays.Peek()
	if !ok {
		t.Fatal("expected a prompt")
	}
	if _, ok := top.View.(*PromptModal); !ok {
		t.Fatalf("overlay is %T", top.View)
	}

	ta.press("d", "e", "m", "o", "enter")
	if !ta.called("Ps demo") {
		t.Fatalf("calls = %v", ta.stub.Calls())
	}
	if ta.shell.Project() != "demo" {
		t.Errorf("project = %q", ta.shell.Project())
	}
	if ta.Overlays.Len() != 0 {
		t.Error("prompt should be dismissed")
	}
}

func TestApp_Search(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, map[string]string{
		"/j lib": `[{"offset":8192,"type":"string","data":"libc.so"}]`,
	})
	ta.settle(msgCmd(SearchMsg{Text: "lib"}))

	p, _ := ta.Pane(dock.Search)
	rows := p.(*DockView).Rows()
	if len(rows) != 1 || rows[0].Addr != "0x00002000" {
		t.Fatalf("search rows = %+v", rows)
	}
	if ta.Focus.Current != dock.Search {
		t.Errorf("focus = %q, want search", ta.Focus.Current)
	}
}

func TestApp_TabsOnTop(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	if strings.Contains(strings.Split(ta.View(), "\n")[1], "Functions") {
		t.Fatal("tab bars start at the bottom")
	}
	ta.press(" ", "l", "t")
	if !strings.Contains(strings.Split(ta.View(), "\n")[1], "Functions") {
		t.Error("tabs on top should draw the tab bar below the top border")
	}
}

func TestApp_LeaderHelpShown(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.press(" ")
	view := ta.View()
	if !strings.Contains(view, "Layout") || !strings.Contains(view, "File") {
		t.Error("leader help should list the submenus")
	}
	if n := len(strings.Split(view, "\n")); n != testHeight {
		t.Errorf("view has %d lines with help open, want %d", n, testHeight)
	}
}

func TestApp_ScriptCandidateOffered(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "a.out")
	if err := os.WriteFile(bin, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bin+".r2", []byte("afl\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, shell.Options{File: bin}, nil)
	if ta.Overlays.Len() != 1 {
		t.Fatalf("expected the run-script prompt, overlays=%d", ta.Overlays.Len())
	}
	ta.press("y")
	if !ta.called(". " + bin + ".r2") {
		t.Errorf("calls = %v", ta.stub.Calls())
	}
}

func TestApp_GeometryReportsFocus(t *testing.T) {
	ta := newTestApp(t, shell.Options{}, nil)
	ta.Focus.SetFocus(dock.Console)
	geo := ta.Geometry()
	if geo.Width != testWidth || geo.Height != testHeight || geo.Focus != dock.Console {
		t.Errorf("geometry = %+v", geo)
	}
}

// collect runs cmd and returns the messages it produces, unpacking batches
// and sequences.
func collect(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok || msg == nil {
			continue
		}
		if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
			for j := 0; j < v.Len(); j++ {
				queue = append(queue, v.Index(j).Interface().(tea.Cmd))
			}
			continue
		}
		out = append(out, msg)
	}
	return out
}
