package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/dock"
	"dockshell/internal/shell"
)

func TestFuzzyFilter_RanksBestMatchFirst(t *testing.T) {
	targets := []string{"Hexdump", "Disassembly", "Sidebar", "SDB Browser"}
	ranks := fuzzyFilter("dis", targets)
	if len(ranks) == 0 {
		t.Fatal("expected matches")
	}
	if targets[ranks[0].Index] != "Disassembly" {
		t.Errorf("best match = %q", targets[ranks[0].Index])
	}
	if len(fuzzyFilter("zzz", targets)) != 0 {
		t.Error("expected no match for zzz")
	}
}

func TestDockPicker_PickSendsDismissThenPick(t *testing.T) {
	reg := dock.NewDefaultRegistry(context.Background())
	m := NewDockPickerModal(reg, PickMoveTarget, dock.Functions)

	_, cmd := m.Update(keyMsg("enter"))
	msgs := collect(cmd)
	if len(msgs) != 2 {
		t.Fatalf("msgs = %#v", msgs)
	}
	if _, ok := msgs[0].(DismissModalMsg); !ok {
		t.Errorf("first message = %T, want DismissModalMsg", msgs[0])
	}
	picked, ok := msgs[1].(DockPickedMsg)
	if !ok {
		t.Fatalf("second message = %T", msgs[1])
	}
	if picked.Source != dock.Functions || picked.ID == dock.Functions || picked.Purpose != PickMoveTarget {
		t.Errorf("picked = %+v", picked)
	}
}

func TestPromptModal_SubmitsTrimmedValue(t *testing.T) {
	var got string
	m := NewPromptModal("Seek", "address", "  main ", func(v string) tea.Msg {
		got = v
		return DispatchMsg{Request: shell.Request{Action: shell.ActionSeek, Arg: v}}
	})
	msgs := collect(func() tea.Msg { _, cmd := m.Update(keyMsg("enter")); return cmd() })
	if got != "main" {
		t.Errorf("submitted %q", got)
	}
	if len(msgs) != 2 {
		t.Fatalf("msgs = %#v", msgs)
	}
	if d, ok := msgs[1].(DispatchMsg); !ok || d.Request.Arg != "main" {
		t.Errorf("msgs[1] = %#v", msgs[1])
	}
}

func TestPromptModal_EmptyInputIgnored(t *testing.T) {
	m := NewPromptModal("Seek", "address", "", func(string) tea.Msg { return nil })
	if _, cmd := m.Update(keyMsg("enter")); cmd != nil {
		t.Error("empty input should not submit")
	}
}

func TestShellConfirmModal(t *testing.T) {
	cerr := &shell.ConfirmError{Request: shell.Request{Action: shell.ActionResetSettings}, Prompt: "Clear?"}
	m := NewShellConfirmModal(cerr)
	if m.Title != "Reset settings?" {
		t.Errorf("title = %q", m.Title)
	}

	_, cmd := m.Update(keyMsg("y"))
	c, ok := cmd().(ConfirmedMsg)
	if !ok || c.Request.Action != shell.ActionResetSettings {
		t.Errorf("y produced %#v", cmd())
	}

	_, cmd = m.Update(keyMsg("n"))
	if _, ok := cmd().(DismissModalMsg); !ok {
		t.Error("n should dismiss")
	}
}

func TestShellConfirmModal_QuitOffersSave(t *testing.T) {
	cerr := &shell.ConfirmError{Request: shell.Request{Action: shell.ActionQuit}, Prompt: "Unsaved changes"}
	m := NewShellConfirmModal(cerr)
	if !strings.Contains(m.View(), "save and quit") {
		t.Error("quit modal should offer saving")
	}

	_, cmd := m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatal("s produced no command")
	}
	c, ok := cmd().(ConfirmedMsg)
	if !ok || c.Request.Action != shell.ActionSaveAndQuit {
		t.Errorf("s produced %#v", cmd())
	}

	reset := NewShellConfirmModal(&shell.ConfirmError{Request: shell.Request{Action: shell.ActionResetSettings}})
	if _, cmd := reset.Update(keyMsg("s")); cmd != nil {
		t.Error("reset settings has no third choice")
	}
}
