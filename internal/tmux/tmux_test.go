package tmux

import (
	"os"
	"testing"
)

func TestNewPanes_OutsideTmux(t *testing.T) {
	t.Setenv("TMUX", "")
	if _, err := NewPanes(); err != ErrNotInTmux {
		t.Errorf("NewPanes() error = %v, want ErrNotInTmux", err)
	}
}

func TestSplitCommand_Empty(t *testing.T) {
	if _, err := SplitCommand(nil); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestFloat_Close(t *testing.T) {
	if os.Getenv("TMUX") == "" {
		t.Skip("Skipping tmux test: not running inside tmux")
	}
	p, err := NewPanes()
	if err != nil {
		t.Fatalf("NewPanes: %v", err)
	}
	paneID, err := p.Float("test", []string{"sleep", "30"})
	if err != nil {
		t.Fatalf("Float: %v", err)
	}
	if paneID == "" {
		t.Fatal("Float returned empty pane ID")
	}
	live, err := ListPaneIDs()
	if err != nil {
		t.Fatalf("ListPaneIDs: %v", err)
	}
	if !live[paneID] {
		t.Errorf("pane %s not listed", paneID)
	}
	if err := p.Close(paneID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// closing again is a no-op
	if err := p.Close(paneID); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
