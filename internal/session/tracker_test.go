package session

import (
	"errors"
	"testing"

	"dockshell/internal/dock"
)

// stubLiveness returns a LivenessChecker that reports the given pane IDs as live.
func stubLiveness(live ...string) LivenessChecker {
	return func() (map[string]bool, error) {
		m := make(map[string]bool, len(live))
		for _, id := range live {
			m[id] = true
		}
		return m, nil
	}
}

func TestRegisterAndLookup(t *testing.T) {
	tr := New(nil)

	if _, had := tr.Register(dock.Strings, "%1", PaneContent); had {
		t.Error("first Register reported a replaced pane")
	}
	tr.Register(dock.Jupyter, "%2", PaneRepl)

	if tr.Count() != 2 {
		t.Errorf("Count() = %d, want 2", tr.Count())
	}
	p, ok := tr.Lookup(dock.Strings)
	if !ok || p.PaneID != "%1" || p.Type != PaneContent || p.Dock != dock.Strings {
		t.Errorf("Lookup(strings) = %+v, %v", p, ok)
	}
	if _, ok := tr.Lookup(dock.Hexdump); ok {
		t.Error("Lookup(hexdump) found a pane that was never registered")
	}
}

func TestRegisterReplaces(t *testing.T) {
	tr := New(nil)
	tr.Register(dock.Strings, "%1", PaneContent)

	old, had := tr.Register(dock.Strings, "%5", PaneContent)
	if !had || old.PaneID != "%1" {
		t.Errorf("Register returned %+v, %v; want the %%1 pane", old, had)
	}
	if tr.Count() != 1 {
		t.Errorf("Count() = %d, want 1", tr.Count())
	}
	if p, _ := tr.Lookup(dock.Strings); p.PaneID != "%5" {
		t.Errorf("Lookup(strings) = %q, want %%5", p.PaneID)
	}
}

func TestUnregister(t *testing.T) {
	tr := New(nil)
	tr.Register(dock.Strings, "%1", PaneContent)
	tr.Register(dock.Imports, "%2", PaneContent)

	if !tr.Unregister("%1") {
		t.Error("Unregister(%1) returned false, want true")
	}
	if tr.Count() != 1 {
		t.Errorf("Count() = %d after unregister, want 1", tr.Count())
	}
	if tr.Unregister("%99") {
		t.Error("Unregister(%99) returned true for nonexistent pane")
	}
}

func TestPrune(t *testing.T) {
	// %2 is dead
	tr := New(stubLiveness("%1", "%3"))
	tr.Register(dock.Strings, "%1", PaneContent)
	tr.Register(dock.Imports, "%2", PaneContent)
	tr.Register(dock.Jupyter, "%3", PaneRepl)

	pruned, err := tr.Prune()
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if pruned != 1 {
		t.Errorf("Prune() = %d, want 1", pruned)
	}
	if _, ok := tr.Lookup(dock.Imports); ok {
		t.Error("imports pane survived prune")
	}
	if tr.Count() != 2 {
		t.Errorf("Count() = %d after prune, want 2", tr.Count())
	}
}

func TestPruneLivenessError(t *testing.T) {
	tr := New(func() (map[string]bool, error) { return nil, errors.New("no server") })
	tr.Register(dock.Strings, "%1", PaneContent)

	if _, err := tr.Prune(); err == nil {
		t.Fatal("Prune() should report the liveness error")
	}
	if tr.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (failed prune keeps panes)", tr.Count())
	}
}

func TestPruneNilLiveness(t *testing.T) {
	tr := New(nil)
	tr.Register(dock.Strings, "%1", PaneContent)

	pruned, err := tr.Prune()
	if err != nil {
		t.Fatalf("Prune() with nil liveness: %v", err)
	}
	if pruned != 0 || tr.Count() != 1 {
		t.Errorf("Prune() with nil liveness = %d, Count() = %d; want 0, 1", pruned, tr.Count())
	}
}

func TestAllSortedAndDrain(t *testing.T) {
	tr := New(nil)
	tr.Register(dock.Strings, "%1", PaneContent)
	tr.Register(dock.Imports, "%2", PaneContent)
	tr.Register(dock.Jupyter, "%3", PaneRepl)

	all := tr.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d panes, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Dock > all[i].Dock {
			t.Errorf("All() not sorted: %v before %v", all[i-1].Dock, all[i].Dock)
		}
	}

	drained := tr.Drain()
	if len(drained) != 3 {
		t.Errorf("Drain() returned %d panes, want 3", len(drained))
	}
	if tr.Count() != 0 {
		t.Errorf("Count() = %d after Drain, want 0", tr.Count())
	}
}
