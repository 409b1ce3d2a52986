package ui

import (
	"strings"
	"testing"

	"dockshell/internal/dock"
	"dockshell/internal/engine"
)

func TestFormatResult_Listing(t *testing.T) {
	res := engine.Result{
		Command: engine.Listing(engine.KindFunctions),
		Text:    `[{"offset":4198400,"size":120,"name":"main"},{"offset":4198520,"size":8,"name":"sym.imp.puts"}]`,
	}
	rows := FormatResult(dock.Functions, res)
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0].Addr != "0x00401000" {
		t.Errorf("addr = %q", rows[0].Addr)
	}
	if !strings.HasPrefix(rows[0].Text, "0x00401000") || !strings.HasSuffix(rows[0].Text, "main") {
		t.Errorf("text = %q", rows[0].Text)
	}
	if !strings.Contains(rows[0].Text, "120") {
		t.Errorf("size column missing: %q", rows[0].Text)
	}
}

func TestFormatResult_EmptyListing(t *testing.T) {
	rows := FormatResult(dock.Strings, engine.Result{Command: engine.Listing(engine.KindStrings)})
	if len(rows) != 0 {
		t.Errorf("rows = %v", rows)
	}
}

func TestFormatResult_WrappedListing(t *testing.T) {
	res := engine.Result{
		Command: engine.Listing(engine.KindSections),
		Text:    `{"sections":[{"vaddr":4096,"vsize":16,"perm":"-r-x","name":".text"}]}`,
	}
	rows := FormatResult(dock.Sections, res)
	if len(rows) != 1 || !strings.HasSuffix(rows[0].Text, ".text") {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0].Addr != "0x00001000" {
		t.Errorf("addr = %q", rows[0].Addr)
	}
}

func TestFormatResult_Unreadable(t *testing.T) {
	rows := FormatResult(dock.Imports, engine.Result{Command: engine.Listing(engine.KindImports), Text: "oops"})
	if len(rows) != 1 || !strings.HasPrefix(rows[0].Text, "unreadable reply") {
		t.Errorf("rows = %v", rows)
	}
}

func TestFormatResult_Dashboard(t *testing.T) {
	res := engine.Result{
		Command: engine.Listing(engine.KindInfo),
		Text:    `{"core":{"file":"/bin/ls","size":1024},"bin":{"arch":"x86","bits":64}}`,
	}
	rows := FormatResult(dock.Dashboard, res)
	if len(rows) != 4 {
		t.Fatalf("rows = %v", rows)
	}
	if !strings.HasPrefix(rows[0].Text, "bin.arch") || !strings.HasSuffix(rows[0].Text, "x86") {
		t.Errorf("first row = %q", rows[0].Text)
	}
	if !strings.HasPrefix(rows[3].Text, "core.size") {
		t.Errorf("last row = %q", rows[3].Text)
	}
}

func TestFormatResult_PlainText(t *testing.T) {
	res := engine.Result{Command: engine.Disassemble(2), Text: "push rbp\nmov rbp, rsp\n"}
	rows := FormatResult(dock.Disassembly, res)
	if len(rows) != 2 || rows[1].Text != "mov rbp, rsp" {
		t.Errorf("rows = %v", rows)
	}
	if rows[0].Addr != "" {
		t.Error("plain text rows carry no address")
	}
}
