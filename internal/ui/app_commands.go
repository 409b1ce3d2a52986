package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"dockshell/internal/dock"
	"dockshell/internal/engine"
	"dockshell/internal/shell"
)

// queryCmd fetches the content of dock id off the UI goroutine. Content
// commands are read-only; the transport serializes them with anything the
// UI sends.
func queryCmd(ctx context.Context, sh *shell.Shell, id dock.ID, gen uint64) tea.Cmd {
	return func() tea.Msg {
		res, err := sh.Query(ctx, id)
		if err != nil {
			return contentLoadedMsg{id: id, gen: gen, err: err}
		}
		return contentLoadedMsg{id: id, gen: gen, rows: FormatResult(id, res)}
	}
}

// searchCmd runs a search for the search dock.
func searchCmd(ctx context.Context, eng engine.Engine, text string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		res, err := eng.Execute(ctx, engine.Search(text))
		if err != nil {
			return contentLoadedMsg{id: dock.Search, gen: gen, err: err}
		}
		return contentLoadedMsg{id: dock.Search, gen: gen, rows: FormatResult(dock.Search, res)}
	}
}

func releaseConstraintsCmd() tea.Cmd {
	return func() tea.Msg { return releaseConstraintsMsg{} }
}

func dispatchCmd(req shell.Request) tea.Cmd {
	return func() tea.Msg { return DispatchMsg{Request: req} }
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
