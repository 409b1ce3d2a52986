package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"dockshell/internal/dock"
)

// PickPurpose says what a picked dock is for.
type PickPurpose int

const (
	PickToggle PickPurpose = iota
	PickMoveTarget
	PickFloat
)

// DockPickerModal picks a dock by fuzzy-matching its title.
type DockPickerModal struct {
	list    list.Model
	purpose PickPurpose
	source  dock.ID
}

type dockItem struct {
	id      dock.ID
	title   string
	visible bool
}

func (d dockItem) FilterValue() string { return d.title }
func (d dockItem) Title() string {
	if d.visible {
		return "● " + d.title
	}
	return "○ " + d.title
}
func (d dockItem) Description() string { return string(d.id) }

var _ View = (*DockPickerModal)(nil)

// NewDockPickerModal lists every registered dock. source is the dock a move
// or float applies to.
func NewDockPickerModal(reg *dock.Registry, purpose PickPurpose, source dock.ID) *DockPickerModal {
	var items []list.Item
	for d := range reg.All() {
		if purpose == PickMoveTarget && d.ID == source {
			continue
		}
		items = append(items, dockItem{id: d.ID, title: d.Title, visible: d.Visible()})
	}
	l := list.New(items, NewCompactListDelegate(), 36, 14)
	switch purpose {
	case PickMoveTarget:
		l.Title = "Move " + string(source) + " onto"
	case PickFloat:
		l.Title = "Float dock"
	default:
		l.Title = "Toggle dock"
	}
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Filter = fuzzyFilter
	l.Styles.Title = Styles.Title
	return &DockPickerModal{list: l, purpose: purpose, source: source}
}

// fuzzyFilter ranks dock titles with sahilm/fuzzy, best match first.
func fuzzyFilter(term string, targets []string) []list.Rank {
	matches := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(matches))
	for i, m := range matches {
		ranks[i] = list.Rank{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return ranks
}

func (m *DockPickerModal) Init() tea.Cmd {
	return nil
}

func (m *DockPickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			sel, ok := m.list.SelectedItem().(dockItem)
			if !ok {
				return m, nil
			}
			picked := DockPickedMsg{ID: sel.id, Purpose: m.purpose, Source: m.source}
			return m, tea.Sequence(
				func() tea.Msg { return DismissModalMsg{} },
				func() tea.Msg { return picked },
			)
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *DockPickerModal) View() string {
	help := "/: filter  Enter: select  Esc: cancel"
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
