package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dockshell/internal/shell"
)

// ConfirmModal asks a yes/no question. Enter or y confirms; Esc or n cancels.
// An optional third choice answers to its own key.
type ConfirmModal struct {
	Title       string
	Label       string
	Details     string // Optional warning details
	OnConfirm   func() tea.Msg
	AltKey      string
	AltHint     string
	OnAlt       func() tea.Msg
	boxStyle    lipgloss.Style
	titleStyle  lipgloss.Style
	detailStyle lipgloss.Style
}

var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a generic confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:       title,
		Label:       label,
		OnConfirm:   onConfirm,
		boxStyle:    Styles.BoxDanger,
		titleStyle:  Styles.TitleWarning,
		detailStyle: Styles.Details,
	}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// WithAlternative adds a third choice bound to key.
func (m *ConfirmModal) WithAlternative(key, hint string, fn func() tea.Msg) *ConfirmModal {
	m.AltKey = key
	m.AltHint = hint
	m.OnAlt = fn
	return m
}

// NewShellConfirmModal asks the question carried by a shell confirmation
// error and, on yes, re-sends the request as confirmed.
func NewShellConfirmModal(cerr *shell.ConfirmError) *ConfirmModal {
	req := cerr.Request
	title := "Confirm"
	switch req.Action {
	case shell.ActionResetSettings:
		title = "Reset settings?"
	case shell.ActionQuit:
		title = "Quit?"
	case shell.ActionRunScript:
		title = "Run script?"
	}
	m := NewConfirmModal(title, cerr.Prompt, func() tea.Msg {
		return ConfirmedMsg{Request: req}
	})
	if req.Action == shell.ActionQuit {
		m.WithAlternative("s", "save and quit", func() tea.Msg {
			return ConfirmedMsg{Request: shell.Request{Action: shell.ActionSaveAndQuit}}
		})
	}
	return m
}

func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		case m.AltKey:
			if m.OnAlt != nil {
				return m, m.OnAlt
			}
		}
	}
	return m, nil
}

func (m *ConfirmModal) View() string {
	content := m.titleStyle.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + m.detailStyle.Render(m.Details)
	}
	hint := "y/Enter: confirm  n/Esc: cancel"
	if m.OnAlt != nil {
		hint = "y/Enter: confirm  " + m.AltKey + ": " + m.AltHint + "  n/Esc: cancel"
	}
	content += "\n\n" + Styles.Hint.Render(hint)
	return m.boxStyle.Render(content)
}
