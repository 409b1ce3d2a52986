package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModal reads one line of text (an address, a file, a project name).
type PromptModal struct {
	title    string
	input    textinput.Model
	onSubmit func(string) tea.Msg
}

var _ View = (*PromptModal)(nil)

// NewPromptModal creates a prompt; onSubmit receives the trimmed, non-empty
// input.
func NewPromptModal(title, placeholder, initial string, onSubmit func(string) tea.Msg) *PromptModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = 40
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return &PromptModal{title: title, input: ti, onSubmit: onSubmit}
}

// Value is the current input.
func (m *PromptModal) Value() string {
	return m.input.Value()
}

func (m *PromptModal) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PromptModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				return m, nil
			}
			submit := m.onSubmit
			return m, tea.Sequence(
				func() tea.Msg { return DismissModalMsg{} },
				func() tea.Msg { return submit(v) },
			)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PromptModal) View() string {
	content := Styles.Title.Render(m.title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: ok  Esc: cancel")
	return Styles.Box.Render(content)
}
