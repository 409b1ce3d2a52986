package dock

// Widget is the panel side of a dock. The registry owns it.
type Widget interface {
	Show()
	Hide()
	IsVisible() bool
	Capabilities() Capability
	SetCapabilities(Capability)
}

// Panel is the Widget used by the terminal UI. It carries no content of its own;
// views render into the rectangle the layout assigns to it.
type Panel struct {
	visible bool
	caps    Capability
}

// Ensure Panel implements Widget.
var _ Widget = (*Panel)(nil)

// NewPanel returns a hidden panel with all capabilities.
func NewPanel() *Panel {
	return &Panel{caps: AllCapabilities}
}

func (p *Panel) Show()                        { p.visible = true }
func (p *Panel) Hide()                        { p.visible = false }
func (p *Panel) IsVisible() bool              { return p.visible }
func (p *Panel) Capabilities() Capability     { return p.caps }
func (p *Panel) SetCapabilities(c Capability) { p.caps = c }

// ToggleAction is the checkable menu entry that shows or hides a dock.
// It is referenced by a Descriptor but owned by the menu that displays it.
type ToggleAction struct {
	Label   string
	Key     string // keybind sequence, e.g. "SPC v f"
	checked bool
}

// NewToggleAction creates an unchecked action.
func NewToggleAction(label, key string) *ToggleAction {
	return &ToggleAction{Label: label, Key: key}
}

// Checked returns the checked flag.
func (a *ToggleAction) Checked() bool { return a.checked }

// SetChecked sets the checked flag.
func (a *ToggleAction) SetChecked(v bool) { a.checked = v }
