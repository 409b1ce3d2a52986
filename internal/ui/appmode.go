package ui

// AppMode decides who receives plain keys.
type AppMode int

const (
	// ModeNormal routes keys to the keybind registry, then the focused dock.
	ModeNormal AppMode = iota
	// ModeInput routes keys to the console command line.
	ModeInput
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeInput:
		return "Input"
	default:
		return "Unknown"
	}
}
