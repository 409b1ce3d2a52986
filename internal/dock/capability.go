package dock

import "strings"

// Capability is the set of affordances a dock exposes to the user.
type Capability uint8

const (
	Movable Capability = 1 << iota
	Floatable
	Closable
)

const (
	// NoCapabilities is what every dock reports while the layout is locked.
	NoCapabilities Capability = 0
	// AllCapabilities is the capability set a dock is created with.
	AllCapabilities = Movable | Floatable | Closable
)

// Has reports whether every flag in c2 is set in c.
func (c Capability) Has(c2 Capability) bool {
	return c&c2 == c2
}

func (c Capability) String() string {
	if c == NoCapabilities {
		return "{}"
	}
	var parts []string
	if c.Has(Movable) {
		parts = append(parts, "move")
	}
	if c.Has(Floatable) {
		parts = append(parts, "float")
	}
	if c.Has(Closable) {
		parts = append(parts, "close")
	}
	return "{" + strings.Join(parts, ",") + "}"
}
