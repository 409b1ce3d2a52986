package dock

import "errors"

// ErrCapabilityDenied is returned when a dock lacks the capability an
// operation needs, usually because the layout is locked.
var ErrCapabilityDenied = errors.New("dock capability denied")

// Lock owns the single panel-lock flag. Every call site that locks or unlocks
// the layout goes through the same Lock so they cannot disagree.
type Lock struct {
	reg    *Registry
	locked bool
	saved  map[ID]Capability
}

// NewLock returns an unlocked controller over reg.
func NewLock(reg *Registry) *Lock {
	return &Lock{reg: reg}
}

// Locked returns the current flag.
func (l *Lock) Locked() bool {
	return l.locked
}

// SetLocked strips (true) or restores (false) the capability set of every dock.
// Locking remembers what each dock had so unlocking puts back exactly that.
func (l *Lock) SetLocked(locked bool) {
	if locked == l.locked {
		l.apply()
		return
	}
	if locked {
		l.saved = make(map[ID]Capability, l.reg.Len())
		for d := range l.reg.All() {
			l.saved[d.ID] = d.Widget.Capabilities()
		}
	}
	l.locked = locked
	l.apply()
	if !locked {
		l.saved = nil
	}
}

// Toggle flips the flag and returns the new value.
func (l *Lock) Toggle() bool {
	l.SetLocked(!l.locked)
	return l.locked
}

// Require returns ErrCapabilityDenied unless the dock has c.
func (l *Lock) Require(id ID, c Capability) error {
	d, err := l.reg.Lookup(id)
	if err != nil {
		return err
	}
	if !d.Widget.Capabilities().Has(c) {
		return ErrCapabilityDenied
	}
	return nil
}

func (l *Lock) apply() {
	for d := range l.reg.All() {
		if l.locked {
			d.Widget.SetCapabilities(NoCapabilities)
			continue
		}
		c, ok := l.saved[d.ID]
		if !ok {
			// registered while locked, or never locked
			c = d.Widget.Capabilities()
			if l.saved != nil {
				c = AllCapabilities
			}
		}
		d.Widget.SetCapabilities(c)
	}
}
