package ui

import "dockshell/internal/dock"

// FocusManager tracks and rotates focus across the visible docks.
type FocusManager struct {
	Current  dock.ID   // focused dock
	Order    []dock.ID // rotation order, screen order of the panes
	OnChange func(from, to dock.ID)
}

// SetOrder replaces the rotation order. If the focused dock is gone, focus
// moves to the first dock in the new order.
func (f *FocusManager) SetOrder(order []dock.ID) {
	f.Order = order
	if f.indexOf(f.Current) >= 0 {
		return
	}
	if len(order) == 0 {
		f.move("")
		return
	}
	f.move(order[0])
}

// Next advances focus to the next dock in order and returns it.
func (f *FocusManager) Next() dock.ID {
	return f.step(1)
}

// Prev moves focus to the previous dock in order.
func (f *FocusManager) Prev() dock.ID {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) dock.ID {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.indexOf(f.Current)
	if idx < 0 && delta < 0 {
		idx = 0
	}
	n := len(f.Order)
	f.move(f.Order[((idx+delta)%n+n)%n])
	return f.Current
}

// SetFocus focuses id. Returns false if id is not in the order.
func (f *FocusManager) SetFocus(id dock.ID) bool {
	if f.indexOf(id) < 0 {
		return false
	}
	f.move(id)
	return true
}

func (f *FocusManager) move(to dock.ID) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}

func (f *FocusManager) indexOf(id dock.ID) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}
