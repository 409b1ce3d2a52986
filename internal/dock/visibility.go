package dock

// Visibility shows and hides docks and keeps every toggle action's checked
// flag equal to its widget's visibility.
type Visibility struct {
	reg *Registry
}

// NewVisibility returns a controller over reg.
func NewVisibility(reg *Registry) *Visibility {
	return &Visibility{reg: reg}
}

// ShowOnly hides every registered dock outside ids and shows every registered
// dock inside it. Unknown identities are ignored.
func (v *Visibility) ShowOnly(ids []ID) {
	want := make(map[ID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for d := range v.reg.All() {
		if want[d.ID] {
			d.Widget.Show()
		} else {
			d.Widget.Hide()
		}
	}
	v.UpdateToggleStates()
}

// HideAll hides every registered dock.
func (v *Visibility) HideAll() {
	v.ShowOnly(nil)
}

// Show makes one dock visible.
func (v *Visibility) Show(id ID) error {
	d, err := v.reg.Lookup(id)
	if err != nil {
		return err
	}
	d.Widget.Show()
	v.UpdateToggleStates()
	return nil
}

// Hide hides one dock. This is also the path for a manual close.
func (v *Visibility) Hide(id ID) error {
	d, err := v.reg.Lookup(id)
	if err != nil {
		return err
	}
	d.Widget.Hide()
	v.UpdateToggleStates()
	return nil
}

// Toggle flips one dock's visibility and returns the new state.
func (v *Visibility) Toggle(id ID) (bool, error) {
	d, err := v.reg.Lookup(id)
	if err != nil {
		return false, err
	}
	if d.Widget.IsVisible() {
		d.Widget.Hide()
	} else {
		d.Widget.Show()
	}
	v.UpdateToggleStates()
	return d.Widget.IsVisible(), nil
}

// UpdateToggleStates copies each widget's visibility into its toggle action.
// It repairs the invariant even when something else changed a widget directly.
func (v *Visibility) UpdateToggleStates() {
	for d := range v.reg.All() {
		if d.Action != nil {
			d.Action.SetChecked(d.Widget.IsVisible())
		}
	}
}

// VisibleIDs returns the visible docks in registration order.
func (v *Visibility) VisibleIDs() []ID {
	var out []ID
	for d := range v.reg.All() {
		if d.Widget.IsVisible() {
			out = append(out, d.ID)
		}
	}
	return out
}
