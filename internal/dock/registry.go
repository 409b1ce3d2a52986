package dock

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"dockshell/internal/logging"
)

var (
	// ErrDockNotFound is returned when an identity has no registered dock.
	ErrDockNotFound = errors.New("dock not found")
	// ErrDuplicateDock is returned when an identity is registered twice.
	ErrDuplicateDock = errors.New("dock already registered")
)

// Descriptor binds a dock identity to its widget and toggle action.
// Visibility is never stored here; it is always read from the widget.
type Descriptor struct {
	ID     ID
	Title  string
	Widget Widget
	Action *ToggleAction
}

// Visible reports the widget's current visibility.
func (d *Descriptor) Visible() bool {
	return d.Widget != nil && d.Widget.IsVisible()
}

// Registry holds every dock for the lifetime of the application.
type Registry struct {
	ctx   context.Context
	order []ID
	byID  map[ID]*Descriptor
}

// NewRegistry creates an empty registry. ctx carries the logger.
func NewRegistry(ctx context.Context) *Registry {
	return &Registry{
		ctx:  ctx,
		byID: make(map[ID]*Descriptor),
	}
}

// NewDefaultRegistry registers one hidden Panel per entry in Kinds.
func NewDefaultRegistry(ctx context.Context) *Registry {
	r := NewRegistry(ctx)
	for _, k := range Kinds {
		_ = r.Register(&Descriptor{
			ID:     k.ID,
			Title:  k.Title,
			Widget: NewPanel(),
			Action: NewToggleAction(k.Title, "SPC v "+k.Key),
		})
	}
	return r
}

// Register adds d. A second registration of the same identity is logged and
// rejected without touching the existing entry.
func (r *Registry) Register(d *Descriptor) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("register dock: empty identity")
	}
	if _, ok := r.byID[d.ID]; ok {
		logging.FromContext(r.ctx).Warn().
			Str("component", "dock").
			Str("dock", string(d.ID)).
			Msg("dock registered twice; ignoring")
		return fmt.Errorf("register %q: %w", d.ID, ErrDuplicateDock)
	}
	r.order = append(r.order, d.ID)
	r.byID[d.ID] = d
	return nil
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id ID) (*Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", id, ErrDockNotFound)
	}
	return d, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// All yields every descriptor in registration order. The sequence is lazy and
// can be ranged over any number of times.
func (r *Registry) All() iter.Seq[*Descriptor] {
	return func(yield func(*Descriptor) bool) {
		for _, id := range r.order {
			if !yield(r.byID[id]) {
				return
			}
		}
	}
}

// IDs returns the registered identities in registration order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered docks.
func (r *Registry) Len() int {
	return len(r.order)
}
