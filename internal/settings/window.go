package settings

// Window keys.
const (
	KeyGeometry   = "geometry"
	KeyState      = "state"
	KeyPanelLock  = "panelLock"
	KeyTabsOnTop  = "tabsOnTop"
	KeyResponsive = "responsive"
)

// Window is the window-level state saved at exit and restored at startup.
// A nil Geometry or State means the key was missing; callers fall back to
// their defaults.
type Window struct {
	Geometry   []byte
	State      []byte
	PanelLock  bool
	TabsOnTop  bool
	Responsive bool
}

// LoadWindow reads the window keys, using defaults for any that are missing.
func LoadWindow(s *Store) Window {
	return Window{
		Geometry:   s.Bytes(KeyGeometry),
		State:      s.Bytes(KeyState),
		PanelLock:  s.Bool(KeyPanelLock, false),
		TabsOnTop:  s.Bool(KeyTabsOnTop, false),
		Responsive: s.Bool(KeyResponsive, false),
	}
}

// SaveWindow writes the window keys and syncs the file.
func SaveWindow(s *Store, w Window) error {
	s.SetBytes(KeyGeometry, w.Geometry)
	s.SetBytes(KeyState, w.State)
	s.Set(KeyPanelLock, w.PanelLock)
	s.Set(KeyTabsOnTop, w.TabsOnTop)
	s.Set(KeyResponsive, w.Responsive)
	return s.Sync()
}
