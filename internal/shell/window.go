package shell

import (
	"context"

	"dockshell/internal/logging"
	"dockshell/internal/settings"
)

// RestoreWindow applies saved window settings. The layout falls back to the
// default when there is no saved state, the state does not decode, or
// resetLayout is set. It returns the saved geometry, if any.
func (s *Shell) RestoreWindow(ctx context.Context, w settings.Window, resetLayout bool) (settings.Geometry, bool) {
	log := logging.FromContext(ctx).With().Str("component", "shell").Logger()

	restored := false
	if !resetLayout && w.State != nil {
		if err := s.layout.Restore(w.State); err != nil {
			log.Warn().Err(err).Msg("saved layout unusable; using default")
		} else {
			restored = true
		}
	}
	if !restored {
		s.layout.ResetToDefault()
	}

	s.lock.SetLocked(w.PanelLock)
	s.tabsOnTop = w.TabsOnTop
	s.responsive = w.Responsive

	var geo settings.Geometry
	if w.Geometry == nil {
		return geo, false
	}
	if err := geo.UnmarshalBinary(w.Geometry); err != nil {
		log.Warn().Err(err).Msg("saved geometry unusable")
		return settings.Geometry{}, false
	}
	return geo, true
}

// SaveWindow persists the layout, flags and geometry.
func (s *Shell) SaveWindow(geo settings.Geometry) error {
	state, err := s.layout.Save()
	if err != nil {
		return err
	}
	blob, err := geo.MarshalBinary()
	if err != nil {
		return err
	}
	return settings.SaveWindow(s.store, settings.Window{
		Geometry:   blob,
		State:      state,
		PanelLock:  s.lock.Locked(),
		TabsOnTop:  s.tabsOnTop,
		Responsive: s.responsive,
	})
}
