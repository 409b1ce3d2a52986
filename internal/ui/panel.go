package ui

// Pane is a View that fills a dock rectangle. SetSize is called with the
// inner size (inside the border, minus the tab bar) before every render.
type Pane interface {
	View
	SetSize(width, height int)
}
