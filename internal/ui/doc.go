// Package ui is the Bubble Tea front end of the docking shell.
//
// Core abstractions:
//   - View: a dock body or modal with its own model, update and view (Elm-style)
//   - Pane: a View that can be told its size before rendering
//   - render: composes the rectangles from layout.Arrange into one screen
//   - FocusManager: tracks and rotates focus across visible docks
//   - Overlay: modal or popup views with a dismiss key
//
// Every state change goes through shell.Shell; this package only turns keys
// into shell requests and draws the result.
package ui
