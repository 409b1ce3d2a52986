// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// VisualWidthStyled is VisualWidth for strings carrying ANSI escapes.
func VisualWidthStyled(s string) int {
	return lipgloss.Width(s)
}

// Truncate cuts s to at most maxWidth columns, ending in an ellipsis when
// anything was dropped. Tabs are expanded first so widths line up.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	if VisualWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= VisualWidth(TruncateEllipsis) {
		return TruncateEllipsis
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRightVisual pads or truncates s to exactly targetWidth columns.
func PadRightVisual(s string, targetWidth int) string {
	s = Truncate(s, targetWidth)
	if w := VisualWidth(s); w < targetWidth {
		return s + strings.Repeat(" ", targetWidth-w)
	}
	return s
}

// PadLeftVisual right-aligns s in targetWidth columns.
func PadLeftVisual(s string, targetWidth int) string {
	s = Truncate(s, targetWidth)
	if w := VisualWidth(s); w < targetWidth {
		return strings.Repeat(" ", targetWidth-w) + s
	}
	return s
}

// FitLines returns exactly height lines of exactly width columns: long lines
// are truncated, short ones padded, missing ones blank.
func FitLines(lines []string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	out := make([]string, height)
	for i := range out {
		var l string
		if i < len(lines) {
			l = lines[i]
		}
		out[i] = PadRightVisual(l, width)
	}
	return out
}
