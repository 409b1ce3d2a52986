package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dockshell/internal/dock"
	"dockshell/internal/layout"
	"dockshell/internal/ui/textutil"
)

// innerSize is the body size of a pane drawn in r: the border takes a cell
// on each side and the tab bar one line.
func innerSize(r layout.Rect) (int, int) {
	return max(r.W-2, 0), max(r.H-3, 0)
}

// View draws the panes, the status line and the topmost overlay.
func (a *appModelAdapter) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	if top, ok := a.Overlays.Peek(); ok {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, top.View.View())
	}

	body := a.renderDocks(a.width, a.bodyHeight())
	if a.KeyHandler.LeaderWaiting {
		help := RenderKeybindHelp(a.KeyHandler, a.Mode, a.width)
		body = overlayBottom(body, help, a.width)
	}
	return body + "\n" + a.renderStatus()
}

// renderDocks composes the placements row by row. Placements tile the area,
// so each screen line is the matching lines of the panes crossing it, left
// to right.
func (a *AppModel) renderDocks(width, height int) string {
	if height <= 0 {
		return ""
	}
	if len(a.placements) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			Styles.Empty.Render("No docks visible. SPC v l picks one, SPC l r resets the layout."))
	}

	boxes := make([][]string, len(a.placements))
	order := make([]int, len(a.placements))
	for i, p := range a.placements {
		boxes[i] = a.renderPlacement(p)
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return a.placements[x].Rect.X - a.placements[y].Rect.X
	})

	rows := make([]string, height)
	for y := range rows {
		var b strings.Builder
		for _, i := range order {
			r := a.placements[i].Rect
			if y >= r.Y && y < r.Y+r.H {
				b.WriteString(boxes[i][y-r.Y])
			}
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

// renderPlacement draws one tab group as exactly Rect.H lines of Rect.W
// columns.
func (a *AppModel) renderPlacement(p layout.Placement) []string {
	r := p.Rect
	w, h := innerSize(r)
	if r.W < 3 || r.H < 3 {
		return fitStyled(nil, r.W, r.H)
	}

	shown := shownTab(p)
	var body []string
	if pane, ok := a.panes[shown]; ok {
		body = fitStyled(strings.Split(pane.View(), "\n"), w, h)
	} else {
		body = fitStyled(nil, w, h)
	}
	tabs := fitStyled([]string{a.renderTabBar(p.Tabs, shown)}, w, 1)

	var content []string
	if a.shell.TabsOnTop() {
		content = append(tabs, body...)
	} else {
		content = append(body, tabs...)
	}

	style := Styles.Pane
	if shown == a.Focus.Current {
		style = Styles.PaneFocused
	}
	return fitStyled(strings.Split(style.Render(strings.Join(content, "\n")), "\n"), r.W, r.H)
}

func (a *AppModel) renderTabBar(tabs []dock.ID, shown dock.ID) string {
	parts := make([]string, 0, len(tabs))
	for _, id := range tabs {
		title := string(id)
		if d, err := a.shell.Registry().Lookup(id); err == nil {
			title = d.Title
		}
		if id == shown {
			parts = append(parts, Styles.TabActive.Render(title))
		} else {
			parts = append(parts, Styles.TabInactive.Render(title))
		}
	}
	return strings.Join(parts, Styles.Muted.Render(" │ "))
}

func (a *AppModel) renderStatus() string {
	project := a.shell.Project()
	if project == "" {
		project = "no project"
	}
	if a.shell.Dirty() {
		project += "*"
	}
	left := Styles.Status.Render(project)
	if a.shell.Lock().Locked() {
		left += Styles.Muted.Render(" [locked]")
	}
	if a.Mode == ModeInput {
		left += Styles.Muted.Render(" -- INPUT --")
	}

	right := Styles.Hint.Render("SPC: menu")
	if a.Status != "" {
		if a.StatusIsError {
			right = Styles.Error.Render(a.Status)
		} else {
			right = Styles.Hint.Render(a.Status)
		}
	}
	gap := a.width - textutil.VisualWidthStyled(left) - textutil.VisualWidthStyled(right)
	if gap < 1 {
		return fitStyled([]string{left + " " + right}, a.width, 1)[0]
	}
	return left + strings.Repeat(" ", gap) + right
}

// overlayBottom replaces the last lines of body with block.
func overlayBottom(body, block string, width int) string {
	lines := strings.Split(body, "\n")
	over := fitStyled(strings.Split(block, "\n"), width, strings.Count(block, "\n")+1)
	start := max(len(lines)-len(over), 0)
	for i := start; i < len(lines); i++ {
		lines[i] = over[i-start]
	}
	return strings.Join(lines, "\n")
}

// fitStyled is textutil.FitLines for lines that may carry ANSI styling.
func fitStyled(lines []string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	out := make([]string, height)
	clip := lipgloss.NewStyle().MaxWidth(width)
	for i := range out {
		var l string
		if i < len(lines) {
			l = lines[i]
		}
		if textutil.VisualWidthStyled(l) > width {
			l = clip.Render(l)
		}
		if pad := width - textutil.VisualWidthStyled(l); pad > 0 {
			l += strings.Repeat(" ", pad)
		}
		out[i] = l
	}
	return out
}
