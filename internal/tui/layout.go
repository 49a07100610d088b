package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/interact"
	"github.com/mmcdole/flick/internal/tui/components"
)

const (
	// Header and footer take one line each
	ChromeHeight = 2

	// Inspector share of the space right of the sidebar
	InspectorPercent  = 40
	MinInspectorWidth = 32
)

// layout holds the screen regions of one frame
type layout struct {
	bodyY      int
	bodyHeight int
	searchH    int

	sidebar   interact.Rect
	grid      interact.Rect
	inspector interact.Rect // zero width when hidden
}

// computeLayout splits the screen. The inspector is dropped on small screens.
func (m Model) computeLayout() layout {
	var l layout

	if m.Search.IsVisible() {
		l.searchH = lipgloss.Height(m.Search.View(m.document.Styles()))
	}
	l.bodyY = 1 + l.searchH
	l.bodyHeight = max(0, m.Height-ChromeHeight-l.searchH)

	sidebarW := 0
	if m.global.ShowSidebar() && m.Width >= 2*components.SidebarWidth {
		sidebarW = components.SidebarWidth
	}
	rest := m.Width - sidebarW

	inspectorW := 0
	if !m.motion.IsMiniScreen() {
		inspectorW = max(MinInspectorWidth, rest*InspectorPercent/100)
		if rest-inspectorW < components.CardWidth+components.BorderWidth {
			inspectorW = 0
		}
	}

	l.sidebar = interact.Rect{X: 0, Y: l.bodyY, W: sidebarW, H: l.bodyHeight}
	l.grid = interact.Rect{X: sidebarW, Y: l.bodyY, W: rest - inspectorW, H: l.bodyHeight}
	l.inspector = interact.Rect{X: sidebarW + l.grid.W, Y: l.bodyY, W: inspectorW, H: l.bodyHeight}
	return l
}

// updateLayout resizes components to the current layout
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	l := m.computeLayout()

	m.Search.SetWidth(m.Width)
	m.Sidebar.SetHeight(l.bodyHeight)
	m.Grid.SetSize(l.grid.W, l.grid.H)
	m.Inspector.SetSize(l.inspector.W, l.inspector.H)
	m.Trailer.SetWidth(m.Width)
}

// modalRect is where the trailer modal is drawn
func (m Model) modalRect() interact.Rect {
	w, h := lipgloss.Size(m.Trailer.View(m.document.Styles(), m.global.VideoID()))
	return interact.Rect{X: (m.Width - w) / 2, Y: (m.Height - h) / 2, W: w, H: h}
}

// menuRect is where the theme menu is drawn: top right of the body
func (m Model) menuRect() interact.Rect {
	w, h := lipgloss.Size(m.ThemeMenu.View(m.document.Styles(), m.theme.Current()))
	return interact.Rect{X: m.Width - w, Y: m.computeLayout().bodyY, W: w, H: h}
}

// bindRegions points the outside-click hooks at the overlays as drawn
func (m Model) bindRegions() {
	if m.global.IsModalOpen() {
		m.hooks.modalClick.Bind(m.modalRect())
	} else {
		m.hooks.modalClick.Unbind()
	}
	if m.theme.ShowThemeOptions() {
		m.hooks.menuClick.Bind(m.menuRect())
	} else {
		m.hooks.menuClick.Unbind()
	}
}
