package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// View implements tea.Model
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	st := m.document.Styles()

	// The trailer modal takes over the screen
	if m.global.IsModalOpen() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Trailer.View(st, m.global.VideoID()))
	}

	l := m.computeLayout()

	var sections []string
	sections = append(sections, m.renderHeader(st))
	if l.searchH > 0 {
		sections = append(sections, m.Search.View(st))
	}
	sections = append(sections, m.renderBody(st, l))
	sections = append(sections, m.renderFooter(st))

	return strings.Join(sections, "\n")
}

// renderBody lays out [Sidebar | Grid | Inspector]. The theme menu is drawn
// over the right edge.
func (m Model) renderBody(st styles.Styles, l layout) string {
	var cols []string

	if l.sidebar.W > 0 {
		// Keep the column width fixed while the sidebar slides in
		cols = append(cols, lipgloss.NewStyle().
			Width(l.sidebar.W).
			Height(l.bodyHeight).
			Render(m.Sidebar.View(st)))
	}

	grid := m.Grid.View(st)
	var right string
	if l.inspector.W > 0 {
		right = m.Inspector.View(st, m.document.IsDark())
	}

	if m.theme.ShowThemeOptions() {
		menu := m.ThemeMenu.View(st, m.theme.Current())
		menuW := lipgloss.Width(menu)
		if l.inspector.W >= menuW {
			right = lipgloss.Place(l.inspector.W, l.bodyHeight, lipgloss.Right, lipgloss.Top, menu)
		} else {
			grid = lipgloss.NewStyle().MaxWidth(max(0, l.grid.W-menuW)).Render(grid)
			right = menu
		}
	}

	cols = append(cols, grid)
	if right != "" {
		cols = append(cols, right)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.NewStyle().MaxHeight(l.bodyHeight).Render(body)
}

func (m Model) renderHeader(st styles.Styles) string {
	left := st.Accent.Bold(true).Render("flick") + " " + st.Subtitle.Render(styles.Truncate(m.title, max(0, m.Width/2)))

	theme := "◐ " + m.theme.Current()
	right := st.Dim.Render(theme)

	gap := max(1, m.Width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter(st styles.Styles) string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = st.Error.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = st.Dim.Render(m.StatusMsg)
	case m.Loading:
		left = st.Dim.Render("Loading...")
	}

	bindings := shortHelp
	if m.ShowHelp {
		bindings = fullHelp
	}
	right := renderBindings(st, bindings)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.Width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderBindings(st styles.Styles, bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, st.HelpKey.Render(h.Key)+" "+st.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, st.Dim.Render(" · "))
}
