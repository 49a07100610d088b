package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// ThemeSystem asks for the terminal's own color scheme
const ThemeSystem = "System"

// ThemeOptions lists the theme menu entries in display order
var ThemeOptions = []string{domain.ThemeDark, domain.ThemeLight, ThemeSystem}

// ThemeChosenMsg is sent when a theme menu entry is picked
type ThemeChosenMsg struct {
	Name string
}

// ThemeMenu is the theme picker dropdown
type ThemeMenu struct {
	cursor int
}

// NewThemeMenu creates the menu
func NewThemeMenu() ThemeMenu {
	return ThemeMenu{}
}

// Reset moves the cursor to the current theme
func (t *ThemeMenu) Reset(current string) {
	t.cursor = 0
	for i, o := range ThemeOptions {
		if o == current {
			t.cursor = i
		}
	}
}

// Cursor returns the highlighted entry
func (t ThemeMenu) Cursor() int {
	return t.cursor
}

// Update handles messages
func (t ThemeMenu) Update(msg tea.Msg) (ThemeMenu, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch {
	case key.Matches(km, MenuKeys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(km, MenuKeys.Down):
		if t.cursor < len(ThemeOptions)-1 {
			t.cursor++
		}
	case key.Matches(km, MenuKeys.Select):
		return t, t.choose(t.cursor)
	}
	return t, nil
}

// ClickLine picks the entry drawn on line y of the menu box, if any
func (t ThemeMenu) ClickLine(y int) tea.Cmd {
	// border + padding + title + margin
	idx := y - 4
	if idx < 0 || idx >= len(ThemeOptions) {
		return nil
	}
	return t.choose(idx)
}

func (t ThemeMenu) choose(i int) tea.Cmd {
	name := ThemeOptions[i]
	return func() tea.Msg { return ThemeChosenMsg{Name: name} }
}

// View renders the menu box
func (t ThemeMenu) View(st styles.Styles, current string) string {
	var b strings.Builder
	b.WriteString(st.ModalTitle.Render("Theme"))
	b.WriteString("\n")

	for i, o := range ThemeOptions {
		label := "  " + o
		if o == current {
			label = "● " + o
		}
		label = styles.Pad(label, 12)
		if i == t.cursor {
			b.WriteString(st.SelectedItem.Render(label))
		} else {
			b.WriteString(st.NormalItem.Render(label))
		}
		if i < len(ThemeOptions)-1 {
			b.WriteString("\n")
		}
	}

	return st.Modal.Render(b.String())
}
