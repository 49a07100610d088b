package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/motion"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// SidebarWidth is the sidebar's full width in cells
const SidebarWidth = 24

// Listing is one sidebar entry
type Listing struct {
	Category domain.Category
	List     domain.ListType
}

// Label returns the entry's display text
func (l Listing) Label() string {
	return l.List.Label()
}

// SelectListingMsg is sent when a sidebar entry is chosen
type SelectListingMsg struct {
	Listing Listing
}

// Sidebar lists the TMDB listings of every category
type Sidebar struct {
	entries []Listing
	cursor  int
	active  int
	focused bool
	height  int

	slide   *motion.Variants
	elapsed float64
}

// NewSidebar creates a sidebar with every listing of both categories
func NewSidebar() Sidebar {
	var entries []Listing
	for _, c := range []domain.Category{domain.CategoryMovie, domain.CategoryTV} {
		for _, l := range domain.ListTypes(c) {
			entries = append(entries, Listing{Category: c, List: l})
		}
	}
	return Sidebar{entries: entries}
}

// SetActive marks the listing currently on screen
func (s *Sidebar) SetActive(l Listing) {
	for i, e := range s.entries {
		if e == l {
			s.active = i
			s.cursor = i
			return
		}
	}
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// SetHeight updates the component height
func (s *Sidebar) SetHeight(height int) {
	s.height = height
}

// SetSlide sets the slide-in descriptor and seconds since it started
func (s *Sidebar) SetSlide(v *motion.Variants, elapsed float64) {
	s.slide = v
	s.elapsed = elapsed
}

// Sliding reports whether the slide-in is still running
func (s Sidebar) Sliding() bool {
	return s.slide != nil && !motion.Progress(s.slide, s.elapsed, SidebarWidth, float64(s.height)).Done
}

// Selected returns the entry under the cursor
func (s Sidebar) Selected() Listing {
	return s.entries[s.cursor]
}

// Update handles messages
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(km, MenuKeys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(km, MenuKeys.Down):
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case key.Matches(km, MenuKeys.Select):
		s.active = s.cursor
		selected := s.entries[s.cursor]
		return s, func() tea.Msg { return SelectListingMsg{Listing: selected} }
	}
	return s, nil
}

// View renders the component
func (s Sidebar) View(st styles.Styles) string {
	style := st.InactiveBorder
	if s.focused {
		style = st.ActiveBorder
	}

	var b strings.Builder
	var category domain.Category
	for i, e := range s.entries {
		if e.Category != category {
			if category != "" {
				b.WriteString("\n")
			}
			category = e.Category
			heading := "Movies"
			if category == domain.CategoryTV {
				heading = "TV Shows"
			}
			b.WriteString(st.Accent.Bold(true).Render(heading) + "\n")
		}

		label := styles.Pad(e.Label(), SidebarWidth-6)
		switch {
		case i == s.cursor && s.focused:
			b.WriteString(st.SelectedItem.Render(label))
		case i == s.active:
			b.WriteString(st.Accent.Padding(0, 1).Render(label))
		default:
			b.WriteString(st.NormalItem.Render(label))
		}
		b.WriteString("\n")
	}

	frameW, frameH := style.GetFrameSize()
	view := style.
		Width(SidebarWidth - frameW).
		Height(max(0, s.height-frameH)).
		Render(strings.TrimRight(b.String(), "\n"))

	// Slide in from the left by revealing a growing prefix
	frame := motion.Progress(s.slide, s.elapsed, SidebarWidth, float64(s.height))
	visible := SidebarWidth + int(frame.X)
	if visible <= 0 {
		return ""
	}
	if visible < SidebarWidth {
		return lipgloss.NewStyle().MaxWidth(visible).Render(view)
	}
	return view
}

// IndexAt selects the entry drawn on line y, counted from the sidebar's
// top border. It returns false when y holds no entry.
func (s *Sidebar) IndexAt(y int) (Listing, bool) {
	line := 1 // top border
	var category domain.Category
	for i, e := range s.entries {
		if e.Category != category {
			if category != "" {
				line++ // blank separator
			}
			category = e.Category
			line++ // heading
		}
		if line == y {
			s.cursor = i
			s.active = i
			return e, true
		}
		line++
	}
	return Listing{}, false
}
