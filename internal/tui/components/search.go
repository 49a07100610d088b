package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// SearchSubmitMsg asks for a server search
type SearchSubmitMsg struct {
	Query string
}

// SuggestionChosenMsg is sent when a local suggestion is picked
type SuggestionChosenMsg struct {
	Movie domain.Movie
}

// SearchQueryChangedMsg reports the input text after each edit
type SearchQueryChangedMsg struct {
	Query string
}

var searchKeys = struct {
	Escape key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
}{
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/C-p", "previous")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓/C-n", "next")),
}

// SearchBar is the search input with instant suggestions from titles
// already loaded
type SearchBar struct {
	input       textinput.Model
	suggestions []domain.Movie
	cursor      int // -1 = the typed query itself
	visible     bool
	width       int
	prevQuery   string
}

// NewSearchBar creates a hidden search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies and shows..."
	ti.CharLimit = 100
	ti.Prompt = "/ "

	return SearchBar{input: ti, cursor: -1}
}

// Show makes the search bar visible and focuses the input
func (s *SearchBar) Show() tea.Cmd {
	s.visible = true
	s.input.SetValue("")
	s.suggestions = nil
	s.cursor = -1
	s.prevQuery = ""
	return s.input.Focus()
}

// Hide hides the search bar
func (s *SearchBar) Hide() {
	s.visible = false
	s.input.Blur()
}

// IsVisible returns true if the search bar is visible
func (s SearchBar) IsVisible() bool {
	return s.visible
}

// Query returns the current input
func (s SearchBar) Query() string {
	return s.input.Value()
}

// SetSuggestions replaces the suggestion list
func (s *SearchBar) SetSuggestions(movies []domain.Movie) {
	s.suggestions = movies
	s.cursor = -1
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(10, width-10)
}

// Update handles messages
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	if !s.visible {
		return s, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, searchKeys.Escape):
			s.Hide()
			return s, nil
		case key.Matches(km, searchKeys.Up):
			if s.cursor > -1 {
				s.cursor--
			}
			return s, nil
		case key.Matches(km, searchKeys.Down):
			if s.cursor < len(s.suggestions)-1 {
				s.cursor++
			}
			return s, nil
		case key.Matches(km, searchKeys.Enter):
			s.Hide()
			if s.cursor >= 0 {
				chosen := s.suggestions[s.cursor]
				return s, func() tea.Msg { return SuggestionChosenMsg{Movie: chosen} }
			}
			query := strings.TrimSpace(s.input.Value())
			if query == "" {
				return s, nil
			}
			return s, func() tea.Msg { return SearchSubmitMsg{Query: query} }
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if q := s.input.Value(); q != s.prevQuery {
		s.prevQuery = q
		changed := func() tea.Msg { return SearchQueryChangedMsg{Query: q} }
		return s, tea.Batch(cmd, changed)
	}
	return s, cmd
}

// View renders the search bar and its suggestions
func (s SearchBar) View(st styles.Styles) string {
	if !s.visible {
		return ""
	}

	s.input.PromptStyle = st.Accent
	s.input.TextStyle = st.Title.UnsetBold()
	s.input.PlaceholderStyle = st.Dim

	var lines []string
	lines = append(lines, s.input.View())

	textWidth := max(10, s.width-8)
	for i, m := range s.suggestions {
		label := m.GetTitle()
		if year := m.GetYear(); year > 0 {
			label = fmt.Sprintf("%s (%d)", label, year)
		}
		label = styles.Pad(label, textWidth)
		if i == s.cursor {
			lines = append(lines, st.SelectedItem.Render(label))
		} else {
			lines = append(lines, st.NormalItem.Render(label))
		}
	}
	if len(s.suggestions) > 0 {
		lines = append(lines, st.Dim.Render("↑/↓ pick a loaded title · enter searches TMDB"))
	}

	return st.ActiveBorder.Width(max(0, s.width-2)).Render(strings.Join(lines, "\n"))
}
