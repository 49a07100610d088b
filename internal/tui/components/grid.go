package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/motion"
	"github.com/mmcdole/flick/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title line plus one scroll indicator line above the cards
	GridHeaderLines = 2
	// Scroll indicator below the cards
	GridFooterLines = 1

	CardWidth  = 26
	CardHeight = 5
)

// Grid shows a page of movies or shows as cards
type Grid struct {
	movies []domain.Movie
	title  string

	// Selection
	cursor    int
	rowOffset int

	// Dimensions
	width   int
	height  int
	focused bool
	loading bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into movies

	// Reveal animation
	container *motion.Variants
	card      *motion.Variants
	elapsed   float64
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "

	return Grid{
		filterInput: ti,
	}
}

// SetMovies replaces the grid content
func (g *Grid) SetMovies(movies []domain.Movie, title string) {
	g.movies = movies
	g.title = title
	g.cursor = 0
	g.rowOffset = 0
	g.loading = false
	g.clearFilter()
}

// SetTitle sets the header line
func (g *Grid) SetTitle(title string) {
	g.title = title
}

// SetLoading toggles the loading placeholder
func (g *Grid) SetLoading(loading bool) {
	g.loading = loading
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// SetReveal sets the card reveal descriptors. Nil descriptors show cards
// immediately.
func (g *Grid) SetReveal(container, card *motion.Variants) {
	g.container = container
	g.card = card
}

// SetElapsed sets seconds since the content appeared
func (g *Grid) SetElapsed(seconds float64) {
	g.elapsed = seconds
}

// Animating reports whether any visible card is still revealing
func (g Grid) Animating() bool {
	if g.card == nil {
		return false
	}
	last := g.visibleRows()*g.Columns() - 1
	delay := motion.ChildDelay(g.container, max(last, 0))
	return !motion.Progress(g.card, g.elapsed-delay, CardWidth, CardHeight).Done
}

// Columns returns how many cards fit in one row
func (g Grid) Columns() int {
	inner := g.width - BorderWidth
	return max(1, inner/CardWidth)
}

func (g Grid) visibleRows() int {
	inner := g.height - BorderHeight - GridHeaderLines - GridFooterLines
	if g.filterActive {
		inner--
	}
	return max(1, inner/CardHeight)
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	count := g.itemCount()
	if count == 0 {
		g.cursor = 0
		return
	}
	g.cursor = max(0, min(pos, count-1))
	g.ensureVisible()
}

// Selected returns the movie under the cursor
func (g Grid) Selected() (domain.Movie, bool) {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return domain.Movie{}, false
	}
	return g.movies[g.mapIndex(g.cursor)], true
}

// Len returns the number of items after filtering
func (g Grid) Len() int {
	return g.itemCount()
}

// IndexAt maps a cell relative to the grid's top-left corner to an item
// position, or -1 when no card is there
func (g Grid) IndexAt(x, y int) int {
	x -= BorderWidth / 2
	y -= BorderHeight/2 + GridHeaderLines
	if x < 0 || y < 0 {
		return -1
	}

	col, row := x/CardWidth, y/CardHeight
	if col >= g.Columns() || row >= g.visibleRows() {
		return -1
	}

	idx := (g.rowOffset+row)*g.Columns() + col
	if idx >= g.itemCount() {
		return -1
	}
	return idx
}

// ensureVisible scrolls so the cursor's row is on screen
func (g *Grid) ensureVisible() {
	row := g.cursor / g.Columns()
	rows := g.visibleRows()
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+rows {
		g.rowOffset = row - rows + 1
	}
}

func (g *Grid) move(delta int) {
	count := g.itemCount()
	if count == 0 {
		return
	}
	g.cursor = max(0, min(g.cursor+delta, count-1))
	g.ensureVisible()
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.ensureVisible()
}

// IsFiltering returns true if filter mode is active
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
}

// applyFilter filters items based on the current query
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	titles := make([]string, len(g.movies))
	for i, m := range g.movies {
		titles[i] = strings.ToLower(m.GetTitle())
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	g.cursor = 0
	g.rowOffset = 0
}

func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.movies)
}

func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	if g.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, GridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(msg, GridKeys.Enter):
				g.filterInput.Blur()
				return g, nil
			case msg.Type == tea.KeyBackspace && g.filterInput.Value() == "":
				g.clearFilter()
				return g, nil
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	if g.filterActive && key.Matches(km, GridKeys.Escape) {
		g.clearFilter()
		return g, nil
	}

	cols := g.Columns()
	switch {
	case key.Matches(km, GridKeys.Filter):
		g.ToggleFilter()
	case key.Matches(km, GridKeys.Up):
		g.move(-cols)
	case key.Matches(km, GridKeys.Down):
		g.move(cols)
	case key.Matches(km, GridKeys.Left):
		g.move(-1)
	case key.Matches(km, GridKeys.Right):
		g.move(1)
	case key.Matches(km, GridKeys.Home):
		g.cursor = 0
		g.rowOffset = 0
	case key.Matches(km, GridKeys.End):
		g.move(g.itemCount())
	case key.Matches(km, GridKeys.PageUp):
		g.move(-cols * g.visibleRows())
	case key.Matches(km, GridKeys.PageDown):
		g.move(cols * g.visibleRows())
	}

	return g, nil
}

// View renders the component
func (g Grid) View(st styles.Styles) string {
	style := st.InactiveBorder
	if g.focused {
		style = st.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(0, g.width-frameW)).
		Height(max(0, g.height-frameH)).
		Render(g.renderCards(st))
}

func (g Grid) renderCards(st styles.Styles) string {
	innerWidth := max(1, g.width-BorderWidth)

	titleLine := " "
	if g.title != "" {
		titleLine = st.Accent.Render(styles.Truncate(g.title, innerWidth))
	}

	count := g.itemCount()
	if g.loading && len(g.movies) == 0 {
		return titleLine + "\n \n" + st.Dim.Render("Loading...")
	}
	if count == 0 {
		empty := "No titles"
		if g.filterActive && g.filterQuery != "" {
			empty = "No matches"
		}
		return g.withFilterBar(st, titleLine+"\n \n"+st.Dim.Render(empty))
	}

	cols := g.Columns()
	rows := g.visibleRows()
	start := g.rowOffset * cols
	end := min(start+rows*cols, count)

	var lines []string
	for rowStart := start; rowStart < end; rowStart += cols {
		var cards []string
		for i := rowStart; i < min(rowStart+cols, end); i++ {
			cards = append(cards, g.renderCard(st, i, i-start))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	header := " "
	if g.rowOffset > 0 {
		header = st.Dim.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = st.Dim.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	return g.withFilterBar(st, content)
}

func (g Grid) withFilterBar(st styles.Styles, content string) string {
	if !g.filterActive {
		return content
	}
	g.filterInput.PromptStyle = st.FilterPrompt
	g.filterInput.TextStyle = st.Filter
	bar := g.filterInput.View()
	if g.filterQuery != "" {
		bar += st.Dim.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.movies)))
	}
	return content + "\n" + bar
}

// renderCard draws the card at position i; slot is its place on screen
func (g Grid) renderCard(st styles.Styles, i, slot int) string {
	m := g.movies[g.mapIndex(i)]
	style := st.Card
	if i == g.cursor {
		style = st.CardSelected
	}

	textWidth := CardWidth - 4 // border + padding
	title := styles.Truncate(m.GetTitle(), textWidth)

	meta := ""
	if year := m.GetYear(); year > 0 {
		meta = fmt.Sprintf("%d", year)
	}
	rating := fmt.Sprintf("★ %.1f", m.VoteAverage)
	meta = styles.Pad(meta, textWidth-lipgloss.Width(rating)) + st.Rating.Render(rating)

	body := st.Title.Render(title) + "\n" + st.Subtitle.Render(meta) + "\n" + st.RenderVoteBar(m.VoteAverage, textWidth)

	frame := motion.Progress(g.card, g.elapsed-motion.ChildDelay(g.container, slot), CardWidth, CardHeight)
	switch {
	case frame.Opacity < 0.35:
		body = "\n\n"
	case frame.Opacity < 1:
		body = st.Dim.Render(title) + "\n\n"
	}

	return style.Width(CardWidth - 2).Render(body)
}
