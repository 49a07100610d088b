package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/interact"
	"github.com/mmcdole/flick/internal/launcher"
	"github.com/mmcdole/flick/internal/motion"
	"github.com/mmcdole/flick/internal/service"
	"github.com/mmcdole/flick/internal/state"
	"github.com/mmcdole/flick/internal/tmdb"
	"github.com/mmcdole/flick/internal/tui/components"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// Pane represents which pane has keyboard focus
type Pane int

const (
	PaneGrid Pane = iota
	PaneSidebar
)

// Status message lifetimes
const (
	statusDuration      = 3 * time.Second
	errorStatusDuration = 6 * time.Second
)

// Options wires the model to its services and shared state
type Options struct {
	Shows    *service.ShowService
	Search   *service.SearchService
	Theme    *state.Theme
	Global   *state.Global
	Document *styles.Document
	Launcher *launcher.Launcher

	// Listing shown at startup
	Category domain.Category
	List     domain.ListType

	// CellWidthPx converts terminal columns to logical pixels for the
	// mini-screen breakpoint
	CellWidthPx int

	Clock  clockwork.Clock
	Logger *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	shows    *service.ShowService
	search   *service.SearchService
	launcher *launcher.Launcher

	// Shared state
	theme    *state.Theme
	global   *state.Global
	document *styles.Document
	motion   *motion.Motion

	// Input routing for overlays
	dispatcher *interact.Dispatcher
	hooks      *overlayHooks

	// UI Components
	Grid      components.Grid
	Sidebar   components.Sidebar
	Inspector components.Inspector
	ThemeMenu components.ThemeMenu
	Trailer   components.TrailerModal
	Search    components.SearchBar

	// Grid content
	query        tmdb.ShowsQuery
	page         domain.Page[domain.Movie]
	title        string
	shownKey     string
	similarTitle string
	detailID     int

	// Dimensions
	Width       int
	Height      int
	cellWidthPx int

	// UI state
	Focus       Pane
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
	Loading     bool
	ShowHelp    bool

	// Animation start times
	clock         clockwork.Clock
	gridShownAt   time.Time
	detailShownAt time.Time
	sidebarAt     time.Time
	modalAt       time.Time
	sidebarSlide  *motion.Variants
	modalZoom     *motion.Variants
	ticking       bool

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Category == "" {
		opts.Category = domain.CategoryMovie
	}
	if opts.List == "" {
		opts.List = domain.ListPopular
	}
	if opts.CellWidthPx <= 0 {
		opts.CellWidthPx = 8
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	d := interact.NewDispatcher()
	mo := motion.New(0)

	m := Model{
		shows:       opts.Shows,
		search:      opts.Search,
		launcher:    opts.Launcher,
		theme:       opts.Theme,
		global:      opts.Global,
		document:    opts.Document,
		motion:      mo,
		dispatcher:  d,
		hooks:       newOverlayHooks(d, opts.Theme, opts.Global),
		Grid:        components.NewGrid(),
		Sidebar:     components.NewSidebar(),
		Inspector:   components.NewInspector(),
		ThemeMenu:   components.NewThemeMenu(),
		Trailer:     components.NewTrailerModal(),
		Search:      components.NewSearchBar(),
		cellWidthPx: opts.CellWidthPx,
		clock:       opts.Clock,
		logger:      opts.Logger,
	}

	m.query = tmdb.ShowsQuery{Category: opts.Category, Type: opts.List, Page: 1}
	m.title = m.describe(m.query)
	m.Sidebar.SetActive(components.Listing{Category: opts.Category, List: opts.List})
	m.Grid.SetTitle(m.title)
	m.Grid.SetLoading(true)
	m.Loading = true
	m.setFocus(PaneGrid)

	m.sidebarSlide = mo.SlideIn("left", motion.Spring, 0, 0.3)
	m.modalZoom = mo.ZoomIn(0.6, 0.25)

	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	m.theme.Mount()
	return LoadShowsCmd(m.shows, m.query)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		if m.motion.Resize(msg.Width * m.cellWidthPx) {
			m.resetMotion()
		}
		m.updateLayout()
		m.bindRegions()
		return m, nil

	case tea.FocusMsg:
		return m, m.refetchOnFocus()

	case tea.KeyMsg, tea.MouseMsg:
		return m.dispatch(msg)

	case ShowsLoadedMsg:
		return m.handleShowsLoaded(msg)

	case BundleLoadedMsg:
		if msg.ID != m.detailID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Debug("bundle failed", "id", msg.ID, "error", msg.Err)
			m.Inspector.SetError(msg.Err)
			return m, nil
		}
		m.Inspector.SetDetail(msg.Bundle.Detail, msg.Bundle.Similar)
		return m, nil

	case TrailerLookupMsg:
		if errors.Is(msg.Err, domain.ErrSuperseded) {
			return m, nil
		}
		m.Trailer.Finish(msg.Err)
		m.bindRegions()
		return m, nil

	case TrailerLaunchedMsg:
		return m, m.setStatus("Opened trailer in player", false)

	case components.SelectListingMsg:
		return m, m.selectListing(msg.Listing)

	case components.ThemeChosenMsg:
		cmd := m.applyTheme(msg.Name)
		m.bindRegions()
		return m, cmd

	case components.SearchQueryChangedMsg:
		if m.search != nil {
			m.Search.SetSuggestions(m.search.Suggest(msg.Query, 5))
		}
		m.updateLayout()
		return m, nil

	case components.SearchSubmitMsg:
		m.updateLayout()
		q := tmdb.ShowsQuery{Category: m.query.Category, SearchQuery: msg.Query, Page: 1}
		return m, m.loadQuery(q)

	case components.SuggestionChosenMsg:
		m.updateLayout()
		m.setFocus(PaneGrid)
		return m, m.showDetail(msg.Movie)

	case FrameMsg:
		m.advanceAnimations()
		if m.animating() {
			return m, FrameCmd()
		}
		m.ticking = false
		return m, nil

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Cursor blinks and other input internals
	var cmd tea.Cmd
	switch {
	case m.Search.IsVisible():
		m.Search, cmd = m.Search.Update(msg)
	case m.Grid.IsFilterTyping():
		m.Grid, cmd = m.Grid.Update(msg)
	}
	return m, cmd
}

// dispatch routes input through the overlay listeners before the model
// sees it. A listener may stop the event, e.g. a click outside the modal.
func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	overlay := m.global.IsModalOpen() || m.theme.ShowThemeOptions()

	var cmd tea.Cmd
	m.dispatcher.Dispatch(msg, func(*interact.Event) {
		if overlay {
			m, cmd = m.handleOverlayInput(msg)
		} else {
			m, cmd = m.handleInput(msg)
		}
	})

	m.bindRegions()
	return m, cmd
}

// handleOverlayInput handles input while the modal or the theme menu is open
func (m Model) handleOverlayInput(msg tea.Msg) (Model, tea.Cmd) {
	if m.global.IsModalOpen() {
		km, ok := msg.(tea.KeyMsg)
		if !ok {
			return m, nil
		}
		switch {
		case key.Matches(km, Keys.OpenTrailer):
			id := m.global.VideoID()
			if id == "" {
				return m, nil
			}
			if m.launcher == nil {
				return m, m.setStatus("No player configured", true)
			}
			return m, OpenTrailerCmd(m.launcher, domain.TrailerURL(id))
		case key.Matches(km, Keys.Close):
			m.global.CloseModal()
		}
		return m, nil
	}

	if m.theme.ShowThemeOptions() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			var cmd tea.Cmd
			m.ThemeMenu, cmd = m.ThemeMenu.Update(msg)
			return m, cmd
		case tea.MouseMsg:
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				r := m.menuRect()
				return m, m.ThemeMenu.ClickLine(msg.Y - r.Y)
			}
		}
	}
	return m, nil
}

func (m Model) handleInput(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Search bar captures all input while visible
	if m.Search.IsVisible() {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		m.updateLayout()
		return m, cmd
	}

	// Grid filter captures all input while typing
	if m.Focus == PaneGrid && m.Grid.IsFilterTyping() {
		return m.updateGrid(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.hooks.Close()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		cmd := m.Search.Show()
		m.updateLayout()
		return m, cmd

	case key.Matches(msg, Keys.ThemeMenu):
		m.ThemeMenu.Reset(m.theme.Current())
		m.theme.OpenMenu()
		return m, nil

	case key.Matches(msg, Keys.ToggleSidebar):
		return m, m.toggleSidebar()

	case key.Matches(msg, Keys.SwitchPane):
		if m.Focus == PaneGrid && m.computeLayout().sidebar.W > 0 {
			m.setFocus(PaneSidebar)
		} else {
			m.setFocus(PaneGrid)
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		m.shows.Refresh()
		m.shownKey = ""
		return m, tea.Batch(m.loadQuery(m.query), m.reloadDetail())

	case key.Matches(msg, Keys.NextPage):
		if m.query.ShowSimilarShows || !m.page.HasNext() {
			return m, nil
		}
		q := m.query
		q.Page++
		return m, m.loadQuery(q)

	case key.Matches(msg, Keys.PrevPage):
		if m.query.ShowSimilarShows || m.query.Page <= 1 {
			return m, nil
		}
		q := m.query
		q.Page--
		return m, m.loadQuery(q)

	case key.Matches(msg, Keys.Category):
		next := domain.CategoryTV
		if m.query.Category == domain.CategoryTV {
			next = domain.CategoryMovie
		}
		if m.query.SearchQuery != "" {
			return m, m.loadQuery(tmdb.ShowsQuery{Category: next, SearchQuery: m.query.SearchQuery, Page: 1})
		}
		return m, m.selectListing(components.Listing{Category: next, List: domain.ListPopular})
	}

	if m.Focus == PaneSidebar {
		var cmd tea.Cmd
		m.Sidebar, cmd = m.Sidebar.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Trailer):
		return m, m.openTrailer()

	case key.Matches(msg, Keys.Similar):
		sel, ok := m.Grid.Selected()
		if !ok {
			return m, nil
		}
		m.similarTitle = sel.GetTitle()
		q := tmdb.ShowsQuery{Category: sel.CategoryOr(m.query.Category), ShowSimilarShows: true, ID: sel.ID}
		return m, m.loadQuery(q)
	}

	return m.updateGrid(msg)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	l := m.computeLayout()

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		switch {
		case l.sidebar.Contains(msg.X, msg.Y):
			m.setFocus(PaneSidebar)
			if listing, ok := m.Sidebar.IndexAt(msg.Y - l.sidebar.Y); ok {
				return m, m.selectListing(listing)
			}
		case l.grid.Contains(msg.X, msg.Y):
			m.setFocus(PaneGrid)
			if idx := m.Grid.IndexAt(msg.X-l.grid.X, msg.Y-l.grid.Y); idx >= 0 {
				m.Grid.SetCursor(idx)
				return m, m.syncSelection()
			}
		}

	case msg.Button == tea.MouseButtonWheelUp:
		if l.inspector.Contains(msg.X, msg.Y) {
			m.Inspector.ScrollBy(-3)
		} else if l.grid.Contains(msg.X, msg.Y) {
			return m.updateGrid(tea.KeyMsg{Type: tea.KeyUp})
		}

	case msg.Button == tea.MouseButtonWheelDown:
		if l.inspector.Contains(msg.X, msg.Y) {
			m.Inspector.ScrollBy(3)
		} else if l.grid.Contains(msg.X, msg.Y) {
			return m.updateGrid(tea.KeyMsg{Type: tea.KeyDown})
		}
	}
	return m, nil
}

// updateGrid forwards msg to the grid and follows the selection
func (m Model) updateGrid(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, tea.Batch(cmd, m.syncSelection())
}

// syncSelection points the inspector at the grid cursor
func (m *Model) syncSelection() tea.Cmd {
	sel, ok := m.Grid.Selected()
	if !ok {
		m.Inspector.Clear()
		m.detailID = 0
		return nil
	}
	if sel.ID == m.detailID {
		return nil
	}
	return m.showDetail(sel)
}

// showDetail displays mv in the inspector and loads its detail bundle
func (m *Model) showDetail(mv domain.Movie) tea.Cmd {
	m.Inspector.SetMovie(mv)
	m.Inspector.SetLoading(true)
	m.detailID = mv.ID
	m.detailShownAt = m.clock.Now()
	m.Inspector.SetReveal(m.motion.FadeDown(), 0)

	q := tmdb.ShowQuery{Category: mv.CategoryOr(m.query.Category), ID: mv.ID}
	return tea.Batch(LoadBundleCmd(m.shows, q), m.startAnimation())
}

func (m *Model) reloadDetail() tea.Cmd {
	mv, ok := m.Inspector.Movie()
	if !ok {
		return nil
	}
	q := tmdb.ShowQuery{Category: mv.CategoryOr(m.query.Category), ID: mv.ID}
	return LoadBundleCmd(m.shows, q)
}

// openTrailer opens the modal and starts the lookup for the shown title
func (m *Model) openTrailer() tea.Cmd {
	mv, ok := m.Inspector.Movie()
	if !ok {
		mv, ok = m.Grid.Selected()
	}
	if !ok {
		return nil
	}

	m.global.SetIsModalOpen(true)
	m.Trailer.Open(mv.GetTitle())
	m.modalAt = m.clock.Now()
	m.Trailer.SetZoom(m.modalZoom, 0)

	lookup := TrailerLookupCmd(m.global, mv.CategoryOr(m.query.Category), mv.GetID())
	return tea.Batch(lookup, m.startAnimation())
}

func (m *Model) toggleSidebar() tea.Cmd {
	m.global.ToggleSidebar()
	if m.global.ShowSidebar() {
		m.sidebarAt = m.clock.Now()
		m.Sidebar.SetSlide(m.sidebarSlide, 0)
	} else if m.Focus == PaneSidebar {
		m.setFocus(PaneGrid)
	}
	m.updateLayout()
	return m.startAnimation()
}

func (m *Model) setFocus(p Pane) {
	m.Focus = p
	m.Grid.SetFocused(p == PaneGrid)
	m.Sidebar.SetFocused(p == PaneSidebar)
}

func (m *Model) selectListing(l components.Listing) tea.Cmd {
	m.Sidebar.SetActive(l)
	return m.loadQuery(tmdb.ShowsQuery{Category: l.Category, Type: l.List, Page: 1})
}

// loadQuery switches the grid to q, showing any cached page right away
func (m *Model) loadQuery(q tmdb.ShowsQuery) tea.Cmd {
	m.query = q
	m.title = m.describe(q)
	m.Grid.SetTitle(m.title)

	if cached, ok := m.shows.PeekShows(q); ok {
		m.applyPage(q, cached.Data)
	} else {
		m.Grid.SetLoading(true)
	}
	m.Loading = true
	return LoadShowsCmd(m.shows, q)
}

func (m Model) handleShowsLoaded(msg ShowsLoadedMsg) (Model, tea.Cmd) {
	if msg.Query != m.query {
		return m, nil
	}
	m.Loading = false
	m.Grid.SetLoading(false)

	if err := msg.Result.Err; err != nil {
		m.logger.Warn("shows failed", "query", msg.Query.Key(), "error", err)
		return m, m.setStatus(describeErr(err), true)
	}

	if msg.Result.FromCache && m.shownKey == msg.Query.Key() {
		return m, nil
	}
	m.applyPage(msg.Query, msg.Result.Data)

	return m, tea.Batch(m.syncSelection(), m.startAnimation())
}

// applyPage puts a page in the grid and restarts the card reveal
func (m *Model) applyPage(q tmdb.ShowsQuery, p domain.Page[domain.Movie]) {
	m.page = p
	m.shownKey = q.Key()
	m.Grid.SetMovies(p.Results, m.title)
	m.gridShownAt = m.clock.Now()
	m.Grid.SetReveal(m.motion.StaggerContainer(0.04, 0.1), m.motion.FadeUp())
	m.Grid.SetElapsed(0)
}

// describe titles the grid for q
func (m Model) describe(q tmdb.ShowsQuery) string {
	category := "Movies"
	if q.Category == domain.CategoryTV {
		category = "TV Shows"
	}

	var title string
	switch {
	case q.SearchQuery != "":
		title = fmt.Sprintf("Search %q · %s", q.SearchQuery, category)
	case q.ShowSimilarShows:
		title = "More like " + m.similarTitle
	default:
		title = category + " · " + q.Type.Label()
	}
	if q.Page > 1 {
		title += fmt.Sprintf(" · page %d", q.Page)
	}
	return title
}

// refetchOnFocus drops stale queries when the terminal regains focus and
// reloads what is on screen
func (m *Model) refetchOnFocus() tea.Cmd {
	dropped := m.shows.RefetchOnFocus()
	if dropped == 0 {
		return nil
	}
	m.logger.Debug("refetching on focus", "dropped", dropped)
	return tea.Batch(LoadShowsCmd(m.shows, m.query), m.reloadDetail())
}

func (m *Model) applyTheme(name string) tea.Cmd {
	var err error
	if name == components.ThemeSystem {
		err = m.theme.CheckSystemTheme()
	} else {
		err = m.theme.SetTheme(name)
	}
	m.theme.CloseMenu()

	if err != nil {
		m.logger.Warn("theme not saved", "theme", name, "error", err)
		return m.setStatus("Theme not saved: "+err.Error(), true)
	}
	return m.setStatus("Theme: "+m.theme.Current(), false)
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr

	delay := statusDuration
	if isErr {
		delay = errorStatusDuration
	}
	return ClearStatusCmd(delay, m.statusSeq)
}

// describeErr turns API failures into status bar text
func describeErr(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "TMDB rejected the API key, run flick setup"
	case errors.Is(err, domain.ErrServiceOffline):
		return "TMDB is unreachable"
	case errors.Is(err, domain.ErrNotFound):
		return "Nothing found"
	default:
		return err.Error()
	}
}

// Animation

// resetMotion picks up new descriptors after the screen class changed
func (m *Model) resetMotion() {
	m.Grid.SetReveal(m.motion.StaggerContainer(0.04, 0.1), m.motion.FadeUp())
	m.Inspector.SetReveal(m.motion.FadeDown(), 0)
}

// startAnimation starts the frame loop unless it is already running
func (m *Model) startAnimation() tea.Cmd {
	m.advanceAnimations()
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	return FrameCmd()
}

func (m *Model) advanceAnimations() {
	now := m.clock.Now()
	m.Grid.SetElapsed(now.Sub(m.gridShownAt).Seconds())
	m.Inspector.SetReveal(m.motion.FadeDown(), now.Sub(m.detailShownAt).Seconds())
	if m.global.ShowSidebar() {
		m.Sidebar.SetSlide(m.sidebarSlide, now.Sub(m.sidebarAt).Seconds())
	}
	if m.global.IsModalOpen() {
		m.Trailer.SetZoom(m.modalZoom, now.Sub(m.modalAt).Seconds())
	}
}

func (m Model) animating() bool {
	return m.Grid.Animating() ||
		(m.global.ShowSidebar() && m.Sidebar.Sliding()) ||
		(m.global.IsModalOpen() && m.Trailer.Zooming()) ||
		m.Inspector.Revealing()
}
