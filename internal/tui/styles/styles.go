package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette is a set of colors for one color scheme
type Palette struct {
	Name    string
	Accent  lipgloss.Color
	Base    lipgloss.Color
	Surface lipgloss.Color
	Muted   lipgloss.Color
	Subtle  lipgloss.Color
	Text    lipgloss.Color
	Green   lipgloss.Color
	Red     lipgloss.Color
	Gold    lipgloss.Color
}

// Color palettes
var (
	DarkPalette = Palette{
		Name:    "dark",
		Accent:  lipgloss.Color("#01B4E4"),
		Base:    lipgloss.Color("#0D253F"),
		Surface: lipgloss.Color("#1F3A56"),
		Muted:   lipgloss.Color("#6B7280"),
		Subtle:  lipgloss.Color("#9CA3AF"),
		Text:    lipgloss.Color("#F9FAFB"),
		Green:   lipgloss.Color("#90CEA1"),
		Red:     lipgloss.Color("#EF4444"),
		Gold:    lipgloss.Color("#E5A00D"),
	}

	LightPalette = Palette{
		Name:    "light",
		Accent:  lipgloss.Color("#0369A1"),
		Base:    lipgloss.Color("#F9FAFB"),
		Surface: lipgloss.Color("#E5E7EB"),
		Muted:   lipgloss.Color("#9CA3AF"),
		Subtle:  lipgloss.Color("#4B5563"),
		Text:    lipgloss.Color("#111827"),
		Green:   lipgloss.Color("#047857"),
		Red:     lipgloss.Color("#B91C1C"),
		Gold:    lipgloss.Color("#B45309"),
	}
)

// Styles is every style the TUI renders with, derived from one palette
type Styles struct {
	Palette Palette

	// Borders
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	// Text
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Dim       lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Highlight lipgloss.Style
	Rating    lipgloss.Style

	// Lists
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style

	// Modals
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Filter
	Filter         lipgloss.Style
	FilterPrompt   lipgloss.Style
	MatchHighlight lipgloss.Style

	// Vote bar
	BarFull  lipgloss.Style
	BarEmpty lipgloss.Style
}

// New builds the styles for p
func New(p Palette) Styles {
	return Styles{
		Palette: p,

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted),

		Title:    lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.Subtle),
		Dim:      lipgloss.NewStyle().Foreground(p.Muted),
		Accent:   lipgloss.NewStyle().Foreground(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Red),
		Success:  lipgloss.NewStyle().Foreground(p.Green),
		Highlight: lipgloss.NewStyle().
			Foreground(p.Base).
			Background(p.Accent).
			Padding(0, 1),
		Rating: lipgloss.NewStyle().Foreground(p.Gold),

		SelectedItem: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
		NormalItem: lipgloss.NewStyle().
			Foreground(p.Subtle).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		HelpKey:  lipgloss.NewStyle().Foreground(p.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(p.Muted),

		Filter:         lipgloss.NewStyle().Foreground(p.Accent),
		FilterPrompt:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		MatchHighlight: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		BarFull:  lipgloss.NewStyle().Foreground(p.Gold),
		BarEmpty: lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// Document holds the active color scheme. SetDark swaps the palette every
// view renders with.
type Document struct {
	mu     sync.RWMutex
	dark   bool
	styles Styles
}

// NewDocument starts in the dark scheme
func NewDocument() *Document {
	return &Document{dark: true, styles: New(DarkPalette)}
}

// SetDark switches between the dark and light palettes
func (d *Document) SetDark(dark bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dark == dark {
		return
	}
	d.dark = dark
	if dark {
		d.styles = New(DarkPalette)
	} else {
		d.styles = New(LightPalette)
	}
}

// IsDark reports whether the dark palette is active
func (d *Document) IsDark() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dark
}

// Styles returns the active styles
func (d *Document) Styles() Styles {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.styles
}

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// RenderVoteBar renders a vote average out of 10 as a bar
func (s Styles) RenderVoteBar(vote float64, width int) string {
	if width < 3 {
		return ""
	}

	filled := int(float64(width) * vote / 10)
	filled = max(0, min(filled, width))

	return s.BarFull.Render(strings.Repeat("█", filled)) +
		s.BarEmpty.Render(strings.Repeat("░", width-filled))
}
