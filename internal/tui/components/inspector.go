package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/motion"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// overviewCache keeps the last glamour rendering; rendering markdown on
// every frame is too slow
type overviewCache struct {
	key  string
	text string
}

// Inspector displays detailed metadata for the selected show
type Inspector struct {
	movie   *domain.Movie
	detail  *domain.ShowDetail
	similar []domain.Movie
	loading bool
	err     error

	width  int
	height int
	offset int

	reveal  *motion.Variants
	elapsed float64

	cache *overviewCache
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{cache: &overviewCache{}}
}

// SetMovie shows the listing record while the detail loads
func (i *Inspector) SetMovie(m domain.Movie) {
	if i.movie != nil && i.movie.ID == m.ID {
		return
	}
	i.movie = &m
	i.detail = nil
	i.similar = nil
	i.err = nil
	i.offset = 0
}

// SetDetail fills in the full record for the current show. Details for a
// show no longer selected are ignored.
func (i *Inspector) SetDetail(d domain.ShowDetail, similar []domain.Movie) {
	if i.movie != nil && i.movie.ID != d.ID {
		return
	}
	i.detail = &d
	i.similar = similar
	i.loading = false
	i.err = nil
}

// SetLoading toggles the loading hint
func (i *Inspector) SetLoading(loading bool) {
	i.loading = loading
}

// SetError shows a detail lookup failure
func (i *Inspector) SetError(err error) {
	i.err = err
	i.loading = false
}

// Clear removes the current show
func (i *Inspector) Clear() {
	i.movie = nil
	i.detail = nil
	i.similar = nil
	i.err = nil
	i.offset = 0
}

// Movie returns the show on display
func (i Inspector) Movie() (domain.Movie, bool) {
	if i.movie == nil {
		return domain.Movie{}, false
	}
	return *i.movie, true
}

// Detail returns the loaded detail, if any
func (i Inspector) Detail() (domain.ShowDetail, bool) {
	if i.detail == nil {
		return domain.ShowDetail{}, false
	}
	return *i.detail, true
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// SetReveal sets the header fade descriptor and seconds since it started
func (i *Inspector) SetReveal(v *motion.Variants, elapsed float64) {
	i.reveal = v
	i.elapsed = elapsed
}

// Revealing reports whether the header fade is still running
func (i Inspector) Revealing() bool {
	return i.movie != nil && i.reveal != nil && !motion.Progress(i.reveal, i.elapsed, float64(i.width), 1).Done
}

// ScrollBy moves the body by n lines
func (i *Inspector) ScrollBy(n int) {
	i.offset = max(0, i.offset+n)
}

func (i Inspector) maxVisible() int {
	return max(1, i.height-InspectorBorderHeight-InspectorScrollIndicators)
}

// View renders the component
func (i Inspector) View(st styles.Styles, dark bool) string {
	style := st.InactiveBorder
	contentWidth := max(10, i.width-4)

	var lines []string
	if i.movie == nil {
		lines = []string{st.Dim.Render("Nothing selected")}
	} else {
		lines = i.render(st, dark, contentWidth)
	}

	visible := i.maxVisible()
	offset := min(i.offset, max(0, len(lines)-visible))
	end := min(offset+visible, len(lines))

	header := " "
	if offset > 0 {
		header = st.Dim.Render("↑ more")
	}
	footer := " "
	if end < len(lines) {
		footer = st.Dim.Render("↓ more")
	}

	body := header + "\n" + strings.Join(lines[offset:end], "\n") + "\n" + footer

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(0, i.width-frameW)).
		Height(max(0, i.height-frameH)).
		Render(body)
}

func (i Inspector) render(st styles.Styles, dark bool, width int) []string {
	m := *i.movie
	var lines []string

	title := styles.Truncate(m.GetTitle(), width)
	if frame := motion.Progress(i.reveal, i.elapsed, float64(width), 1); frame.Opacity < 1 {
		lines = append(lines, st.Dim.Render(title))
	} else {
		lines = append(lines, st.Title.Render(title))
	}

	var meta []string
	if year := m.GetYear(); year > 0 {
		meta = append(meta, fmt.Sprintf("%d", year))
	}
	if i.detail != nil {
		if rt := formatRuntime(i.detail.Runtime, i.detail.EpisodeRunTime); rt != "" {
			meta = append(meta, rt)
		}
		if i.detail.Status != "" {
			meta = append(meta, i.detail.Status)
		}
	}
	if len(meta) > 0 {
		lines = append(lines, st.Subtitle.Render(strings.Join(meta, " · ")))
	}
	lines = append(lines, st.RenderVoteBar(m.VoteAverage, min(20, width-6))+" "+st.Rating.Render(fmt.Sprintf("%.1f", m.VoteAverage)))

	if i.detail != nil {
		if genres := i.detail.GenreNames(); genres != "" {
			lines = append(lines, st.Accent.Render(styles.Truncate(genres, width)))
		}
		if i.detail.Tagline != "" {
			lines = append(lines, "", st.Subtitle.Italic(true).Render(styles.Truncate(i.detail.Tagline, width)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, strings.Split(i.overview(m, dark, width), "\n")...)

	switch {
	case i.err != nil:
		lines = append(lines, st.Error.Render(styles.Truncate("Details unavailable: "+i.err.Error(), width)))
	case i.loading && i.detail == nil:
		lines = append(lines, st.Dim.Render("Loading details..."))
	}

	if i.detail != nil {
		if directors := i.detail.Directors(); len(directors) > 0 {
			lines = append(lines, st.Dim.Render("Directed by"), styles.Truncate(strings.Join(directors, ", "), width))
		}
		if cast := i.detail.TopCast(5); len(cast) > 0 {
			lines = append(lines, "", st.Dim.Render("Cast"))
			for _, c := range cast {
				line := c.Name
				if c.Character != "" {
					line += " as " + c.Character
				}
				lines = append(lines, styles.Truncate(line, width))
			}
		}
		if len(i.detail.Videos.Results) > 0 {
			lines = append(lines, "", st.Accent.Render("▶ t: play trailer"))
		}
	}

	if len(i.similar) > 0 {
		lines = append(lines, "", st.Dim.Render("Similar"))
		for _, s := range i.similar[:min(5, len(i.similar))] {
			lines = append(lines, styles.Truncate("· "+s.GetTitle(), width))
		}
	}

	return lines
}

// overview renders the description as markdown, falling back to plain text
func (i Inspector) overview(m domain.Movie, dark bool, width int) string {
	text := m.Overview
	if i.detail != nil && i.detail.Overview != "" {
		text = i.detail.Overview
	}

	key := fmt.Sprintf("%d:%d:%t:%d", m.ID, width, dark, len(text))
	if i.cache != nil && i.cache.key == key {
		return i.cache.text
	}

	rendered := renderMarkdown(text, dark, width)
	if i.cache != nil {
		i.cache.key = key
		i.cache.text = rendered
	}
	return rendered
}

func renderMarkdown(text string, dark bool, width int) string {
	style := "dark"
	if !dark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func formatRuntime(runtime int, episode []int) string {
	if runtime == 0 && len(episode) > 0 {
		runtime = episode[0]
	}
	if runtime <= 0 {
		return ""
	}
	if runtime < 60 {
		return fmt.Sprintf("%dm", runtime)
	}
	return fmt.Sprintf("%dh %dm", runtime/60, runtime%60)
}
