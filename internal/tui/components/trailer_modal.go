package components

import (
	"strings"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/motion"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// TrailerModal shows the trailer found for a show
type TrailerModal struct {
	title   string
	loading bool
	err     error
	width   int

	zoom    *motion.Variants
	elapsed float64
}

// NewTrailerModal creates the modal
func NewTrailerModal() TrailerModal {
	return TrailerModal{}
}

// Open prepares the modal for a new lookup
func (t *TrailerModal) Open(title string) {
	t.title = title
	t.loading = true
	t.err = nil
}

// Finish records the lookup outcome
func (t *TrailerModal) Finish(err error) {
	t.loading = false
	t.err = err
}

// SetWidth sets the terminal width the modal is centered in
func (t *TrailerModal) SetWidth(width int) {
	t.width = width
}

// SetZoom sets the zoom-in descriptor and seconds since opening
func (t *TrailerModal) SetZoom(v *motion.Variants, elapsed float64) {
	t.zoom = v
	t.elapsed = elapsed
}

// Zooming reports whether the zoom-in is still running
func (t TrailerModal) Zooming() bool {
	return t.zoom != nil && !motion.Progress(t.zoom, t.elapsed, 1, 1).Done
}

// View renders the modal for videoID; an empty id shows the lookup state
func (t TrailerModal) View(st styles.Styles, videoID string) string {
	boxWidth := min(64, max(30, t.width-8))
	frame := motion.Progress(t.zoom, t.elapsed, float64(boxWidth), 1)
	boxWidth = max(20, int(float64(boxWidth)*frame.Scale))
	textWidth := boxWidth - 6

	var lines []string
	lines = append(lines, st.ModalTitle.Render(styles.Truncate("Trailer · "+t.title, textWidth)))

	switch {
	case videoID != "":
		lines = append(lines,
			st.Accent.Render(domain.TrailerURL(videoID)),
			"",
			st.HelpKey.Render("o")+" "+st.HelpDesc.Render("open in player"),
		)
	case t.loading:
		lines = append(lines, st.Dim.Render("Looking up trailer..."))
	case t.err != nil:
		lines = append(lines, st.Error.Render(styles.Truncate(t.err.Error(), textWidth)))
	default:
		lines = append(lines, st.Dim.Render("No trailer available"))
	}
	lines = append(lines, st.HelpKey.Render("esc")+" "+st.HelpDesc.Render("close"))

	body := strings.Join(lines, "\n")
	if frame.Opacity < 1 {
		body = st.Dim.Render(body)
	}
	return st.Modal.Width(boxWidth - 2).Render(body)
}
