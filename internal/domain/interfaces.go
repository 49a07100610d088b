package domain

import "context"

// Theme names with a defined visual effect
const (
	ThemeDark  = "Dark"
	ThemeLight = "Light"
)

// PreferenceStore persists the single theme preference.
type PreferenceStore interface {
	// Theme returns the stored theme name and whether one was stored
	Theme() (string, bool)

	// SaveTheme persists the theme name verbatim
	SaveTheme(name string) error
}

// SchemeDetector answers whether the host environment prefers a dark color scheme.
type SchemeDetector interface {
	PrefersDark() bool
}

// SchemeDetectorFunc adapts a function to SchemeDetector
type SchemeDetectorFunc func() bool

func (f SchemeDetectorFunc) PrefersDark() bool { return f() }

// Document is the rendering root whose dark class follows the theme.
type Document interface {
	SetDark(dark bool)
}

// VideoSource looks up the videos attached to a show
type VideoSource interface {
	GetVideos(ctx context.Context, category Category, id string) (VideoList, error)
}
