package state

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/flick/internal/domain"
)

// Theme owns the light/dark mode and the theme picker visibility.
// The document class and the stored preference follow every SetTheme.
type Theme struct {
	changes

	store    domain.PreferenceStore
	detector domain.SchemeDetector
	document domain.Document
	logger   *slog.Logger

	// persistMu orders saves the same as state writes
	persistMu sync.Mutex

	mu               sync.Mutex
	theme            string
	initial          string
	showThemeOptions bool
	mounted          bool
	lastErr          error
}

// NewTheme loads the stored preference. A stored value is used verbatim;
// with none, the theme stays empty until Mount.
func NewTheme(store domain.PreferenceStore, detector domain.SchemeDetector, document domain.Document, logger *slog.Logger) *Theme {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Theme{
		store:    store,
		detector: detector,
		document: document,
		logger:   logger,
	}
	if store != nil {
		if name, ok := store.Theme(); ok {
			t.theme = name
			t.initial = name
		}
	}
	return t
}

// Mount runs once after the UI is up: an empty initial preference becomes
// Dark, otherwise the stored theme is applied to the document.
func (t *Theme) Mount() {
	t.mu.Lock()
	if t.mounted {
		t.mu.Unlock()
		return
	}
	t.mounted = true
	initial := t.initial
	t.mu.Unlock()

	if initial == "" {
		t.SetTheme(domain.ThemeDark)
		return
	}
	t.applyDocument(initial)
}

func (t *Theme) applyDocument(name string) {
	if t.document == nil {
		return
	}
	switch name {
	case domain.ThemeDark:
		t.document.SetDark(true)
	case domain.ThemeLight:
		t.document.SetDark(false)
	}
}

// SetTheme switches the theme, applies it to the document and persists it.
// Any name is accepted; only Dark and Light change the document. A
// persistence failure is logged, kept in LastErr and returned, and the
// theme change stands regardless.
func (t *Theme) SetTheme(name string) error {
	t.persistMu.Lock()

	t.mu.Lock()
	changed := t.theme != name
	t.theme = name
	t.mu.Unlock()

	t.applyDocument(name)

	var err error
	if t.store != nil {
		err = t.store.SaveTheme(name)
	}
	if err != nil {
		t.logger.Warn("failed to persist theme", "theme", name, "error", err)
	}

	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()
	t.persistMu.Unlock()

	if changed {
		t.bump()
	}
	return err
}

// CheckSystemTheme follows the host color scheme preference
func (t *Theme) CheckSystemTheme() error {
	if t.detector != nil && t.detector.PrefersDark() {
		return t.SetTheme(domain.ThemeDark)
	}
	return t.SetTheme(domain.ThemeLight)
}

// OpenMenu shows the theme picker
func (t *Theme) OpenMenu() {
	t.SetShowThemeOptions(true)
}

// CloseMenu hides the theme picker
func (t *Theme) CloseMenu() {
	t.SetShowThemeOptions(false)
}

// SetShowThemeOptions sets the theme picker visibility
func (t *Theme) SetShowThemeOptions(show bool) {
	t.mu.Lock()
	changed := t.showThemeOptions != show
	t.showThemeOptions = show
	t.mu.Unlock()

	if changed {
		t.bump()
	}
}

// Current returns the theme name ("" before Mount when nothing was stored)
func (t *Theme) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.theme
}

// IsDark reports whether the current theme is Dark
func (t *Theme) IsDark() bool {
	return t.Current() == domain.ThemeDark
}

// ShowThemeOptions reports whether the theme picker is open
func (t *Theme) ShowThemeOptions() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.showThemeOptions
}

// LastErr returns the error from the most recent persistence attempt
func (t *Theme) LastErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}
