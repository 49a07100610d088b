package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/flick/internal/domain"
)

// Global owns the session-wide UI state: the selected trailer, the trailer
// modal and the sidebar.
type Global struct {
	changes

	videos domain.VideoSource
	logger *slog.Logger

	mu          sync.Mutex
	videoID     string
	isModalOpen bool
	showSidebar bool
	lastErr     error

	// Trailer lookups are numbered; only the latest may write videoID.
	seq        uint64
	cancelPrev context.CancelFunc
}

// GlobalSnapshot is a consistent copy of the global UI state
type GlobalSnapshot struct {
	VideoID     string
	IsModalOpen bool
	ShowSidebar bool
}

// NewGlobal creates the global UI state. videos serves trailer lookups.
func NewGlobal(videos domain.VideoSource, logger *slog.Logger) *Global {
	if logger == nil {
		logger = slog.Default()
	}
	return &Global{
		videos: videos,
		logger: logger,
	}
}

// set applies fn under the lock and signals a change when fn reports one
func (g *Global) set(fn func() bool) {
	g.mu.Lock()
	changed := fn()
	g.mu.Unlock()

	if changed {
		g.bump()
	}
}

// SetVideoID selects a video for playback
func (g *Global) SetVideoID(id string) {
	g.set(func() bool {
		changed := g.videoID != id
		g.videoID = id
		return changed
	})
}

// SetShowSidebar shows or hides the sidebar
func (g *Global) SetShowSidebar(show bool) {
	g.set(func() bool {
		changed := g.showSidebar != show
		g.showSidebar = show
		return changed
	})
}

// ToggleSidebar flips sidebar visibility
func (g *Global) ToggleSidebar() {
	g.set(func() bool {
		g.showSidebar = !g.showSidebar
		return true
	})
}

// SetIsModalOpen opens or closes the trailer modal without touching videoID
func (g *Global) SetIsModalOpen(open bool) {
	g.set(func() bool {
		changed := g.isModalOpen != open
		g.isModalOpen = open
		return changed
	})
}

// CloseModal closes the trailer modal and clears the selected video in one
// transition, so a reopened modal never shows the previous trailer. Any
// lookup still in flight is abandoned. Closing a closed modal does nothing.
func (g *Global) CloseModal() {
	g.set(func() bool {
		if !g.isModalOpen {
			return false
		}
		g.isModalOpen = false
		g.videoID = ""
		g.abandonLookupLocked()
		return true
	})
}

func (g *Global) abandonLookupLocked() {
	g.seq++
	if g.cancelPrev != nil {
		g.cancelPrev()
		g.cancelPrev = nil
	}
}

// GetTrailerID looks up the trailer for a movie; see GetTrailerIDIn.
func (g *Global) GetTrailerID(ctx context.Context, id string) error {
	return g.GetTrailerIDIn(ctx, domain.CategoryMovie, id)
}

// GetTrailerIDIn issues one videos request for the show and, on success,
// selects the first result's key. The previous lookup is cancelled and its
// response is never applied (ErrSuperseded). An empty result list returns
// ErrNoTrailer. On any failure videoID keeps its value and the error is
// logged and kept in LastErr.
func (g *Global) GetTrailerIDIn(ctx context.Context, category domain.Category, id string) error {
	g.mu.Lock()
	g.abandonLookupLocked()
	mine := g.seq
	lookupCtx, cancel := context.WithCancel(ctx)
	g.cancelPrev = cancel
	g.mu.Unlock()

	list, err := g.videos.GetVideos(lookupCtx, category, id)

	var changed bool
	g.mu.Lock()
	if g.seq != mine {
		g.mu.Unlock()
		cancel()
		g.logger.Debug("trailer lookup superseded", "id", id)
		return domain.ErrSuperseded
	}
	g.cancelPrev = nil
	cancel()

	switch {
	case err != nil:
		err = fmt.Errorf("trailer lookup for %s %s: %w", category, id, err)
	case len(list.Results) == 0:
		err = fmt.Errorf("trailer lookup for %s %s: %w", category, id, domain.ErrNoTrailer)
	default:
		key := list.Results[0].Key
		changed = g.videoID != key
		g.videoID = key
	}
	g.lastErr = err
	g.mu.Unlock()

	if err != nil {
		g.logger.Error("trailer lookup failed", "id", id, "error", err)
		return err
	}
	if changed {
		g.bump()
	}
	return nil
}

// OpenTrailer opens the modal and looks up the show's trailer
func (g *Global) OpenTrailer(ctx context.Context, category domain.Category, id string) error {
	g.SetIsModalOpen(true)
	return g.GetTrailerIDIn(ctx, category, id)
}

// VideoID returns the selected video ("" when none)
func (g *Global) VideoID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.videoID
}

// IsModalOpen reports whether the trailer modal is open
func (g *Global) IsModalOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isModalOpen
}

// ShowSidebar reports whether the sidebar is shown
func (g *Global) ShowSidebar() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.showSidebar
}

// Snapshot returns a consistent copy of the state
func (g *Global) Snapshot() GlobalSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GlobalSnapshot{
		VideoID:     g.videoID,
		IsModalOpen: g.isModalOpen,
		ShowSidebar: g.showSidebar,
	}
}

// LastErr returns the error of the most recent completed trailer lookup
func (g *Global) LastErr() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}
