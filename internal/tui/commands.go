package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/launcher"
	"github.com/mmcdole/flick/internal/service"
	"github.com/mmcdole/flick/internal/state"
	"github.com/mmcdole/flick/internal/tmdb"
)

// Command factories for async operations

// frameInterval paces animation frames
const frameInterval = time.Second / 30

// LoadShowsCmd loads one page of shows
func LoadShowsCmd(svc *service.ShowService, q tmdb.ShowsQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return ShowsLoadedMsg{Query: q, Result: svc.GetShows(ctx, q)}
	}
}

// LoadBundleCmd loads a show's detail and similar shows
func LoadBundleCmd(svc *service.ShowService, q tmdb.ShowQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		bundle, err := svc.GetBundle(ctx, q)
		return BundleLoadedMsg{ID: q.ID, Bundle: bundle, Err: err}
	}
}

// TrailerLookupCmd looks up a show's trailer into the global state
func TrailerLookupCmd(g *state.Global, category domain.Category, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		return TrailerLookupMsg{Err: g.GetTrailerIDIn(ctx, category, id)}
	}
}

// OpenTrailerCmd hands a trailer URL to an external player
func OpenTrailerCmd(l *launcher.Launcher, url string) tea.Cmd {
	return func() tea.Msg {
		if err := l.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return TrailerLaunchedMsg{URL: url}
	}
}

// FrameCmd schedules the next animation frame
func FrameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}
