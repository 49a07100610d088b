package tui

import (
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/querycache"
	"github.com/mmcdole/flick/internal/service"
	"github.com/mmcdole/flick/internal/tmdb"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ShowsLoadedMsg carries one page of a listing, search or similar query
type ShowsLoadedMsg struct {
	Query  tmdb.ShowsQuery
	Result querycache.Query[domain.Page[domain.Movie]]
}

// BundleLoadedMsg carries a show's detail and similar shows
type BundleLoadedMsg struct {
	ID     int
	Bundle service.Bundle
	Err    error
}

// TrailerLookupMsg reports the end of a trailer lookup
type TrailerLookupMsg struct {
	Err error
}

// TrailerLaunchedMsg signals the trailer was handed to a player
type TrailerLaunchedMsg struct {
	URL string
}

// FrameMsg advances running animations
type FrameMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
