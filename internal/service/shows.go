package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/querycache"
	"github.com/mmcdole/flick/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

// ShowService serves TMDB queries through the query cache
type ShowService struct {
	client *tmdb.Client
	cache  *querycache.Cache
	search *SearchService
	logger *slog.Logger
}

// NewShowService creates a new show service. search may be nil.
func NewShowService(client *tmdb.Client, cache *querycache.Cache, search *SearchService, logger *slog.Logger) *ShowService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShowService{
		client: client,
		cache:  cache,
		search: search,
		logger: logger,
	}
}

// GetShows returns one page of a search, similar-shows or listing query
func (s *ShowService) GetShows(ctx context.Context, q tmdb.ShowsQuery) querycache.Query[domain.Page[domain.Movie]] {
	res := querycache.Fetch(ctx, s.cache, q.Key(), func(ctx context.Context) (domain.Page[domain.Movie], error) {
		return s.client.GetShows(ctx, q)
	})
	if res.Err != nil {
		s.logger.Warn("shows query failed", "category", q.Category, "error", res.Err)
		return res
	}
	if s.search != nil {
		s.search.IndexMovies(res.Data.Results)
	}
	return res
}

// GetShow returns a single show with videos and credits
func (s *ShowService) GetShow(ctx context.Context, q tmdb.ShowQuery) querycache.Query[domain.ShowDetail] {
	res := querycache.Fetch(ctx, s.cache, q.Key(), func(ctx context.Context) (domain.ShowDetail, error) {
		return s.client.GetShow(ctx, q)
	})
	if res.Err != nil {
		s.logger.Warn("show query failed", "category", q.Category, "id", q.ID, "error", res.Err)
	}
	return res
}

// PeekShows returns a cached list without fetching
func (s *ShowService) PeekShows(q tmdb.ShowsQuery) (querycache.Query[domain.Page[domain.Movie]], bool) {
	return querycache.Peek[domain.Page[domain.Movie]](s.cache, q.Key())
}

// Bundle is a detail page: the show plus shows similar to it
type Bundle struct {
	Detail  domain.ShowDetail
	Similar []domain.Movie
}

// GetBundle loads a show's detail and its similar shows in parallel.
// A failed similar lookup leaves Similar empty; a failed detail fails the bundle.
func (s *ShowService) GetBundle(ctx context.Context, q tmdb.ShowQuery) (Bundle, error) {
	var bundle Bundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res := s.GetShow(ctx, q)
		if res.Err != nil {
			return res.Err
		}
		bundle.Detail = res.Data
		return nil
	})

	g.Go(func() error {
		res := s.GetShows(ctx, tmdb.ShowsQuery{Category: q.Category, ShowSimilarShows: true, ID: q.ID})
		if res.Err == nil {
			bundle.Similar = res.Data.Results
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

// Refresh drops cached lists so the next read refetches
func (s *ShowService) Refresh() {
	for _, prefix := range RefreshPrefixes() {
		s.cache.InvalidatePrefix(prefix)
	}
}

// RefetchOnFocus drops stale queries; returns how many were dropped
func (s *ShowService) RefetchOnFocus() int {
	return s.cache.InvalidateStale()
}

// Videos exposes the client's videos lookup for the trailer lookup
func (s *ShowService) Videos() domain.VideoSource {
	return s.client
}
