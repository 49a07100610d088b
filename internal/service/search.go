package service

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/flick/internal/domain"
)

// SearchService keeps an index of every show seen so far and ranks it
// against a query while the server search is in flight.
type SearchService struct {
	logger *slog.Logger

	indexMu    sync.RWMutex
	titleIndex map[int]domain.Movie // id -> movie
}

// NewSearchService creates a new search service
func NewSearchService(logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		logger:     logger,
		titleIndex: make(map[int]domain.Movie),
	}
}

// IndexMovies adds movies to the local index
func (s *SearchService) IndexMovies(movies []domain.Movie) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	for _, m := range movies {
		s.titleIndex[m.ID] = m
	}
	s.logger.Debug("indexed shows", "count", len(movies), "total", len(s.titleIndex))
}

// Len returns the number of indexed shows
func (s *SearchService) Len() int {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	return len(s.titleIndex)
}

// Suggest returns up to limit indexed shows matching query, best first
func (s *SearchService) Suggest(query string, limit int) []domain.Movie {
	if query == "" {
		return nil
	}

	s.indexMu.RLock()
	titles := make([]string, 0, len(s.titleIndex))
	byTitle := make(map[string][]domain.Movie, len(s.titleIndex))
	for _, m := range s.titleIndex {
		title := m.GetTitle()
		if _, seen := byTitle[title]; !seen {
			titles = append(titles, title)
		}
		byTitle[title] = append(byTitle[title], m)
	}
	s.indexMu.RUnlock()

	sort.Strings(titles)
	ranks := fuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	var results []domain.Movie
	for _, r := range ranks {
		movies := byTitle[r.Target]
		sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
		results = append(results, movies...)
		if limit > 0 && len(results) >= limit {
			return results[:limit]
		}
	}
	return results
}
