package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/querycache"
	"github.com/mmcdole/flick/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTMDB struct {
	mu          sync.Mutex
	hits        map[string]int
	failSimilar bool
	failDetail  bool
}

func (f *fakeTMDB) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeTMDB) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	failSimilar, failDetail := f.failSimilar, f.failDetail
	f.mu.Unlock()

	switch {
	case strings.HasSuffix(r.URL.Path, "/similar"):
		if failSimilar {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(domain.Page[domain.Movie]{
			Page:    1,
			Results: []domain.Movie{{ID: 2, Title: "Interstellar", OriginalTitle: "Interstellar"}},
		})
	case r.URL.Path == "/movie/popular":
		json.NewEncoder(w).Encode(domain.Page[domain.Movie]{
			Page:       1,
			TotalPages: 3,
			Results: []domain.Movie{
				{ID: 1, OriginalTitle: "Inception"},
				{ID: 3, OriginalTitle: "The Prestige"},
			},
		})
	case r.URL.Path == "/movie/1":
		if failDetail {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"id": 1, "original_title": "Inception", "videos": {"results": [{"key": "YoHD9XEInc0"}]}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestService(t *testing.T) (*ShowService, *fakeTMDB, *clockwork.FakeClock) {
	t.Helper()
	fake := &fakeTMDB{hits: make(map[string]int)}
	server := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient(server.URL, "key")
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	cache, err := querycache.New(16, time.Minute, querycache.WithClock(clock))
	require.NoError(t, err)

	return NewShowService(client, cache, NewSearchService(nil), nil), fake, clock
}

func TestGetShowsIsCached(t *testing.T) {
	svc, fake, clock := newTestService(t)
	ctx := context.Background()
	q := tmdb.ShowsQuery{Category: domain.CategoryMovie, Type: domain.ListPopular, Page: 1}

	res := svc.GetShows(ctx, q)
	require.NoError(t, res.Err)
	assert.Len(t, res.Data.Results, 2)

	res = svc.GetShows(ctx, q)
	require.NoError(t, res.Err)
	assert.True(t, res.FromCache)
	assert.EqualValues(t, 1, fake.count("/movie/popular"))

	peeked, ok := svc.PeekShows(q)
	require.True(t, ok)
	assert.Len(t, peeked.Data.Results, 2)

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, svc.RefetchOnFocus())
	svc.GetShows(ctx, q)
	assert.EqualValues(t, 2, fake.count("/movie/popular"))

	svc.Refresh()
	svc.GetShows(ctx, q)
	assert.EqualValues(t, 3, fake.count("/movie/popular"))
}

func TestGetBundle(t *testing.T) {
	svc, _, _ := newTestService(t)

	bundle, err := svc.GetBundle(context.Background(), tmdb.ShowQuery{Category: domain.CategoryMovie, ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Inception", bundle.Detail.GetTitle())
	require.Len(t, bundle.Similar, 1)
	assert.Equal(t, 2, bundle.Similar[0].ID)
}

func TestGetBundleSimilarFailureIsTolerated(t *testing.T) {
	svc, fake, _ := newTestService(t)
	fake.mu.Lock()
	fake.failSimilar = true
	fake.mu.Unlock()

	bundle, err := svc.GetBundle(context.Background(), tmdb.ShowQuery{Category: domain.CategoryMovie, ID: 1})
	require.NoError(t, err)
	assert.Empty(t, bundle.Similar)
	assert.Equal(t, 1, bundle.Detail.ID)
}

func TestGetBundleDetailFailure(t *testing.T) {
	svc, fake, _ := newTestService(t)
	fake.mu.Lock()
	fake.failDetail = true
	fake.mu.Unlock()

	_, err := svc.GetBundle(context.Background(), tmdb.ShowQuery{Category: domain.CategoryMovie, ID: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuggestUsesIndexedShows(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.GetShows(context.Background(), tmdb.ShowsQuery{Category: domain.CategoryMovie, Type: domain.ListPopular, Page: 1})

	assert.Equal(t, 2, svc.search.Len())

	got := svc.search.Suggest("incep", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Inception", got[0].GetTitle())

	assert.Nil(t, svc.search.Suggest("", 5))
	assert.Empty(t, svc.search.Suggest("zzzz", 5))
}

func TestSuggestLimit(t *testing.T) {
	s := NewSearchService(nil)
	s.IndexMovies([]domain.Movie{
		{ID: 1, OriginalTitle: "Star Wars"},
		{ID: 2, OriginalTitle: "Star Trek"},
		{ID: 3, OriginalTitle: "Stardust"},
	})
	assert.Len(t, s.Suggest("star", 2), 2)
	assert.Len(t, s.Suggest("star", 0), 3)
}
