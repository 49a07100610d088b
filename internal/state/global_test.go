package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoResponse struct {
	list domain.VideoList
	err  error
}

// fakeVideos answers each lookup from a per-id response. Ids listed in
// gates block until the gate channel is closed.
type fakeVideos struct {
	mu        sync.Mutex
	responses map[string]videoResponse
	gates     map[string]chan struct{}
	calls     []string
}

func newFakeVideos() *fakeVideos {
	return &fakeVideos{
		responses: make(map[string]videoResponse),
		gates:     make(map[string]chan struct{}),
	}
}

func (f *fakeVideos) respond(id string, keys ...string) {
	list := domain.VideoList{Results: []domain.Video{}}
	for _, k := range keys {
		list.Results = append(list.Results, domain.Video{Key: k})
	}
	f.mu.Lock()
	f.responses[id] = videoResponse{list: list}
	f.mu.Unlock()
}

func (f *fakeVideos) fail(id string, err error) {
	f.mu.Lock()
	f.responses[id] = videoResponse{err: err}
	f.mu.Unlock()
}

func (f *fakeVideos) gate(id string) chan struct{} {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[id] = ch
	f.mu.Unlock()
	return ch
}

func (f *fakeVideos) GetVideos(ctx context.Context, category domain.Category, id string) (domain.VideoList, error) {
	f.mu.Lock()
	f.calls = append(f.calls, string(category)+"/"+id)
	gate := f.gates[id]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	resp := f.responses[id]
	return resp.list, resp.err
}

func TestGetTrailerIDSetsFirstKey(t *testing.T) {
	videos := newFakeVideos()
	videos.respond("550", "first", "second")
	g := NewGlobal(videos, nil)

	require.NoError(t, g.GetTrailerID(context.Background(), "550"))
	assert.Equal(t, "first", g.VideoID())
	assert.NoError(t, g.LastErr())
	assert.Equal(t, []string{"movie/550"}, videos.calls)
}

func TestGetTrailerIDEmptyResultsKeepsVideoID(t *testing.T) {
	videos := newFakeVideos()
	videos.respond("1")
	g := NewGlobal(videos, nil)
	g.SetVideoID("previous")
	version := g.Version()

	err := g.GetTrailerID(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrNoTrailer)
	assert.Equal(t, "previous", g.VideoID())
	assert.ErrorIs(t, g.LastErr(), domain.ErrNoTrailer)
	assert.Equal(t, version, g.Version())
}

func TestGetTrailerIDFailureKeepsVideoID(t *testing.T) {
	videos := newFakeVideos()
	videos.fail("2", domain.ErrServiceOffline)
	g := NewGlobal(videos, nil)
	g.SetVideoID("previous")

	err := g.GetTrailerID(context.Background(), "2")
	assert.ErrorIs(t, err, domain.ErrServiceOffline)
	assert.Equal(t, "previous", g.VideoID())
	assert.ErrorIs(t, g.LastErr(), domain.ErrServiceOffline)
}

func TestGetTrailerIDLatestLookupWins(t *testing.T) {
	videos := newFakeVideos()
	videos.respond("old", "stale-key")
	videos.respond("new", "fresh-key")
	release := videos.gate("old")
	g := NewGlobal(videos, nil)

	oldDone := make(chan error, 1)
	go func() {
		oldDone <- g.GetTrailerID(context.Background(), "old")
	}()

	// Wait until the old lookup is in flight
	require.Eventually(t, func() bool {
		videos.mu.Lock()
		defer videos.mu.Unlock()
		return len(videos.calls) == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, g.GetTrailerID(context.Background(), "new"))
	assert.Equal(t, "fresh-key", g.VideoID())

	close(release)
	assert.ErrorIs(t, <-oldDone, domain.ErrSuperseded)
	assert.Equal(t, "fresh-key", g.VideoID(), "out-of-order response is dropped")
}

func TestGetTrailerIDCancelsPredecessor(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	g := NewGlobal(cancelAware{started: started, cancelled: cancelled}, nil)

	done := make(chan error, 1)
	go func() {
		done <- g.GetTrailerID(context.Background(), "slow")
	}()
	<-started

	g.SetIsModalOpen(true)
	g.CloseModal()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight lookup was not cancelled")
	}
	assert.ErrorIs(t, <-done, domain.ErrSuperseded)
	assert.Equal(t, "", g.VideoID())
}

type cancelAware struct {
	started   chan struct{}
	cancelled chan struct{}
}

func (c cancelAware) GetVideos(ctx context.Context, _ domain.Category, _ string) (domain.VideoList, error) {
	close(c.started)
	<-ctx.Done()
	close(c.cancelled)
	return domain.VideoList{}, ctx.Err()
}

func TestCloseModalIsIdempotent(t *testing.T) {
	g := NewGlobal(newFakeVideos(), nil)
	g.SetIsModalOpen(true)
	g.SetVideoID("abc")
	version := g.Version()

	g.CloseModal()
	assert.Equal(t, GlobalSnapshot{}, g.Snapshot())
	assert.Equal(t, version+1, g.Version(), "close is a single transition")

	g.CloseModal()
	assert.Equal(t, GlobalSnapshot{}, g.Snapshot())
	assert.Equal(t, version+1, g.Version(), "closing a closed modal is a no-op")
}

func TestCloseModalObservedWithVideoCleared(t *testing.T) {
	g := NewGlobal(newFakeVideos(), nil)
	g.SetIsModalOpen(true)
	g.SetVideoID("abc")

	var seen []GlobalSnapshot
	g.OnChange(func() { seen = append(seen, g.Snapshot()) })
	g.CloseModal()

	require.Len(t, seen, 1)
	assert.Equal(t, GlobalSnapshot{}, seen[0])
}

func TestOpenTrailer(t *testing.T) {
	videos := newFakeVideos()
	videos.respond("1399", "got-key")
	g := NewGlobal(videos, nil)

	require.NoError(t, g.OpenTrailer(context.Background(), domain.CategoryTV, "1399"))
	snap := g.Snapshot()
	assert.True(t, snap.IsModalOpen)
	assert.Equal(t, "got-key", snap.VideoID)
	assert.Equal(t, []string{"tv/1399"}, videos.calls)
}

func TestSidebarSetters(t *testing.T) {
	g := NewGlobal(newFakeVideos(), nil)

	g.SetShowSidebar(true)
	assert.True(t, g.ShowSidebar())
	g.ToggleSidebar()
	assert.False(t, g.ShowSidebar())

	version := g.Version()
	g.SetShowSidebar(false)
	assert.Equal(t, version, g.Version())
}

func TestLastErrClearedOnSuccess(t *testing.T) {
	videos := newFakeVideos()
	videos.fail("x", errors.New("boom"))
	videos.respond("y", "k")
	g := NewGlobal(videos, nil)

	assert.Error(t, g.GetTrailerID(context.Background(), "x"))
	assert.Error(t, g.LastErr())
	require.NoError(t, g.GetTrailerID(context.Background(), "y"))
	assert.NoError(t, g.LastErr())
}
