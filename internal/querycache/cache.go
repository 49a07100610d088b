// Package querycache is the request cache behind the show service: an LRU of
// decoded responses keyed by request target, with in-flight deduplication and
// age-based staleness.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSize      = 128
	DefaultStaleTime = 5 * time.Minute

	// DefaultFetchTimeout bounds a shared fetch once it no longer follows
	// any single caller's context
	DefaultFetchTimeout = 30 * time.Second
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache holds successful query results. Errors are never cached.
type Cache struct {
	entries   *lru.Cache[string, entry]
	group     singleflight.Group
	clock     clockwork.Clock
	staleTime time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures a Cache
type Option func(*Cache)

// WithClock replaces the clock used for staleness
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// WithFetchTimeout bounds each shared fetch
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a cache holding up to size results, each fresh for staleTime
func New(size int, staleTime time.Duration, opts ...Option) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}

	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	c := &Cache{
		entries:   entries,
		clock:     clockwork.NewRealClock(),
		staleTime: staleTime,
		timeout:   DefaultFetchTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Cache) isFresh(e entry) bool {
	return c.clock.Since(e.fetchedAt) < c.staleTime
}

// Invalidate drops a single key
func (c *Cache) Invalidate(key string) {
	c.entries.Remove(key)
}

// InvalidatePrefix drops every key starting with prefix
func (c *Cache) InvalidatePrefix(prefix string) int {
	removed := 0
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.entries.Remove(key)
			removed++
		}
	}
	return removed
}

// InvalidateStale drops every entry past its stale time so the next read
// refetches. Called when the terminal regains focus.
func (c *Cache) InvalidateStale() int {
	removed := 0
	for _, key := range c.entries.Keys() {
		if e, ok := c.entries.Peek(key); ok && !c.isFresh(e) {
			c.entries.Remove(key)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("invalidated stale queries", "count", removed)
	}
	return removed
}

// Purge drops everything
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached results
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Query is a snapshot of one query's state as the UI sees it
type Query[T any] struct {
	Data      T
	Err       error
	Loading   bool
	FromCache bool
	FetchedAt time.Time
}

// Peek returns the cached result for key without fetching or touching recency
func Peek[T any](c *Cache, key string) (Query[T], bool) {
	e, ok := c.entries.Peek(key)
	if !ok {
		return Query[T]{}, false
	}
	data, ok := e.value.(T)
	if !ok {
		return Query[T]{}, false
	}
	return Query[T]{Data: data, FromCache: true, FetchedAt: e.fetchedAt}, true
}

// Fetch returns the fresh cached result for key, or runs fn. Concurrent
// fetches of the same key share one call; that call keeps ctx's values but
// not its cancellation, so one caller giving up does not fail the others.
// A caller whose ctx ends first returns ctx.Err() while the fetch still
// fills the cache.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) Query[T] {
	if e, ok := c.entries.Get(key); ok && c.isFresh(e) {
		if data, ok := e.value.(T); ok {
			return Query[T]{Data: data, FromCache: true, FetchedAt: e.fetchedAt}
		}
	}

	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		data, err := fn(fctx)
		if err != nil {
			return nil, err
		}
		e := entry{value: data, fetchedAt: c.clock.Now()}
		c.entries.Add(key, e)
		return e, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return Query[T]{Err: ctx.Err()}
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		c.logger.Debug("query failed", "key", key, "error", err)
		return Query[T]{Err: err}
	}

	e := v.(entry)
	data, ok := e.value.(T)
	if !ok {
		return Query[T]{Err: fmt.Errorf("query %s: cached %T, want %T", key, e.value, data)}
	}
	return Query[T]{Data: data, FromCache: shared, FetchedAt: e.fetchedAt}
}
