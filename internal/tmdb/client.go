package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/flick/internal/domain"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client is a TMDB v3 API client. It performs exactly one HTTP request per
// call; caching and re-fetching belong to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

var _ domain.VideoSource = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client (nil keeps the default)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the request timeout on a copy of the HTTP client
// (0 keeps the client's own timeout)
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLanguage sets the language sent to the videos endpoint
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// NewClient creates a new TMDB API client
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tmdb API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		language:   "en-US",
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// doRequest performs a GET for a target built by one of the query types
func (c *Client) doRequest(ctx context.Context, target string) ([]byte, error) {
	reqURL := c.baseURL + "/" + target

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("tmdb request", "path", strings.SplitN(target, "?", 2)[0])

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		apiErr.StatusMessage = eb.StatusMessage
	}
	c.logger.Error("tmdb request error", "status", resp.StatusCode, "message", apiErr.StatusMessage)
	return nil, apiErr
}

// GetShows returns one page of shows for a search, similar-shows or listing query
func (c *Client) GetShows(ctx context.Context, q ShowsQuery) (domain.Page[domain.Movie], error) {
	var page domain.Page[domain.Movie]

	body, err := c.doRequest(ctx, q.Target(c.apiKey))
	if err != nil {
		return page, err
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("failed to parse response: %w", err)
	}
	return page, nil
}

// GetShow returns a single show with videos and credits appended
func (c *Client) GetShow(ctx context.Context, q ShowQuery) (domain.ShowDetail, error) {
	var detail domain.ShowDetail

	body, err := c.doRequest(ctx, q.Target(c.apiKey))
	if err != nil {
		return detail, err
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		return detail, fmt.Errorf("failed to parse response: %w", err)
	}
	return detail, nil
}

// GetVideos returns the videos attached to a show
func (c *Client) GetVideos(ctx context.Context, category domain.Category, id string) (domain.VideoList, error) {
	var list domain.VideoList

	body, err := c.doRequest(ctx, VideosTarget(category, id, c.apiKey, c.language))
	if err != nil {
		return list, err
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return list, fmt.Errorf("failed to parse response: %w", err)
	}
	return list, nil
}

// IsAuthError reports whether err means the API key was rejected
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

// ParseID converts a string show id to the integer TMDB uses
func ParseID(id string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid show id %q", id)
	}
	return n, nil
}
