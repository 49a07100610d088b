package tmdb

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mmcdole/flick/internal/domain"
)

// ShowsQuery selects a list of shows. Exactly one shape is meaningful:
// a search (SearchQuery set), a similar-shows lookup (ShowSimilarShows and ID),
// or a category listing (Type and Page).
type ShowsQuery struct {
	Category         domain.Category
	Type             domain.ListType
	Page             int
	SearchQuery      string
	ShowSimilarShows bool
	ID               int
}

// Target builds the request target relative to the API base URL.
// A search term wins over the similar flag, which wins over the listing.
func (q ShowsQuery) Target(apiKey string) string {
	params := url.Values{}
	params.Set("api_key", apiKey)

	if q.SearchQuery != "" {
		params.Set("query", q.SearchQuery)
		params.Set("page", strconv.Itoa(q.Page))
		return fmt.Sprintf("search/%s?%s", q.Category, params.Encode())
	}

	if q.ShowSimilarShows {
		return fmt.Sprintf("%s/%d/similar?%s", q.Category, q.ID, params.Encode())
	}

	params.Set("page", strconv.Itoa(q.Page))
	return fmt.Sprintf("%s/%s?%s", q.Category, q.Type, params.Encode())
}

// Key identifies the query for caching without leaking the API key
func (q ShowsQuery) Key() string {
	return "shows:" + q.Target("")
}

// ShowQuery selects a single show with its videos and credits
type ShowQuery struct {
	Category domain.Category
	ID       int
}

// Target builds the detail request target, appending videos and credits
func (q ShowQuery) Target(apiKey string) string {
	params := url.Values{}
	params.Set("api_key", apiKey)
	params.Set("append_to_response", "videos,credits")
	return fmt.Sprintf("%s/%d?%s", q.Category, q.ID, params.Encode())
}

// Key identifies the query for caching without leaking the API key
func (q ShowQuery) Key() string {
	return "show:" + q.Target("")
}

// VideosTarget builds the request target for a show's videos
func VideosTarget(category domain.Category, id, apiKey, language string) string {
	params := url.Values{}
	params.Set("api_key", apiKey)
	if language != "" {
		params.Set("language", language)
	}
	return fmt.Sprintf("%s/%s/videos?%s", category, url.PathEscape(id), params.Encode())
}

// Image sizes accepted by the image CDN
const (
	PosterSize   = "w342"
	BackdropSize = "w780"
	OriginalSize = "original"
)

const imageBaseURL = "https://image.tmdb.org/t/p/"

// ImageURL returns the CDN URL for an image path, empty when path is empty
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = OriginalSize
	}
	return imageBaseURL + size + path
}
