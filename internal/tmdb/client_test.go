package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("http://localhost", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")

	client, err := NewClient("", "key", WithTimeout(5*time.Second), WithLanguage("fr-FR"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.Equal(t, "fr-FR", client.language)

	custom := &http.Client{Timeout: time.Second}
	client, err = NewClient("http://localhost/", "key", WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Equal(t, custom, client.httpClient)
	assert.Equal(t, "http://localhost", client.baseURL)
}

func TestNewClientTimeoutCopiesHTTPClient(t *testing.T) {
	shared := &http.Client{}
	client, err := NewClient("", "key", WithHTTPClient(shared), WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Zero(t, shared.Timeout, "caller's client is left alone")
	assert.NotSame(t, shared, client.httpClient)
	assert.Equal(t, 2*time.Second, client.httpClient.Timeout)

	client, err = NewClient("", "key", WithHTTPClient(nil), WithTimeout(time.Second))
	require.NoError(t, err)
	require.NotNil(t, client.httpClient)
	assert.Equal(t, time.Second, client.httpClient.Timeout)
}

func TestGetShows(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"page":          1,
			"total_pages":   2,
			"total_results": 21,
			"results": []map[string]interface{}{
				{"id": 27205, "original_title": "Inception", "overview": "Dreams.", "release_date": "2010-07-15"},
			},
		})
	})

	page, err := client.GetShows(context.Background(), ShowsQuery{
		Category:    domain.CategoryMovie,
		SearchQuery: "Inception",
		Page:        1,
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, 27205, page.Results[0].ID)
	assert.Equal(t, "Inception", page.Results[0].GetTitle())
	assert.Equal(t, 2010, page.Results[0].GetYear())
	assert.True(t, page.HasNext())
}

func TestGetShow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1399", r.URL.Path)
		assert.Equal(t, "videos,credits", r.URL.Query().Get("append_to_response"))

		w.Write([]byte(`{
			"id": 1399,
			"name": "Game of Thrones",
			"genres": [{"id": 18, "name": "Drama"}, {"id": 10765, "name": "Sci-Fi & Fantasy"}],
			"videos": {"results": [{"key": "abc", "site": "YouTube", "type": "Trailer"}]},
			"credits": {
				"cast": [{"id": 1, "name": "Emilia Clarke", "order": 0}],
				"crew": [{"id": 2, "name": "Alan Taylor", "job": "Director"}]
			}
		}`))
	})

	detail, err := client.GetShow(context.Background(), ShowQuery{Category: domain.CategoryTV, ID: 1399})
	require.NoError(t, err)
	assert.Equal(t, "Game of Thrones", detail.GetTitle())
	assert.Equal(t, "Drama, Sci-Fi & Fantasy", detail.GenreNames())
	require.Len(t, detail.Videos.Results, 1)
	assert.Equal(t, "abc", detail.Videos.Results[0].Key)
	assert.Equal(t, []string{"Alan Taylor"}, detail.Directors())
	assert.Len(t, detail.TopCast(5), 1)
}

func TestGetVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550/videos", r.URL.Path)
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		w.Write([]byte(`{"id": 550, "results": [{"key": "first"}, {"key": "second"}]}`))
	})

	list, err := client.GetVideos(context.Background(), domain.CategoryMovie, "550")
	require.NoError(t, err)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "first", list.Results[0].Key)
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.True(t, IsAuthError(err))
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:   "server error",
			status: http.StatusServiceUnavailable,
			body:   `{"status_code": 43, "status_message": "Service offline."}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
				assert.Equal(t, "Service offline.", apiErr.StatusMessage)
				assert.Contains(t, apiErr.Error(), "503")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := client.GetVideos(context.Background(), domain.CategoryMovie, "1")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": "nope"`))
	})
	_, err := client.GetVideos(context.Background(), domain.CategoryMovie, "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestServiceOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(url, "key")
	require.NoError(t, err)
	_, err = client.GetShow(context.Background(), ShowQuery{Category: domain.CategoryMovie, ID: 1})
	assert.ErrorIs(t, err, domain.ErrServiceOffline)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = ParseID("abc")
	assert.Error(t, err)
	_, err = ParseID("0")
	assert.Error(t, err)
}
