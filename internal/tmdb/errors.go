package tmdb

import "fmt"

// APIError represents an unexpected TMDB response status
type APIError struct {
	StatusCode    int
	StatusMessage string
	Body          string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusMessage != "" {
		return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.StatusMessage)
	}
	return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
}

// errorBody is the error envelope TMDB returns on failures
type errorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
