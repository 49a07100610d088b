package domain

import (
	"strconv"
	"strings"
)

// Category partitions TMDB content by media type
type Category string

const (
	CategoryMovie Category = "movie"
	CategoryTV    Category = "tv"
)

// ListType selects a curated TMDB listing within a category
type ListType string

const (
	ListPopular     ListType = "popular"
	ListTopRated    ListType = "top_rated"
	ListUpcoming    ListType = "upcoming"
	ListNowPlaying  ListType = "now_playing"
	ListOnTheAir    ListType = "on_the_air"
	ListAiringToday ListType = "airing_today"
)

// ListTypes returns the listings TMDB exposes for a category
func ListTypes(c Category) []ListType {
	if c == CategoryTV {
		return []ListType{ListPopular, ListTopRated, ListOnTheAir, ListAiringToday}
	}
	return []ListType{ListPopular, ListTopRated, ListUpcoming, ListNowPlaying}
}

// Label returns a human-readable name for the listing
func (l ListType) Label() string {
	words := strings.Split(string(l), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Movie is a movie or TV show record as returned by TMDB listings.
// Movies carry Title/OriginalTitle, shows carry Name.
type Movie struct {
	ID            int     `json:"id"`
	PosterPath    string  `json:"poster_path"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Title         string  `json:"title,omitempty"`
	Name          string  `json:"name,omitempty"`
	Overview      string  `json:"overview"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	FirstAirDate  string  `json:"first_air_date,omitempty"`
	VoteAverage   float64 `json:"vote_average"`
	MediaType     string  `json:"media_type,omitempty"`
}

// GetID returns the TMDB id as a string
func (m Movie) GetID() string {
	return strconv.Itoa(m.ID)
}

// GetTitle returns the display title, preferring the original title like the web UI does
func (m Movie) GetTitle() string {
	switch {
	case m.OriginalTitle != "":
		return m.OriginalTitle
	case m.Name != "":
		return m.Name
	default:
		return m.Title
	}
}

// GetYear returns the release or first air year (0 if unknown)
func (m Movie) GetYear() int {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// GetDescription returns secondary info for list rows
func (m Movie) GetDescription() string {
	year := m.GetYear()
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// CategoryOr returns the record's media type, guessing from the title
// fields when TMDB did not say, and fallback when neither tells
func (m Movie) CategoryOr(fallback Category) Category {
	switch {
	case m.MediaType == string(CategoryMovie) || m.MediaType == string(CategoryTV):
		return Category(m.MediaType)
	case m.Name != "" && m.Title == "" && m.OriginalTitle == "":
		return CategoryTV
	case m.Title != "" || m.OriginalTitle != "":
		return CategoryMovie
	default:
		return fallback
	}
}

// Page is one page of a paginated TMDB listing
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// HasNext reports whether another page is available
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Video is a promotional video attached to a show
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// WatchURL returns a browser URL for the video, empty for unknown sites
func (v Video) WatchURL() string {
	return TrailerURL(v.Key)
}

// TrailerURL returns the YouTube watch URL for a video key
func TrailerURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + key
}

// VideoList is the body of the videos endpoint and of the appended videos sub-resource
type VideoList struct {
	ID      int     `json:"id,omitempty"`
	Results []Video `json:"results"`
}

// Genre is a TMDB genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one credited actor
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is one credited crew member
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits is the appended credits sub-resource
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// ShowDetail is a single movie or show with videos and credits appended
type ShowDetail struct {
	Movie
	Genres         []Genre   `json:"genres"`
	Runtime        int       `json:"runtime,omitempty"`
	EpisodeRunTime []int     `json:"episode_run_time,omitempty"`
	Tagline        string    `json:"tagline,omitempty"`
	Status         string    `json:"status,omitempty"`
	Videos         VideoList `json:"videos"`
	Credits        Credits   `json:"credits"`
}

// Directors returns the names of crew members credited as director
func (d ShowDetail) Directors() []string {
	var names []string
	for _, c := range d.Credits.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

// TopCast returns up to n cast members in billing order
func (d ShowDetail) TopCast(n int) []CastMember {
	if n > len(d.Credits.Cast) {
		n = len(d.Credits.Cast)
	}
	return d.Credits.Cast[:n]
}

// GenreNames returns genre names joined for display
func (d ShowDetail) GenreNames() string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}
