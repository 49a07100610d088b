package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieCategoryOr(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		want  Category
	}{
		{"media type wins", Movie{MediaType: "tv", Title: "Alien"}, CategoryTV},
		{"name only is a show", Movie{Name: "Andor"}, CategoryTV},
		{"title is a movie", Movie{Title: "Alien"}, CategoryMovie},
		{"original title is a movie", Movie{OriginalTitle: "Alien", Name: "x"}, CategoryMovie},
		{"unknown media type falls through", Movie{MediaType: "person", Name: "Sigourney"}, CategoryTV},
		{"nothing set", Movie{}, CategoryMovie},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.movie.CategoryOr(CategoryMovie))
		})
	}

	assert.Equal(t, CategoryTV, Movie{}.CategoryOr(CategoryTV))
}

func TestMovieDisplayHelpers(t *testing.T) {
	m := Movie{ID: 42, Title: "Alien", OriginalTitle: "Alien (1979)", ReleaseDate: "1979-05-25"}
	assert.Equal(t, "42", m.GetID())
	assert.Equal(t, "Alien (1979)", m.GetTitle())
	assert.Equal(t, 1979, m.GetYear())
	assert.Equal(t, "1979", m.GetDescription())

	show := Movie{Name: "Andor", FirstAirDate: "2022"}
	assert.Equal(t, "Andor", show.GetTitle())
	assert.Equal(t, 2022, show.GetYear())

	assert.Zero(t, Movie{ReleaseDate: "soon"}.GetYear())
	assert.Empty(t, Movie{}.GetDescription())
}

func TestPageHasNext(t *testing.T) {
	assert.True(t, Page[Movie]{Page: 1, TotalPages: 2}.HasNext())
	assert.False(t, Page[Movie]{Page: 2, TotalPages: 2}.HasNext())
	assert.False(t, Page[Movie]{}.HasNext())
}

func TestTrailerURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=LjLamj-b0I8", TrailerURL("LjLamj-b0I8"))
	assert.Empty(t, TrailerURL(""))
	assert.Equal(t, TrailerURL("abc"), Video{Key: "abc"}.WatchURL())
}

func TestShowDetailHelpers(t *testing.T) {
	d := ShowDetail{
		Genres: []Genre{{Name: "Horror"}, {Name: "Science Fiction"}},
		Credits: Credits{
			Cast: []CastMember{{Name: "Sigourney Weaver"}, {Name: "Tom Skerritt"}},
			Crew: []CrewMember{{Name: "Ridley Scott", Job: "Director"}, {Name: "Dan O'Bannon", Job: "Screenplay"}},
		},
	}

	assert.Equal(t, "Horror, Science Fiction", d.GenreNames())
	assert.Equal(t, []string{"Ridley Scott"}, d.Directors())
	assert.Len(t, d.TopCast(5), 2)
	assert.Equal(t, "Sigourney Weaver", d.TopCast(1)[0].Name)
	assert.Empty(t, ShowDetail{}.Directors())
}
