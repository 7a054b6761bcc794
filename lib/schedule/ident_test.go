package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilmIDFromTicketingID(t *testing.T) {
	id := FilmID("https://metrograph.com/film/?vista_film_id=9999002187", "Taipei Story")
	require.Equal(t, "9999002187", id)

	// the ticketing id wins even when a slug is also present
	id = FilmID("https://metrograph.com/film/taipei-story?vista_film_id=42", "Taipei Story")
	require.Equal(t, "42", id)
}

func TestFilmIDFromURLSlug(t *testing.T) {
	id := FilmID("https://filmforum.org/film/sunset-blvd", "SUNSET BLVD.")
	require.Equal(t, "sunset-blvd", id)

	id = FilmID("https://filmforum.org/film/sunset-blvd?utm=x#top", "SUNSET BLVD.")
	require.Equal(t, "sunset-blvd", id)
}

func TestFilmIDFromTitle(t *testing.T) {
	id := FilmID("https://example.com/somewhere-else", "The 400 Blows")
	require.Equal(t, "the-400-blows", id)

	// punctuation/case variants collapse to the same synthesized id
	left := FilmID("", "Sunset Blvd.")
	right := FilmID("", "SUNSET   BLVD")
	require.Equal(t, left, right)
}

func TestFilmIDDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		require.Equal(t, "9999002187", FilmID("https://metrograph.com/?vista_film_id=9999002187", ""))
		require.Equal(t, "an-autumn-afternoon", FilmID("", "An Autumn Afternoon"))
	}
}

func TestFilmIDEmpty(t *testing.T) {
	require.Equal(t, "", FilmID("https://example.com/", ""))
}
