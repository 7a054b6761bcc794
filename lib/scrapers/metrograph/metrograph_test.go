package metrograph

import (
	"context"
	"testing"
	"time"

	"nyc-rep-showtimes/lib/schedule"
	"nyc-rep-showtimes/lib/telemetry"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/calendar.html
var calendarFixture []byte

func TestParseCalendar(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:metrograph")
	defer cleanup()

	scraper := New(Options{URL: "https://metrograph.com/"})
	fetchedAt := time.Date(2026, 1, 19, 15, 4, 5, 0, time.UTC)

	doc, err := scraper.Parse(context.Background(), calendarFixture, fetchedAt)
	require.NoError(t, err)

	require.Equal(t, "metrograph", doc.Source)
	require.Equal(t, "https://metrograph.com/", doc.SourceURL)
	require.Equal(t, "2026-01-19T15:04:05Z", doc.FetchedAt)
	require.Equal(t, Theater, doc.Theater)

	// one film, the empty "none" container and the anchor-less item are
	// both skipped
	require.Len(t, doc.Films, 1)
	film := doc.Films["9999002187"]
	require.Equal(t, "An Elephant Sitting Still", film.Title)
	require.Equal(t, "Hu Bo", film.Director)
	require.Equal(t, 2018, film.Year)
	require.Equal(t, 230, film.RuntimeMin)
	require.Equal(t, "DCP", film.Format)
	require.Equal(t, "https://metrograph.com/posters/an-elephant-sitting-still.jpg", film.PosterURL)
	require.Equal(t, "https://metrograph.com/film/?vista_film_id=9999002187", film.DetailURL)

	require.Len(t, doc.Screenings, 3)

	available := doc.Screenings[0]
	require.Equal(t, schedule.StatusAvailable, available.Status)
	require.Equal(t, "2026-01-19", available.Date)
	require.Equal(t, "1:00", available.Time)
	require.Equal(t, "https://tickets.metrograph.com/buy?id=1&session=77", available.TicketURL)
	require.Equal(t, "9999002187", available.FilmID)
	require.Equal(t, "Introduced by the programmer.", available.Notes)

	soldOut := doc.Screenings[1]
	require.Equal(t, schedule.StatusSoldOut, soldOut.Status)
	require.Equal(t, "6:30", soldOut.Time)
	require.Empty(t, soldOut.TicketURL)

	closed := doc.Screenings[2]
	require.Equal(t, schedule.StatusClosed, closed.Status)
	require.Equal(t, "2026-01-20", closed.Date)
	require.Equal(t, "Closed today for a private event", closed.Notes)
	require.Empty(t, closed.FilmID)
	require.Empty(t, closed.Time)
	require.Empty(t, closed.TicketURL)
}

func TestParseMissingCalendar(t *testing.T) {
	scraper := New(Options{URL: "https://metrograph.com/"})

	_, err := scraper.Parse(context.Background(), []byte("<html><body>redesigned</body></html>"), time.Now())
	require.Error(t, err)

	var layoutErr *schedule.LayoutError
	require.ErrorAs(t, err, &layoutErr)
	require.Equal(t, Source, layoutErr.Source)
}

func TestNewURLPrecedence(t *testing.T) {
	t.Setenv("METROGRAPH_SOURCE_URL", "https://example.com/env")

	require.Equal(t, "https://example.com/env", New(Options{}).URL())
	require.Equal(t, "https://example.com/opt", New(Options{URL: "https://example.com/opt"}).URL())
}
