package snapshotstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"nyc-rep-showtimes/lib/schedule"
	"nyc-rep-showtimes/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testDocument(source, fetchedAt string) *schedule.Document {
	return &schedule.Document{
		Source:    source,
		SourceURL: "https://example.com/",
		FetchedAt: fetchedAt,
		Theater:   schedule.Theater{ID: source, Name: source, City: "New York"},
		Films: map[string]schedule.Film{
			"42": {FilmID: "42", Title: "Taipei Story", DetailURL: "https://example.com/film/?vista_film_id=42"},
		},
		Screenings: []schedule.Screening{
			{TheaterID: source, Date: "2026-01-19", Time: "7:00", Status: schedule.StatusAvailable, FilmID: "42"},
		},
	}
}

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:snapshotstore")
	defer cleanup()

	sqlite, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = sqlite.Exec(Schema)
	require.NoError(t, err)
	store := NewStore(sqlite)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		entries, err := store.Pull(ctx, "metrograph", 10)
		require.NoError(t, err)
		require.Len(t, entries, 0)
	}
	{
		require.NoError(t, store.Push(ctx, testDocument("metrograph", "2026-01-19T12:00:00Z")))
		require.NoError(t, store.Push(ctx, testDocument("metrograph", "2026-01-20T12:00:00Z")))
		require.NoError(t, store.Push(ctx, testDocument("filmforum_nyc", "2026-01-19T12:00:00Z")))
	}
	{
		entries, err := store.Pull(ctx, "metrograph", 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		// newest first
		require.Equal(t, "2026-01-20T12:00:00Z", entries[0].Document.FetchedAt)
		require.Equal(t, time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC), entries[0].FetchedAt)

		// the archived document round-trips intact
		require.Equal(t, "Taipei Story", entries[1].Document.Films["42"].Title)
		require.Len(t, entries[1].Document.Screenings, 1)
	}
	{
		entries, err := store.Pull(ctx, "metrograph", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	}
}
