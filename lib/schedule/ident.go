package schedule

import (
	"regexp"

	"nyc-rep-showtimes/lib/textutil"
)

// film identifiers come from a three-tier fallback, first success wins:
//  1. the ticketing-system id embedded in the detail URL, stable across
//     title changes ("?vista_film_id=9999002187")
//  2. the /film/<slug> path segment Film Forum uses
//  3. a slug synthesized from the normalized title
// each tier is a pure function of (url, title), so the same input
// always produces the same id within and across runs.

var (
	vistaFilmIDRegex = regexp.MustCompile(`vista_film_id=(\d+)`)
	filmPathRegex    = regexp.MustCompile(`/film/([^/?#]+)`)
)

type identAttempt func(detailURL, title string) (string, bool)

func fromTicketingID(detailURL, _ string) (string, bool) {
	m := vistaFilmIDRegex.FindStringSubmatch(detailURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func fromURLSlug(detailURL, _ string) (string, bool) {
	m := filmPathRegex.FindStringSubmatch(detailURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func fromTitle(_, title string) (string, bool) {
	s := textutil.Slugify(title)
	return s, s != ""
}

var identChain = []identAttempt{fromTicketingID, fromURLSlug, fromTitle}

// FilmID derives the stable film identifier for a detail URL and title.
// returns "" only when every tier comes up empty (blank title and an
// unrecognizable URL).
func FilmID(detailURL, title string) string {
	for _, attempt := range identChain {
		if id, ok := attempt(detailURL, title); ok {
			return id
		}
	}
	return ""
}
