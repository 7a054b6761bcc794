package schedule

import (
	"fmt"
	"log/slog"
	"time"

	"nyc-rep-showtimes/lib/textutil"

	"github.com/antzucaro/matchr"
)

// titles this similar under different identifiers are probably the same
// film slipping through the identifier chain; worth a warning but never
// an automatic merge
const nearDuplicateThreshold = 0.95

// Assembler accumulates per-film and per-showing records in container
// order and produces the canonical document. films merge
// first-write-wins: the first appearance of a film_id in a run decides
// its descriptive fields.
type Assembler struct {
	theater    Theater
	films      map[string]Film
	screenings []Screening
}

func NewAssembler(theater Theater) *Assembler {
	return &Assembler{
		theater: theater,
		films:   map[string]Film{},
	}
}

func (a *Assembler) AddFilm(f Film) {
	if _, seen := a.films[f.FilmID]; seen {
		return
	}
	a.films[f.FilmID] = f
}

func (a *Assembler) AddScreening(s Screening) {
	s.TheaterID = a.theater.ID
	a.screenings = append(a.screenings, s)
}

// AddClosedDay emits the single synthetic record a closed day gets:
// status only, plus the human-readable note from the page.
func (a *Assembler) AddClosedDay(date, note string) {
	a.screenings = append(a.screenings, Screening{
		TheaterID: a.theater.ID,
		Date:      date,
		Status:    StatusClosed,
		Notes:     note,
	})
}

// Document validates referential completeness (every film_id referenced
// by a screening has a Film entry) and returns the final document. a
// violation is a scraper bug, not a site quirk, so it fails the run.
func (a *Assembler) Document(source, sourceURL string, fetchedAt time.Time) (*Document, error) {
	for _, s := range a.screenings {
		if s.Status == StatusClosed {
			if s.FilmID != "" {
				return nil, fmt.Errorf("closed day %s carries film %q", s.Date, s.FilmID)
			}
			continue
		}
		if _, ok := a.films[s.FilmID]; !ok {
			return nil, fmt.Errorf("screening %s %s references unknown film %q", s.Date, s.Time, s.FilmID)
		}
	}

	a.warnNearDuplicates(source)

	return &Document{
		Source:     source,
		SourceURL:  sourceURL,
		FetchedAt:  FormatFetchedAt(fetchedAt),
		Theater:    a.theater,
		Films:      a.films,
		Screenings: a.screenings,
	}, nil
}

func (a *Assembler) warnNearDuplicates(source string) {
	type entry struct {
		id    string
		title string
	}
	var entries []entry
	for id, f := range a.films {
		entries = append(entries, entry{id: id, title: textutil.Slugify(f.Title)})
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			similarity := matchr.JaroWinkler(entries[i].title, entries[j].title, false)
			if similarity >= nearDuplicateThreshold {
				slog.Warn("possible duplicate film under distinct identifiers",
					"source", source,
					"left", entries[i].id,
					"right", entries[j].id,
					"similarity", similarity)
			}
		}
	}
}
