package schedule

import "time"

// Theater is static identity supplied by each scraper, never derived
// from the page.
type Theater struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusSoldOut   Status = "sold_out"
	StatusClosed    Status = "closed"
)

// Film is keyed by FilmID, see FilmID() for how the key is derived.
// optional fields are omitted from JSON rather than serialized as null;
// a zero Year/RuntimeMin means unknown.
type Film struct {
	FilmID     string `json:"film_id"`
	Title      string `json:"title"`
	Director   string `json:"director,omitempty"`
	Year       int    `json:"year,omitempty"`
	RuntimeMin int    `json:"runtime_min,omitempty"`
	Format     string `json:"format,omitempty"`
	PosterURL  string `json:"poster_url,omitempty"`
	DetailURL  string `json:"detail_url"`
}

// Screening is one showing slot. Time keeps the literal text from the
// page ("2:45") -- both sites publish 12-hour times with no AM/PM
// marker and resolving that ambiguity is explicitly not attempted.
// a closed-day record has Status == StatusClosed, a Notes message, and
// no FilmID/Time/TicketURL.
type Screening struct {
	TheaterID string   `json:"theater_id"`
	Date      string   `json:"date"`
	Time      string   `json:"time,omitempty"`
	Status    Status   `json:"status"`
	TicketURL string   `json:"ticket_url,omitempty"`
	FilmID    string   `json:"film_id,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Document is one source's full week of listings, built fresh each run.
type Document struct {
	Source     string          `json:"source"`
	SourceURL  string          `json:"source_url"`
	FetchedAt  string          `json:"fetched_at"`
	Theater    Theater         `json:"theater"`
	Films      map[string]Film `json:"films"`
	Screenings []Screening     `json:"screenings"`
}

const ISODate = "2006-01-02"

func FormatFetchedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
