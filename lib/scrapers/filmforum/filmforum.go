package filmforum

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"regexp"
	"time"

	"nyc-rep-showtimes/lib/htmlutil"
	"nyc-rep-showtimes/lib/restyutil"
	"nyc-rep-showtimes/lib/schedule"
	"nyc-rep-showtimes/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/filmforum")

const (
	Source  = "filmforum_nyc"
	BaseURL = "https://filmforum.org"

	defaultShowtimesURL = "https://filmforum.org/"
	userAgent           = "nyc-rep-showtimes-bot/1.0 (+https://github.com/chateau-angst/nyc-rep-showtimes)"
	acceptHeader        = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

var Theater = schedule.Theater{ID: "filmforum", Name: "Film Forum", City: "New York"}

type Options struct {
	// overrides FILMFORUM_SOURCE_URL and the default schedule page
	URL string
	// a preconfigured client, mostly for tests
	Client *resty.Client
	// reference date for day-number inference; defaults to the current
	// Eastern date
	Today time.Time
}

type Scraper struct {
	http  *resty.Client
	url   string
	today time.Time
}

func New(opts Options) *Scraper {
	link := opts.URL
	if link == "" {
		link = os.Getenv("FILMFORUM_SOURCE_URL")
	}
	if link == "" {
		link = defaultShowtimesURL
	}

	client := opts.Client
	if client == nil {
		client = restyutil.NewScraperClient(restyutil.ClientOptions{
			UserAgent:  userAgent,
			Accept:     acceptHeader,
			TracerName: "scrapers/filmforum/http",
		})
	}

	return &Scraper{http: client, url: link, today: opts.Today}
}

func (s *Scraper) Source() string {
	return Source
}

func (s *Scraper) URL() string {
	return s.url
}

func (s *Scraper) Client() *resty.Client {
	return s.http
}

func (s *Scraper) Fetch(ctx context.Context) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	res, err := s.http.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch schedule page")
		return nil, &restyutil.FetchError{URL: s.url, Err: err}
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, &restyutil.FetchError{URL: s.url, Status: res.StatusCode()}
	}

	return res.Body(), nil
}

// the day-of-month marker sits in a non-rendered HTML comment near the
// top of each tab panel, e.g. <!-- 19 -->
var dayNumberRegex = regexp.MustCompile(`\b(\d{1,2})\b`)

func panelDayToken(panel *goquery.Selection) (string, bool) {
	for _, node := range panel.Nodes {
		for _, comment := range htmlutil.Comments(node) {
			if m := dayNumberRegex.FindString(comment); m != "" {
				return m, true
			}
		}
	}
	return "", false
}

// Parse extracts the "Playing This Week" block. day panels only carry
// bare day-of-month numbers, so absolute dates come from inference
// against today's Eastern date.
func (s *Scraper) Parse(ctx context.Context, body []byte, fetchedAt time.Time) (*schedule.Document, error) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparsable markup")
		return nil, err
	}

	module := doc.Find("div.module.showtimes-table").First()
	if module.Length() == 0 {
		err := &schedule.LayoutError{Source: Source, Missing: "div.module.showtimes-table"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "layout changed")
		return nil, err
	}

	panels := module.Find("div.showtimes-container > div[id^='tabs-']")
	if panels.Length() == 0 {
		err := &schedule.LayoutError{Source: Source, Missing: "day panels (div#tabs-0..6)"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "layout changed")
		return nil, err
	}

	var tokens []string
	missingToken := false
	panels.Each(func(_ int, panel *goquery.Selection) {
		token, ok := panelDayToken(panel)
		if !ok {
			// proceeding without it would silently misdate the rest of
			// the week, so fail loudly instead
			missingToken = true
			return
		}
		tokens = append(tokens, token)
	})
	if missingToken {
		err := &schedule.LayoutError{Source: Source, Missing: "day-of-month comment in a day panel"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "layout changed")
		return nil, err
	}

	today := s.today
	if today.IsZero() {
		today = timezone.Today()
	}
	dates, err := schedule.InferredDates{Today: today}.Resolve(tokens)
	if err != nil {
		layoutErr := &schedule.LayoutError{Source: Source, Missing: err.Error()}
		span.RecordError(layoutErr)
		span.SetStatus(codes.Error, "layout changed")
		return nil, layoutErr
	}

	asm := schedule.NewAssembler(Theater)
	panels.Each(func(i int, panel *goquery.Selection) {
		s.parseDay(asm, panel, dates[i])
	})

	out, err := asm.Document(Source, s.url, fetchedAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assembly failed")
		return nil, err
	}
	return out, nil
}

// each film row is a <p> holding <strong><a href="/film/...">TITLE</a></strong>
// followed by <span> showtime cells
func (s *Scraper) parseDay(asm *schedule.Assembler, panel *goquery.Selection, date string) {
	panel.Find("p").Each(func(_ int, row *goquery.Selection) {
		strong := row.Find("strong").First()
		if strong.Length() == 0 {
			return
		}
		anchor := strong.Find("a").First()
		if anchor.Length() == 0 {
			// e.g. "Showtimes coming soon!"
			return
		}
		href := anchor.AttrOr("href", "")
		if href == "" {
			return
		}

		spans := row.Find("span")
		if spans.Length() == 0 {
			return
		}

		title := htmlutil.CleanText(anchor.Text())
		detailURL := htmlutil.AbsoluteURL(BaseURL, href)
		filmID := schedule.FilmID(detailURL, title)
		if filmID == "" {
			return
		}

		asm.AddFilm(schedule.Film{
			FilmID:    filmID,
			Title:     title,
			DetailURL: detailURL,
		})

		spans.Each(func(_ int, cell *goquery.Selection) {
			slot := ParseTimeSlot(cell.Text())
			if slot.Time == "" {
				// not a showtime; keep the raw text in the log so a new
				// notation shows up in diagnostics instead of vanishing
				slog.Debug("skipping unrecognized showtime text",
					"source", Source, "film", filmID, "raw", slot.Notes)
				return
			}
			asm.AddScreening(schedule.Screening{
				Date:   date,
				Time:   slot.Time,
				Status: schedule.StatusAvailable,
				FilmID: filmID,
				Notes:  slot.Notes,
				Tags:   slot.Tags,
			})
		})
	})
}
