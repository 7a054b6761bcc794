package metrograph

import (
	"bytes"
	"context"
	"html"
	"os"
	"strings"
	"time"

	"nyc-rep-showtimes/lib/htmlutil"
	"nyc-rep-showtimes/lib/restyutil"
	"nyc-rep-showtimes/lib/schedule"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/metrograph")

const (
	Source  = "metrograph"
	BaseURL = "https://metrograph.com"

	defaultShowtimesURL = "https://metrograph.com/"
	dayIDPrefix         = "calendar-list-day-"
	userAgent           = "nyc-rep-showtimes-bot/1.0 (+https://github.com/chateau-angst/nyc-rep-showtimes)"
)

var Theater = schedule.Theater{ID: "metrograph", Name: "Metrograph", City: "New York"}

type Options struct {
	// overrides METROGRAPH_SOURCE_URL and the default showtimes page
	URL string
	// a preconfigured client, mostly for tests; defaults to the
	// standard scraper client
	Client *resty.Client
}

type Scraper struct {
	http *resty.Client
	url  string
}

func New(opts Options) *Scraper {
	link := opts.URL
	if link == "" {
		link = os.Getenv("METROGRAPH_SOURCE_URL")
	}
	if link == "" {
		link = defaultShowtimesURL
	}

	client := opts.Client
	if client == nil {
		client = restyutil.NewScraperClient(restyutil.ClientOptions{
			UserAgent:  userAgent,
			TracerName: "scrapers/metrograph/http",
		})
	}

	return &Scraper{http: client, url: link}
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
		span.SetStatus(codes.Error, "failed to fetch showtimes page")
		return nil, &restyutil.FetchError{URL: s.url, Err: err}
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, &restyutil.FetchError{URL: s.url, Status: res.StatusCode()}
	}

	return res.Body(), nil
}

// Parse extracts one week of listings from the calendar markup. each
// day container carries its own ISO date in the id attribute, so date
// resolution never needs inference here.
func (s *Scraper) Parse(ctx context.Context, body []byte, fetchedAt time.Time) (*schedule.Document, error) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparsable markup")
		return nil, err
	}

	type dayPanel struct {
		sel   *goquery.Selection
		token string
	}
	var panels []dayPanel
	var tokens []string

	doc.Find("div.calendar-list-day").Each(func(_ int, day *goquery.Selection) {
		id := day.AttrOr("id", "")
		if !strings.HasPrefix(id, dayIDPrefix) {
			return
		}
		// placeholder containers carry id="calendar-list-day-none"
		if date := strings.TrimPrefix(id, dayIDPrefix); date == "none" || date == "" {
			return
		}
		panels = append(panels, dayPanel{sel: day, token: id})
		tokens = append(tokens, id)
	})
	if len(panels) == 0 {
		err := &schedule.LayoutError{Source: Source, Missing: "div.calendar-list-day containers"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "layout changed")
		return nil, err
	}

	dates, err := schedule.AttributeDates{Prefix: dayIDPrefix}.Resolve(tokens)
	if err != nil {
		layoutErr := &schedule.LayoutError{Source: Source, Missing: err.Error()}
		span.RecordError(layoutErr)
		span.SetStatus(codes.Error, "layout changed")
		return nil, layoutErr
	}

	asm := schedule.NewAssembler(Theater)
	for i, panel := range panels {
		s.parseDay(asm, panel.sel, dates[i])
	}

	out, err := asm.Document(Source, s.url, fetchedAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assembly failed")
		return nil, err
	}
	return out, nil
}

func (s *Scraper) parseDay(asm *schedule.Assembler, day *goquery.Selection, date string) {
	if day.HasClass("closed") {
		asm.AddClosedDay(date, htmlutil.CleanText(day.Text()))
		return
	}

	day.Find(".item.film-thumbnail").Each(func(_ int, item *goquery.Selection) {
		titleAnchor := item.Find("a.title").First()
		if titleAnchor.Length() == 0 {
			return
		}
		href := titleAnchor.AttrOr("href", "")
		if href == "" {
			return
		}

		title := htmlutil.CleanText(titleAnchor.Text())
		detailURL := htmlutil.AbsoluteURL(BaseURL, href)
		filmID := schedule.FilmID(detailURL, title)
		if filmID == "" {
			return
		}

		film := schedule.Film{
			FilmID:    filmID,
			Title:     title,
			DetailURL: detailURL,
		}
		if img := item.Find("a.image img").First(); img.Length() > 0 {
			film.PosterURL = img.AttrOr("src", "")
		}
		if meta := item.Find(".film-metadata").First(); meta.Length() > 0 {
			m := ParseMetadata(htmlutil.CleanText(meta.Text()))
			film.Director = m.Director
			film.Year = m.Year
			film.RuntimeMin = m.RuntimeMin
			film.Format = m.Format
		}
		asm.AddFilm(film)

		notes := ""
		if desc := item.Find(".film-description").First(); desc.Length() > 0 {
			notes = htmlutil.CleanText(desc.Text())
		}

		item.Find(".showtimes a").Each(func(_ int, anchor *goquery.Selection) {
			screening := schedule.Screening{
				Date:   date,
				Time:   strings.TrimSpace(anchor.Text()),
				Status: schedule.StatusAvailable,
				FilmID: filmID,
				Notes:  notes,
			}
			if anchor.HasClass("sold_out") {
				screening.Status = schedule.StatusSoldOut
			} else if href := anchor.AttrOr("href", ""); href != "" {
				screening.TicketURL = html.UnescapeString(href)
			}
			asm.AddScreening(screening)
		})
	})
}
