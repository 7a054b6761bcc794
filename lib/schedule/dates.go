package schedule

import (
	"fmt"
	"strconv"
	"time"

	"nyc-rep-showtimes/lib/timezone"
)

// InferWeekDates converts a sequence of bare day-of-month numbers, in
// the order the site lists them, into absolute dates. the (year, month)
// cursor starts at `today`; whenever a day number drops below its
// predecessor the cursor advances one month, wrapping the year at
// December. a 7-day window can cross at most one month boundary, so a
// single rollover is all this handles.
func InferWeekDates(dayNumbers []int, today time.Time) []time.Time {
	if len(dayNumbers) == 0 {
		return nil
	}

	year := today.Year()
	month := today.Month()

	result := make([]time.Time, 0, len(dayNumbers))
	prev := 0
	for _, d := range dayNumbers {
		if prev != 0 && d < prev {
			if month == time.December {
				month = time.January
				year++
			} else {
				month++
			}
		}
		result = append(result, time.Date(year, month, d, 0, 0, 0, 0, today.Location()))
		prev = d
	}

	return result
}

// DateResolver maps the raw per-day date tokens a locator pulls out of
// the markup (in container order) to ISO dates. the two sites encode
// day identity differently, so each gets its own strategy; a new source
// means a new resolver, not another branch.
type DateResolver interface {
	Resolve(tokens []string) ([]string, error)
}

// AttributeDates handles dates embedded directly in an attribute, e.g.
// Metrograph's id="calendar-list-day-2026-01-19".
type AttributeDates struct {
	Prefix string
}

func (r AttributeDates) Resolve(tokens []string) ([]string, error) {
	dates := make([]string, 0, len(tokens))
	for _, token := range tokens {
		raw := token
		if r.Prefix != "" {
			if len(token) <= len(r.Prefix) || token[:len(r.Prefix)] != r.Prefix {
				return nil, fmt.Errorf("day attribute %q does not carry prefix %q", token, r.Prefix)
			}
			raw = token[len(r.Prefix):]
		}
		if _, err := time.Parse(ISODate, raw); err != nil {
			return nil, fmt.Errorf("day attribute %q: %w", token, err)
		}
		dates = append(dates, raw)
	}
	return dates, nil
}

// InferredDates handles bare day-of-month tokens, resolved against the
// Eastern "today" through InferWeekDates.
type InferredDates struct {
	Today time.Time
}

func (r InferredDates) Resolve(tokens []string) ([]string, error) {
	today := r.Today
	if today.IsZero() {
		today = timezone.Today()
	}

	days := make([]int, 0, len(tokens))
	for _, token := range tokens {
		d, err := strconv.Atoi(token)
		if err != nil || d < 1 || d > 31 {
			return nil, fmt.Errorf("day-of-month token %q is not a day number", token)
		}
		days = append(days, d)
	}

	inferred := InferWeekDates(days, today)
	dates := make([]string, 0, len(inferred))
	for _, d := range inferred {
		dates = append(dates, d.Format(ISODate))
	}
	return dates, nil
}
