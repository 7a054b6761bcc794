package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Eastern because both theaters publish their
// calendars in New York local time, and day-of-month inference breaks
// if the host clock is in another timezone when reading Year()/Month()/Day()
func Now() time.Time {
	return time.Now().In(Location)
}

// Today returns the current Eastern date truncated to midnight.
func Today() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Location)
}
